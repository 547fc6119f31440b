package color

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a validated sRGB triple with 8-bit channels.
type Color struct {
	R uint8
	G uint8
	B uint8
}

type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid color %q: expected 6 hex digits", e.Input)
}

// Parse accepts #RRGGBB or RRGGBB. Anything else is a *ParseError.
// Shape validation is strict and local; the conversion itself goes
// through colorful.Hex, which would otherwise also admit #RGB shorthand.
func Parse(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return Color{}, &ParseError{Input: s}
	}
	for i := 0; i < len(hex); i++ {
		if !isHexDigit(hex[i]) {
			return Color{}, &ParseError{Input: s}
		}
	}

	col, err := colorful.Hex("#" + hex)
	if err != nil {
		return Color{}, &ParseError{Input: s}
	}

	r, g, b := col.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

func isHexDigit(b byte) bool {
	switch {
	case b >= '0' && b <= '9':
		return true
	case b >= 'a' && b <= 'f':
		return true
	case b >= 'A' && b <= 'F':
		return true
	default:
		return false
	}
}

func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c Color) normalized() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// RelativeLuminance computes the WCAG relative luminance of c using
// ITU-R BT.709 coefficients.
func RelativeLuminance(c Color) float64 {
	n := c.normalized()
	return 0.2126*linearize(n.R) + 0.7152*linearize(n.G) + 0.0722*linearize(n.B)
}

// linearize applies the sRGB gamma expansion. WCAG specifies the 0.03928
// threshold (not the 0.04045 from the sRGB standard).
func linearize(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio returns (Lmax + 0.05) / (Lmin + 0.05). The normalization
// to max/min luminance makes it symmetric in its arguments.
func ContrastRatio(a, b Color) float64 {
	la := RelativeLuminance(a)
	lb := RelativeLuminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}
