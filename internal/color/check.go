package color

import "github.com/lucasb-eyer/go-colorful"

type Level string

const (
	LevelAAA  Level = "AAA"
	LevelAA   Level = "AA"
	LevelFail Level = "fail"
)

const (
	// WCAG 2.1 contrast thresholds for normal text.
	minAAContrast  = 4.5
	minAAAContrast = 7.0
)

type Result struct {
	Ratio  float64 `json:"ratio"`
	Level  Level   `json:"level"`
	Passes bool    `json:"passes"`
}

// Check classifies the contrast between foreground and background.
// The large-text 3:1 carve-out is intentionally not applied here;
// callers that know text size must decide on their own.
func Check(fg, bg Color) Result {
	ratio := ContrastRatio(fg, bg)

	switch {
	case ratio >= minAAAContrast:
		return Result{Ratio: ratio, Level: LevelAAA, Passes: true}
	case ratio >= minAAContrast:
		return Result{Ratio: ratio, Level: LevelAA, Passes: true}
	default:
		return Result{Ratio: ratio, Level: LevelFail, Passes: false}
	}
}

// CheckHex parses both colors and classifies them. A parse failure is
// returned to the caller; bulk auditors downgrade it to a warning
// finding instead of aborting.
func CheckHex(fg, bg string) (Result, error) {
	f, err := Parse(fg)
	if err != nil {
		return Result{}, err
	}
	b, err := Parse(bg)
	if err != nil {
		return Result{}, err
	}
	return Check(f, b), nil
}

// accessibleStep is the per-channel nudge AccessibleVariant applies,
// in 8-bit channel units.
const accessibleStep = 50

// AccessibleVariant shifts c toward lighter or darker depending on the
// background luminance, clamping at the channel bounds. It is a
// best-effort heuristic: the result is not re-verified against level,
// so callers must Check it again.
func AccessibleVariant(c, bg Color, level Level) Color {
	step := float64(accessibleStep) / 255.0
	if RelativeLuminance(bg) > 0.5 {
		step = -step
	}

	n := c.normalized()
	shifted := colorful.Color{R: n.R + step, G: n.G + step, B: n.B + step}
	r, g, b := shifted.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}
