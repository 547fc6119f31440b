package color

import (
	"errors"
	"math"
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		input string
		want  Color
	}{
		{"#FFFFFF", Color{255, 255, 255}},
		{"FFFFFF", Color{255, 255, 255}},
		{"#000000", Color{0, 0, 0}},
		{"#1a2B3c", Color{0x1A, 0x2B, 0x3C}},
	}

	for _, tc := range cases {
		got, err := Parse(tc.input)
		if err != nil {
			t.Errorf("Parse(%q) returned error: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestParseInvalid(t *testing.T) {
	inputs := []string{"", "#FFF", "FFF", "#GGGGGG", "#FFFFFFF", "red", "#FF FF F"}

	for _, input := range inputs {
		_, err := Parse(input)
		if err == nil {
			t.Errorf("Parse(%q) should fail", input)
			continue
		}
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("Parse(%q) error is %T, want *ParseError", input, err)
		}
	}
}

func TestContrastRatioSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"#000000", "#FFFFFF"},
		{"#777777", "#808080"},
		{"#FF0000", "#00FF00"},
		{"#123456", "#654321"},
	}

	for _, pair := range pairs {
		a, _ := Parse(pair[0])
		b, _ := Parse(pair[1])

		ab := ContrastRatio(a, b)
		ba := ContrastRatio(b, a)
		if ab != ba {
			t.Errorf("ContrastRatio(%s, %s) = %v but reversed = %v", pair[0], pair[1], ab, ba)
		}
		if ab < 1.0 {
			t.Errorf("ContrastRatio(%s, %s) = %v, want >= 1.0", pair[0], pair[1], ab)
		}
	}
}

func TestContrastRatioIdentity(t *testing.T) {
	for _, hex := range []string{"#000000", "#FFFFFF", "#3366CC", "#808080"} {
		c, _ := Parse(hex)
		if got := ContrastRatio(c, c); got != 1.0 {
			t.Errorf("ContrastRatio(%s, %s) = %v, want 1.0", hex, hex, got)
		}
	}
}

func TestCheckBlackOnWhite(t *testing.T) {
	res, err := CheckHex("#000000", "#FFFFFF")
	if err != nil {
		t.Fatalf("CheckHex failed: %v", err)
	}

	if math.Abs(res.Ratio-21.0) > 0.01 {
		t.Errorf("ratio = %v, want ~21.0", res.Ratio)
	}
	if res.Level != LevelAAA {
		t.Errorf("level = %s, want AAA", res.Level)
	}
	if !res.Passes {
		t.Error("black on white should pass")
	}
}

func TestCheckLowContrastGrays(t *testing.T) {
	res, err := CheckHex("#777777", "#808080")
	if err != nil {
		t.Fatalf("CheckHex failed: %v", err)
	}

	if res.Ratio >= minAAContrast {
		t.Errorf("ratio = %v, expected below AA threshold", res.Ratio)
	}
	if res.Level != LevelFail {
		t.Errorf("level = %s, want fail", res.Level)
	}
	if res.Passes {
		t.Error("near-identical grays should not pass")
	}
}

func TestCheckAAOnly(t *testing.T) {
	// ~4.54:1, passes AA but not AAA.
	res, err := CheckHex("#767676", "#FFFFFF")
	if err != nil {
		t.Fatalf("CheckHex failed: %v", err)
	}
	if res.Level != LevelAA {
		t.Errorf("level = %s (ratio %v), want AA", res.Level, res.Ratio)
	}
	if !res.Passes {
		t.Error("AA contrast should pass")
	}
}

func TestCheckHexInvalid(t *testing.T) {
	if _, err := CheckHex("nope", "#FFFFFF"); err == nil {
		t.Error("invalid foreground should fail")
	}
	if _, err := CheckHex("#FFFFFF", "nope"); err == nil {
		t.Error("invalid background should fail")
	}
}

func TestRelativeLuminanceBounds(t *testing.T) {
	black, _ := Parse("#000000")
	white, _ := Parse("#FFFFFF")

	if got := RelativeLuminance(black); got != 0 {
		t.Errorf("luminance(black) = %v, want 0", got)
	}
	if got := RelativeLuminance(white); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("luminance(white) = %v, want 1.0", got)
	}
}

func TestAccessibleVariant(t *testing.T) {
	gray, _ := Parse("#808080")
	white, _ := Parse("#FFFFFF")
	black, _ := Parse("#000000")

	darkened := AccessibleVariant(gray, white, LevelAA)
	if darkened.R >= gray.R {
		t.Errorf("on a light background the variant should darken: got %s", darkened.Hex())
	}
	if delta := int(gray.R) - int(darkened.R); delta < accessibleStep-1 || delta > accessibleStep+1 {
		t.Errorf("darkening step = %d, want ~%d", delta, accessibleStep)
	}

	lightened := AccessibleVariant(gray, black, LevelAA)
	if lightened.R <= gray.R {
		t.Errorf("on a dark background the variant should lighten: got %s", lightened.Hex())
	}
	if delta := int(lightened.R) - int(gray.R); delta < accessibleStep-1 || delta > accessibleStep+1 {
		t.Errorf("lightening step = %d, want ~%d", delta, accessibleStep)
	}

	// Channels clamp instead of wrapping.
	nearWhite, _ := Parse("#F0F0F0")
	clamped := AccessibleVariant(nearWhite, black, LevelAA)
	if clamped != (Color{255, 255, 255}) {
		t.Errorf("expected clamp to white, got %s", clamped.Hex())
	}
}
