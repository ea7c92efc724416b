package bitmap

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Rec. 709 luma weights used for brightness everywhere in glitcher.
const (
	LumaR = 0.2126
	LumaG = 0.7152
	LumaB = 0.0722
)

// Luminance returns the weighted brightness of an RGB triple in [0, 255].
func Luminance(r, g, b uint8) float64 {
	return LumaR*float64(r) + LumaG*float64(g) + LumaB*float64(b)
}

// Brightness returns Luminance normalized to [0, 1].
func Brightness(r, g, b uint8) float64 {
	return Luminance(r, g, b) / 255
}

// Gray returns the unweighted channel mean in [0, 255].
func Gray(r, g, b uint8) float64 {
	return (float64(r) + float64(g) + float64(b)) / 3
}

// RGBToHSL converts to hue in degrees [0, 360), saturation and lightness in
// [0, 1]. Achromatic colors report hue 0.
func RGBToHSL(r, g, b uint8) (h, s, l float64) {
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	return c.Hsl()
}

// HSLToRGB is the inverse of RGBToHSL. Hue wraps modulo 360; saturation and
// lightness are clamped to [0, 1].
func HSLToRGB(h, s, l float64) (r, g, b uint8) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := colorful.Hsl(h, clamp01(s), clamp01(l)).Clamped()
	return c.RGB255()
}

// Hue returns only the HSL hue of an RGB triple.
func Hue(r, g, b uint8) float64 {
	h, _, _ := RGBToHSL(r, g, b)
	return h
}

// HueDistance returns the circular distance between two hues in degrees.
func HueDistance(a, b float64) float64 {
	d := math.Abs(a - b)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// ColorDistance is the Euclidean distance between two RGB triples.
func ColorDistance(r1, g1, b1, r2, g2, b2 uint8) float64 {
	dr := float64(r1) - float64(r2)
	dg := float64(g1) - float64(g2)
	db := float64(b1) - float64(b2)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// Clamp rounds v and clamps it to a channel byte.
func Clamp(v float64) uint8 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}

// Lerp blends a toward b by t in [0, 1] and clamps the result.
func Lerp(a, b uint8, t float64) uint8 {
	return Clamp(float64(a) + (float64(b)-float64(a))*t)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
