package transform

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/glitcher/pkg/bitmap"
)

// ColorOptions carries the parameters of the color effects that need more
// than an intensity.
type ColorOptions struct {
	Aberration Aberration    `toml:"aberration" json:"aberration"`
	Angle      float64       `toml:"angle" json:"angle"` // degrees, AberrationCustom only
	Invert     InvertChannel `toml:"invert" json:"invert"`
}

// Color applies a per-pixel color effect at intensity (0–100).
func Color(buf *bitmap.Buffer, effect ColorEffect, intensity float64, opts ColorOptions, mask *bitmap.Mask, rng *rand.Rand) {
	if buf.Empty() {
		return
	}
	strength := math.Max(0, math.Min(intensity, 100)) / 100
	switch effect {
	case ColorChromaticAberration:
		ChromaticAberration(buf, opts.Aberration, strength, opts.Angle, mask)
	case ColorHueShift:
		HueShift(buf, strength, mask)
	case ColorSaturation:
		Saturate(buf, strength, mask)
	case ColorVintage:
		Vintage(buf, strength, mask)
	case ColorInvert:
		Invert(buf, opts.Invert, mask)
	case ColorNoise:
		Noise(buf, strength, mask, rng)
	case ColorChannelShift:
		ChannelShift(buf, strength, mask)
	}
}

// eachPixel calls fn with the RGBA slice of every pixel mask allows.
func eachPixel(buf *bitmap.Buffer, mask *bitmap.Mask, fn func(p []byte)) {
	n := buf.Width * buf.Height
	for i := 0; i < n; i++ {
		if mask.Allows(i) {
			fn(buf.Pix[i*4 : i*4+4])
		}
	}
}

// ChromaticAberration offsets the red and blue channels in opposite
// directions; green is untouched. strength is 0–1: horizontal, vertical and
// radial offsets are up to 10px, custom offsets up to 15px along angle
// degrees. Samples outside the buffer clamp to the edge for the axis modes
// and read as 0 for radial and custom.
func ChromaticAberration(buf *bitmap.Buffer, mode Aberration, strength, angle float64, mask *bitmap.Mask) {
	offset := int(strength * 10)
	if mode == AberrationCustom {
		offset = int(strength * 15)
	}
	if offset == 0 {
		return
	}

	src := buf.Clone()
	w, h := buf.Width, buf.Height
	channel := func(x, y, c int, clampEdge bool) byte {
		if clampEdge {
			x, y = clampInt(x, 0, w-1), clampInt(y, 0, h-1)
		} else if !buf.In(x, y) {
			return 0
		}
		return src.Pix[src.Offset(x, y)+c]
	}

	cx, cy := float64(w)/2, float64(h)/2
	rad := angle * math.Pi / 180
	ux, uy := math.Cos(rad), math.Sin(rad)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !mask.AllowsXY(x, y) {
				continue
			}
			var rx, ry, bx, by int
			clampEdge := false
			switch mode {
			case AberrationHorizontal:
				rx, ry, bx, by = x+offset, y, x-offset, y
				clampEdge = true
			case AberrationVertical:
				rx, ry, bx, by = x, y+offset, x, y-offset
				clampEdge = true
			case AberrationRadial:
				dx, dy := float64(x)-cx, float64(y)-cy
				d := math.Hypot(dx, dy)
				if d == 0 {
					continue
				}
				ox, oy := dx/d*float64(offset), dy/d*float64(offset)
				rx, ry = int(math.Round(float64(x)+ox)), int(math.Round(float64(y)+oy))
				bx, by = int(math.Round(float64(x)-ox)), int(math.Round(float64(y)-oy))
			case AberrationCustom:
				ox, oy := ux*float64(offset), uy*float64(offset)
				rx, ry = int(math.Round(float64(x)+ox)), int(math.Round(float64(y)+oy))
				bx, by = int(math.Round(float64(x)-ox)), int(math.Round(float64(y)-oy))
			}
			i := buf.Offset(x, y)
			buf.Pix[i] = channel(rx, ry, 0, clampEdge)
			buf.Pix[i+2] = channel(bx, by, 2, clampEdge)
		}
	}
}

// HueShift rotates every hue by up to 28.8 degrees at full strength.
func HueShift(buf *bitmap.Buffer, strength float64, mask *bitmap.Mask) {
	shift := strength * 0.08 * 360
	eachPixel(buf, mask, func(p []byte) {
		h, s, l := bitmap.RGBToHSL(p[0], p[1], p[2])
		p[0], p[1], p[2] = bitmap.HSLToRGB(h+shift, s, l)
	})
}

// Saturate multiplies saturation by up to 3 at full strength.
func Saturate(buf *bitmap.Buffer, strength float64, mask *bitmap.Mask) {
	boost := 1 + strength*2
	eachPixel(buf, mask, func(p []byte) {
		h, s, l := bitmap.RGBToHSL(p[0], p[1], p[2])
		p[0], p[1], p[2] = bitmap.HSLToRGB(h, math.Min(s*boost, 1), l)
	})
}

// Vintage blends each pixel toward its sepia mix by strength.
func Vintage(buf *bitmap.Buffer, strength float64, mask *bitmap.Mask) {
	eachPixel(buf, mask, func(p []byte) {
		r, g, b := float64(p[0]), float64(p[1]), float64(p[2])
		sr, sg, sb := sepia(r, g, b)
		p[0] = bitmap.Clamp(r*(1-strength) + sr*strength)
		p[1] = bitmap.Clamp(g*(1-strength) + sg*strength)
		p[2] = bitmap.Clamp(b*(1-strength) + sb*strength)
	})
}

// sepia returns the classic sepia channel mix, capped at 255.
func sepia(r, g, b float64) (float64, float64, float64) {
	return math.Min(255, r*0.393+g*0.769+b*0.189),
		math.Min(255, r*0.349+g*0.686+b*0.168),
		math.Min(255, r*0.272+g*0.534+b*0.131)
}

// Invert flips the selected channels.
func Invert(buf *bitmap.Buffer, which InvertChannel, mask *bitmap.Mask) {
	eachPixel(buf, mask, func(p []byte) {
		switch which {
		case InvertRed:
			p[0] = 255 - p[0]
		case InvertGreen:
			p[1] = 255 - p[1]
		case InvertBlue:
			p[2] = 255 - p[2]
		default:
			p[0], p[1], p[2] = 255-p[0], 255-p[1], 255-p[2]
		}
	})
}

// Noise adds independent per-channel jitter of up to ±25 at full strength.
func Noise(buf *bitmap.Buffer, strength float64, mask *bitmap.Mask, rng *rand.Rand) {
	amount := strength * 50
	eachPixel(buf, mask, func(p []byte) {
		for c := 0; c < 3; c++ {
			p[c] = bitmap.Clamp(float64(p[c]) + (rng.Float64()-0.5)*amount)
		}
	})
}

// ChannelShift rotates the channels (red takes green, green takes blue, blue
// takes red) and blends the result in by strength.
func ChannelShift(buf *bitmap.Buffer, strength float64, mask *bitmap.Mask) {
	eachPixel(buf, mask, func(p []byte) {
		r, g, b := p[0], p[1], p[2]
		p[0] = bitmap.Lerp(r, g, strength)
		p[1] = bitmap.Lerp(g, b, strength)
		p[2] = bitmap.Lerp(b, r, strength)
	})
}
