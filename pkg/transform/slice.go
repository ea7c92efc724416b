package transform

import (
	"math/rand/v2"

	"github.com/matzehuels/glitcher/internal/randutil"
	"github.com/matzehuels/glitcher/pkg/bitmap"
)

// Parameters used by the supplementary slice modes.
const (
	DefaultTearCount       = 3
	DefaultScanlineSpacing = 4
	DefaultScanlineDim     = 0.3
	DefaultDisplacement    = 3
	DefaultBlockSize       = 8
	DefaultCorruptionRate  = 0.1
)

// Slice applies a whole-buffer slice glitch. colorMax bounds the random
// color offset added to shifted pixels.
func Slice(buf *bitmap.Buffer, mode SliceMode, colorMax int, mask *bitmap.Mask, rng *rand.Rand) {
	if buf.Empty() {
		return
	}
	switch mode {
	case SliceHorizontal:
		HorizontalSlice(buf, colorMax, mask, rng)
	case SliceVertical:
		VerticalSlice(buf, colorMax, mask, rng)
	case SliceBoth:
		HorizontalSlice(buf, colorMax, mask, rng)
		VerticalSlice(buf, colorMax, mask, rng)
	case SliceDigitalTear:
		DigitalTear(buf, DefaultTearCount, colorMax, mask, rng)
	case SliceScanlines:
		Scanlines(buf, DefaultScanlineSpacing, DefaultScanlineDim, mask)
	case SliceChannelDisplacement:
		ChannelDisplacement(buf, DefaultDisplacement, AberrationHorizontal, mask)
	case SliceBlockCorruption:
		BlockCorruption(buf, DefaultBlockSize, DefaultCorruptionRate, mask, rng)
	}
}

// sliceParams draws the band size, start, signed offset and color offset for
// one slice over a dimension of length n.
func sliceParams(n, colorMax int, rng *rand.Rand) (size, start, offset, color int) {
	size = randutil.Int(rng, 1, max(1, n/6))
	start = randutil.Int(rng, 0, n-size)
	offset = randutil.Int(rng, 1, 5) * randutil.Sign(rng)
	color = randutil.Int(rng, -colorMax, colorMax)
	return size, start, offset, color
}

// HorizontalSlice shifts a random band of rows sideways by 1–5 pixels and
// tints the moved pixels.
func HorizontalSlice(buf *bitmap.Buffer, colorMax int, mask *bitmap.Mask, rng *rand.Rand) {
	size, start, offset, color := sliceParams(buf.Height, colorMax, rng)
	for y := start; y < start+size; y++ {
		if offset > 0 {
			for x := buf.Width - 1 - offset; x >= 0; x-- {
				slicePixel(buf, x, y, x+offset, y, color, mask)
			}
		} else {
			for x := -offset; x < buf.Width; x++ {
				slicePixel(buf, x, y, x+offset, y, color, mask)
			}
		}
	}
}

// VerticalSlice shifts a random band of columns up or down by 1–5 pixels and
// tints the moved pixels.
func VerticalSlice(buf *bitmap.Buffer, colorMax int, mask *bitmap.Mask, rng *rand.Rand) {
	size, start, offset, color := sliceParams(buf.Width, colorMax, rng)
	for x := start; x < start+size; x++ {
		if offset > 0 {
			for y := buf.Height - 1 - offset; y >= 0; y-- {
				slicePixel(buf, x, y, x, y+offset, color, mask)
			}
		} else {
			for y := -offset; y < buf.Height; y++ {
				slicePixel(buf, x, y, x, y+offset, color, mask)
			}
		}
	}
}

func slicePixel(buf *bitmap.Buffer, sx, sy, dx, dy, color int, mask *bitmap.Mask) {
	if !mask.AllowsXY(dx, dy) {
		return
	}
	s := buf.Offset(sx, sy)
	d := buf.Offset(dx, dy)
	buf.Pix[d] = bitmap.Clamp(float64(int(buf.Pix[s]) + color))
	buf.Pix[d+1] = bitmap.Clamp(float64(int(buf.Pix[s+1]) + color))
	buf.Pix[d+2] = bitmap.Clamp(float64(int(buf.Pix[s+2]) + color))
	buf.Pix[d+3] = buf.Pix[s+3]
}

// DigitalTear runs n slices, favoring horizontal ones 60/40.
func DigitalTear(buf *bitmap.Buffer, n, colorMax int, mask *bitmap.Mask, rng *rand.Rand) {
	for range n {
		if rng.Float64() < 0.6 {
			HorizontalSlice(buf, colorMax, mask, rng)
		} else {
			VerticalSlice(buf, colorMax, mask, rng)
		}
	}
}

// Scanlines darkens every spacing-th row by dim (0–1).
func Scanlines(buf *bitmap.Buffer, spacing int, dim float64, mask *bitmap.Mask) {
	spacing = max(1, spacing)
	keep := 1 - dim
	for y := 0; y < buf.Height; y += spacing {
		for x := 0; x < buf.Width; x++ {
			if !mask.AllowsXY(x, y) {
				continue
			}
			i := buf.Offset(x, y)
			buf.Pix[i] = bitmap.Clamp(float64(buf.Pix[i]) * keep)
			buf.Pix[i+1] = bitmap.Clamp(float64(buf.Pix[i+1]) * keep)
			buf.Pix[i+2] = bitmap.Clamp(float64(buf.Pix[i+2]) * keep)
		}
	}
}

// ChannelDisplacement pulls red from one side and blue from the other along
// axis, leaving green in place. AberrationCustom and AberrationRadial are
// treated as a diagonal displacement.
func ChannelDisplacement(buf *bitmap.Buffer, displacement int, axis Aberration, mask *bitmap.Mask) {
	var ox, oy int
	switch axis {
	case AberrationHorizontal:
		ox = displacement
	case AberrationVertical:
		oy = displacement
	default:
		ox, oy = displacement, displacement
	}

	src := buf.Clone()
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			if !mask.AllowsXY(x, y) {
				continue
			}
			i := buf.Offset(x, y)
			if rx, ry := x-ox, y-oy; buf.In(rx, ry) {
				buf.Pix[i] = src.Pix[src.Offset(rx, ry)]
			}
			if bx, by := x+ox, y+oy; buf.In(bx, by) {
				buf.Pix[i+2] = src.Pix[src.Offset(bx, by)+2]
			}
		}
	}
}

// BlockCorruption visits the buffer in size×size blocks and corrupts each
// with probability rate by inverting it, filling it with noise, or blowing
// its brightness out to black or double.
func BlockCorruption(buf *bitmap.Buffer, size int, rate float64, mask *bitmap.Mask, rng *rand.Rand) {
	size = max(1, size)
	for by := 0; by < buf.Height; by += size {
		for bx := 0; bx < buf.Width; bx += size {
			if rng.Float64() >= rate {
				continue
			}
			kind := rng.IntN(3)
			factor := 0.0
			if rng.IntN(2) == 1 {
				factor = 2
			}
			for y := by; y < min(by+size, buf.Height); y++ {
				for x := bx; x < min(bx+size, buf.Width); x++ {
					if !mask.AllowsXY(x, y) {
						continue
					}
					p := buf.Pix[buf.Offset(x, y):]
					for c := 0; c < 3; c++ {
						switch kind {
						case 0:
							p[c] = 255 - p[c]
						case 1:
							p[c] = uint8(rng.IntN(256))
						case 2:
							p[c] = bitmap.Clamp(float64(p[c]) * factor)
						}
					}
				}
			}
		}
	}
}
