package selection

import (
	"math"

	"github.com/matzehuels/glitcher/pkg/bitmap"
)

// sampleStride is the pixel step used when scanning for seed pixels.
const sampleStride = 4

// similarityBand is how far saturation and lightness may drift from the seed
// during a color flood fill.
const similarityBand = 0.3

// hsl caches one pixel's conversion so the flood fill converts each pixel at
// most once.
type hsl struct {
	h, s, l float32
	ok      bool
}

func (e *Engine) selectByColorRange(cfg Config) []bitmap.Region {
	c := cfg.Color
	limit := cfg.regionCap(defaultColorRegions)
	buf := e.buf
	w, h := buf.Width, buf.Height

	cache := make([]hsl, w*h)
	at := func(i int) hsl {
		if !cache[i].ok {
			p := i * bitmap.BytesPerPixel
			hh, ss, ll := bitmap.RGBToHSL(buf.Pix[p], buf.Pix[p+1], buf.Pix[p+2])
			cache[i] = hsl{h: float32(hh), s: float32(ss), l: float32(ll), ok: true}
		}
		return cache[i]
	}

	visited := make([]bool, w*h)
	var regions []bitmap.Region

	for y := 0; y < h && len(regions) < limit; y += sampleStride {
		for x := 0; x < w && len(regions) < limit; x += sampleStride {
			i := y*w + x
			if visited[i] {
				continue
			}
			seed := at(i)
			if !hueWithin(float64(seed.h), c.TargetHue, c.HueTolerance) ||
				float64(seed.s) < c.SaturationMin ||
				float64(seed.l) < c.LightnessMin || float64(seed.l) > c.LightnessMax {
				continue
			}

			fill := floodFill(w, h, x, y, visited, func(j int) bool {
				p := at(j)
				return hueWithin(float64(p.h), float64(seed.h), c.HueTolerance) &&
					math.Abs(float64(p.s-seed.s)) < similarityBand &&
					math.Abs(float64(p.l-seed.l)) < similarityBand
			}, nil)
			if fill.pixels >= c.MinRegionSize {
				regions = append(regions, fill.bounds())
			}
		}
	}
	return regions
}

// hueWithin reports whether two hues are closer than tol on the color wheel.
func hueWithin(a, b, tol float64) bool {
	return bitmap.HueDistance(a, b) < tol
}
