package filter

import (
	"math"

	"github.com/matzehuels/glitcher/pkg/bitmap"
)

func (c *pass) cyberpunk(style Style) {
	switch style {
	case CyberpunkNeon:
		c.neonGlow()
	case CyberpunkMatrix:
		c.matrix()
	case CyberpunkSynthwave:
		c.synthwave()
	case CyberpunkDigitalRain:
		c.digitalRain()
	case CyberpunkHologram:
		c.hologram()
	case CyberpunkGlitchScan:
		c.glitchScan()
	}
}

// neonGlow finds bright edges, blurs them into a glow map with a separable
// Gaussian, adds the glow on top of boosted colors and finishes with
// scanlines every third row.
func (c *pass) neonGlow() {
	t := c.t
	radius := max(1, int(c.opts.Cyberpunk.GlowRadius*t))
	boost := 1 + t*0.8
	w, h := c.w, c.h

	glow := make([]float64, w*h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			r, g, b := c.rgb(c.src.Offset(x, y))
			bright := (r + g + b) / 3
			var edge float64
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nr, ng, nb := c.rgb(c.src.Offset(x+dx, y+dy))
					edge += math.Abs(bright - (nr+ng+nb)/3)
				}
			}
			glow[y*w+x] = bright / 255 * (edge / 255) * t
		}
	}
	glow = gaussianBlur(glow, w, h, radius)

	for n, gl := range glow {
		i := n * 4
		r, g, b := c.rgb(i)
		bright := (r + g + b) / 3
		if bright > 128 {
			r, g, b = math.Min(255, r*boost), math.Min(255, g*boost), math.Min(255, b*boost)
		}
		if bright > 100 {
			r = math.Min(255, r+20*t)
			b = math.Min(255, b+30*t)
		}
		c.put(i, r+255*gl, g+255*gl*0.8, b+255*gl)
	}

	d := c.dst.Pix
	for y := 0; y < h; y += 3 {
		k := 0.8 + 0.2*math.Sin(float64(y)*0.1)
		for x := 0; x < w; x++ {
			i := c.dst.Offset(x, y)
			c.put(i, float64(d[i])*k, float64(d[i+1])*k, float64(d[i+2])*k)
		}
	}
}

// gaussianBlur runs a horizontal then a vertical Gaussian pass with sigma
// equal to radius, renormalizing the weights at the borders.
func gaussianBlur(in []float64, w, h, radius int) []float64 {
	weights := make([]float64, 2*radius+1)
	for d := -radius; d <= radius; d++ {
		weights[d+radius] = math.Exp(-float64(d*d) / float64(2*radius*radius))
	}
	tmp := make([]float64, len(in))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum, wsum float64
			for d := -radius; d <= radius; d++ {
				if nx := x + d; nx >= 0 && nx < w {
					sum += in[y*w+nx] * weights[d+radius]
					wsum += weights[d+radius]
				}
			}
			tmp[y*w+x] = sum / wsum
		}
	}
	out := make([]float64, len(in))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum, wsum float64
			for d := -radius; d <= radius; d++ {
				if ny := y + d; ny >= 0 && ny < h {
					sum += tmp[ny*w+x] * weights[d+radius]
					wsum += weights[d+radius]
				}
			}
			out[y*w+x] = sum / wsum
		}
	}
	return out
}

// matrix pushes everything toward green with digital noise and the
// occasional pure green artifact pixel.
func (c *pass) matrix() {
	t := c.t
	amount := c.opts.Cyberpunk.DigitalNoise
	for i := 0; i < len(c.src.Pix); i += 4 {
		r, g, b := c.rgb(i)
		bright := (r + g + b) / 3
		nr := bright * 0.1 * t
		ng := math.Min(255, bright*(1+t))
		nb := bright * 0.2 * t
		noise := (c.rng.Float64() - 0.5) * amount * 255 * t
		c.put(i, r+(nr-r)*t+noise, g+(ng-g)*t+noise, b+(nb-b)*t+noise)
		if c.rng.Float64() < 0.001*t {
			c.put(i, 0, 255, 0)
		}
	}
}

// synthwave adds a vertical pink-to-cyan gradient and darkens every fourth
// row.
func (c *pass) synthwave() {
	t := c.t
	gs := c.opts.Cyberpunk.GradientStrength
	for y := 0; y < c.h; y++ {
		gf := float64(y) / float64(c.h)
		scan := 1.0
		if y%4 == 0 {
			scan = 0.8
		}
		for x := 0; x < c.w; x++ {
			i := c.src.Offset(x, y)
			r, g, b := c.rgb(i)
			sr := math.Min(255, r*(1+gf*0.5)+(255-gf*100)*t*gs)
			sg := math.Min(255, g*(1-gf*0.3)+gf*50*t*gs)
			sb := math.Min(255, b*(1+gf*0.8)+(255-gf*50)*t*gs)
			c.put(i, (r+(sr-r)*t)*scan, (g+(sg-g)*t)*scan, (b+(sb-b)*t)*scan)
		}
	}
}

// digitalRain drops green streaks down random 8px-spaced columns.
func (c *pass) digitalRain() {
	t := c.t
	density := c.opts.Cyberpunk.RainDensity
	d := c.dst.Pix
	for x := 0; x < c.w; x += 8 {
		if c.rng.Float64() >= density*t {
			continue
		}
		length := int(c.rng.Float64() * float64(c.h) * 0.3)
		start := c.rng.IntN(c.h)
		for y := start; y < min(c.h, start+length); y++ {
			i := c.dst.Offset(x, y)
			k := c.rng.Float64() * t
			c.put(i,
				float64(d[i])*0.3+20*k,
				float64(d[i+1])*0.5+255*k,
				float64(d[i+2])*0.3+50*k)
		}
	}
}

// hologram tints blue, flickers random pixels and lowers alpha.
func (c *pass) hologram() {
	t := c.t
	rate := c.opts.Cyberpunk.FlickerRate
	for i := 0; i < len(c.src.Pix); i += 4 {
		r, g, b := c.rgb(i)
		r = r + (r*0.8-r)*t
		g = g + (g*0.9+30*t-g)*t
		b = b + (b*1.2+50*t-b)*t
		// Flicker acts on the clamped channel values.
		r, g, b = math.Min(255, r), math.Min(255, g), math.Min(255, b)
		if c.rng.Float64() < rate*t {
			r, g, b = r*0.5, g*0.5, b*0.5
		}
		c.put(i, r, g, b)
		c.dst.Pix[i+3] = bitmap.Clamp(float64(c.src.Pix[i+3]) * (0.7 + 0.3*(1-t)))
	}
}

// glitchScan sweeps a bright band down the image once per second of frames
// and sprinkles random-color pixels.
func (c *pass) glitchScan() {
	t := c.t
	phase := math.Mod(c.time*1000*c.opts.Cyberpunk.ScanSpeed, 1000)
	scanY := int(phase / 1000 * float64(c.h))
	for y := 0; y < c.h; y++ {
		dist := abs(y - scanY)
		for x := 0; x < c.w; x++ {
			i := c.src.Offset(x, y)
			if dist < 5 {
				k := float64(5-dist) / 5 * t
				r, g, b := c.rgb(i)
				c.put(i, r+100*k, g+100*k, b+255*k)
			}
			if c.rng.Float64() < 0.001*t {
				c.put(i, c.rng.Float64()*255, c.rng.Float64()*255, c.rng.Float64()*255)
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
