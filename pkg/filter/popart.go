package filter

import "math"

var popArtPalettes = [...][]RGB{
	PopArtWarhol: {
		{255, 0, 255}, {255, 255, 0}, {0, 255, 255}, {255, 0, 0},
		{0, 255, 0}, {255, 165, 0}, {138, 43, 226}, {255, 20, 147},
	},
	PopArtLichtenstein: {
		{255, 0, 0}, {255, 255, 0}, {0, 0, 255}, {0, 0, 0},
		{255, 192, 203}, {173, 216, 230}, {255, 255, 224}, {128, 128, 128},
	},
	PopArtNeon: {
		{255, 0, 255}, {0, 255, 255}, {255, 255, 0}, {255, 0, 0},
		{57, 255, 20}, {255, 20, 147}, {0, 191, 255}, {255, 165, 0},
	},
	PopArtPsychedelic: {
		{255, 0, 255}, {255, 255, 0}, {0, 255, 0}, {255, 0, 0},
		{138, 43, 226}, {255, 20, 147}, {50, 205, 50}, {255, 140, 0},
	},
}

// popArt posterizes brightness onto an eight-color palette. Lichtenstein
// dims two of every three pixels to fake Ben-Day dots, neon oversaturates,
// psychedelic brightens or darkens along a sine interference pattern.
func (c *pass) popArt(style Style) {
	if int(style) >= len(popArtPalettes) {
		style = PopArtWarhol
	}
	palette := popArtPalettes[style]
	last := len(palette) - 1

	for n := 0; n < c.w*c.h; n++ {
		i := n * 4
		r, g, b := c.rgb(i)
		idx := int((r + g + b) / 3 / 255 * float64(last))
		col := palette[max(0, min(last, idx))]
		pr, pg, pb := float64(col[0]), float64(col[1]), float64(col[2])

		f := 1.0
		switch style {
		case PopArtLichtenstein:
			if n%3 != 0 {
				f = 0.8
			}
		case PopArtNeon:
			f = 1.2
		case PopArtPsychedelic:
			x, y := float64(n%c.w), float64(n/c.w)
			f = 0.7
			if math.Sin(x*0.1)*math.Cos(y*0.1) > 0 {
				f = 1.3
			}
		}
		c.put(i, math.Min(255, pr*f), math.Min(255, pg*f), math.Min(255, pb*f))
	}
	c.mix()
}

// vintage applies a film stock color curve blended by intensity, then adds
// monochrome grain at full strength.
func (c *pass) vintage(style Style) {
	for i := 0; i < len(c.src.Pix); i += 4 {
		r, g, b := c.rgb(i)
		r, g, b = r/255, g/255, b/255
		nr, ng, nb := filmCurve(style, r, g, b)
		c.put(i,
			(r+(nr-r)*c.t)*255,
			(g+(ng-g)*c.t)*255,
			(b+(nb-b)*c.t)*255)
	}

	grain := c.opts.Vintage.Grain / 100 * 30
	if grain <= 0 {
		return
	}
	d := c.dst.Pix
	for i := 0; i < len(d); i += 4 {
		v := (c.rng.Float64() - 0.5) * grain
		c.put(i, float64(d[i])+v, float64(d[i+1])+v, float64(d[i+2])+v)
	}
}

func filmCurve(style Style, r, g, b float64) (float64, float64, float64) {
	switch style {
	case VintageKodachrome:
		r, g, b = r*1.15+0.03, g*0.98, b*1.08+0.02
		r, g, b = highContrast(r), highContrast(g), highContrast(b)
	case VintageFaded:
		r, g, b = (r*0.7+0.2)*1.05, (g*0.7+0.15)*1.02, (b*0.7+0.1)*0.95
	case VintageSepia:
		r, g, b = r*0.393+g*0.769+b*0.189, r*0.349+g*0.686+b*0.168, r*0.272+g*0.534+b*0.131
	default:
		r, g, b = r*1.1+0.05, g*1.05+0.02, b*0.95
		r, g, b = softCurve(r), softCurve(g), softCurve(b)
	}
	return unit(r), unit(g), unit(b)
}

func softCurve(x float64) float64 {
	return 0.5 + 0.4*math.Sin((x-0.5)*math.Pi)
}

func highContrast(x float64) float64 {
	return math.Pow(math.Max(0, x), 0.8) * (1 + 0.2*math.Sin(x*math.Pi))
}

func unit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
