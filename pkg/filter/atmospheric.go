package filter

import "math"

// Atmospheric styles work in place on dst and scale every term by t, so
// they do not blend with mix. Particle positions fall with c.time.
func (c *pass) atmospheric(style Style) {
	switch style {
	case AtmosphericFog:
		c.fog()
	case AtmosphericRain:
		c.rain()
	case AtmosphericSnow:
		c.snow()
	case AtmosphericDust:
		c.dust()
	case AtmosphericHeatHaze:
		c.heatHaze()
	case AtmosphericUnderwater:
		c.underwater()
	case AtmosphericAurora:
		c.aurora()
	case AtmosphericLightning:
		c.lightning()
	}
}

// drgb returns the current dst channels at byte offset i as floats.
func (c *pass) drgb(i int) (float64, float64, float64) {
	p := c.dst.Pix
	return float64(p[i]), float64(p[i+1]), float64(p[i+2])
}

// particles is the number of particles a density covers at full intensity.
func (c *pass) particles(density float64) int {
	return int(math.Ceil(float64(c.w*c.h) * density * c.t))
}

// falling maps a random seed and a drift speed in cycles per second onto a
// row that wraps at the bottom edge.
func (c *pass) falling(speed float64) int {
	v := math.Mod(c.rng.Float64()+c.time*speed, 1)
	return min(c.h-1, int(v*float64(c.h)))
}

// splat adds (r, g, b) to a disc of the given radius around (cx, cy), fading
// linearly toward its rim.
func (c *pass) splat(cx, cy, radius int, r, g, b float64) {
	if radius <= 0 {
		if c.dst.In(cx, cy) {
			i := c.dst.Offset(cx, cy)
			dr, dg, db := c.drgb(i)
			c.put(i, dr+r, dg+g, db+b)
		}
		return
	}
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			d := math.Hypot(float64(dx), float64(dy))
			if d > float64(radius) || !c.dst.In(cx+dx, cy+dy) {
				continue
			}
			a := 1 - d/float64(radius)
			i := c.dst.Offset(cx+dx, cy+dy)
			dr, dg, db := c.drgb(i)
			c.put(i, dr+r*a, dg+g*a, db+b*a)
		}
	}
}

// fog blends toward FogColor with a sinusoidal density field that thickens
// toward the bottom.
func (c *pass) fog() {
	o := c.opts.Atmospheric
	fr, fg, fb := float64(o.FogColor[0]), float64(o.FogColor[1]), float64(o.FogColor[2])
	for y := 0; y < c.h; y++ {
		depth := float64(y) / float64(c.h) * 0.5 * c.t
		for x := 0; x < c.w; x++ {
			n := math.Sin(float64(x)*0.02)*math.Cos(float64(y)*0.03)*0.5 + 0.5
			f := math.Min(1, (o.FogDensity+n*0.3)*c.t+depth)
			i := c.dst.Offset(x, y)
			r, g, b := c.rgb(i)
			c.put(i, r*(1-f)+fr*f, g*(1-f)+fg*f, b*(1-f)+fb*f)
		}
	}
}

// rain draws slightly diagonal streaks that fade along their length, then
// brightens everything to suggest wet surfaces.
func (c *pass) rain() {
	o := c.opts.Atmospheric
	length := max(1, o.RainLength)
	for range c.particles(o.RainDensity) {
		x := c.rng.IntN(c.w)
		y := c.falling(1)
		for j := range length {
			ry := (y + j) % c.h
			rx := x + int(float64(j)*0.3)
			if rx >= c.w {
				break
			}
			a := (1 - float64(j)/float64(length)) * c.t
			i := c.dst.Offset(rx, ry)
			r, g, b := c.drgb(i)
			c.put(i, r+100*a, g+120*a, b+150*a)
		}
	}
	c.scale(1+c.t*0.3, 1+c.t*0.3, 1+c.t*0.3)
}

// snow drops drifting round flakes and cools the palette.
func (c *pass) snow() {
	o := c.opts.Atmospheric
	for range c.particles(o.SnowDensity) {
		x := c.rng.IntN(c.w)
		y := c.falling(0.25)
		drift := int(math.Floor(math.Sin(float64(y)*0.02) * 2))
		c.splat(x+drift, y, o.SnowSize, 200*c.t, 200*c.t, 255*c.t)
	}
	c.scale(1-c.t*0.1, 1, 1+c.t*0.2)
}

// dust blends single specks of DustColor and warms the whole frame.
func (c *pass) dust() {
	o := c.opts.Atmospheric
	dr, dg, db := float64(o.DustColor[0]), float64(o.DustColor[1]), float64(o.DustColor[2])
	for range c.particles(o.DustDensity) {
		i := c.dst.Offset(c.rng.IntN(c.w), c.rng.IntN(c.h))
		a := c.rng.Float64() * c.t
		r, g, b := c.drgb(i)
		c.put(i, r*(1-a)+dr*a, g*(1-a)+dg*a, b*(1-a)+db*a)
	}
	k := 0.9 + c.t*0.1
	d := c.dst.Pix
	for i := 0; i < len(d); i += 4 {
		r, g, b := c.drgb(i)
		c.put(i, r*k+20*c.t, g*k+15*c.t, b*k+5*c.t)
	}
}

// heatHaze displaces pixels along two crossed sine waves that scroll with
// time and warms the result.
func (c *pass) heatHaze() {
	s := c.opts.Atmospheric.Distortion * c.t
	phase := c.time * 10
	for y := 0; y < c.h; y++ {
		wx := math.Sin(float64(y)*0.05+phase) * s
		for x := 0; x < c.w; x++ {
			wy := math.Cos(float64(x)*0.03+phase*0.7) * s * 0.5
			r, g, b := bilinear(c.src, float64(x)+wx, float64(y)+wy)
			c.put(c.dst.Offset(x, y), r*(1+c.t*0.1), g*(1+c.t*0.05), b*(1-c.t*0.1))
		}
	}
}

// underwater tints blue-green, darkens with depth and releases rising
// bubbles.
func (c *pass) underwater() {
	t := c.t
	for y := 0; y < c.h; y++ {
		depth := 1 - float64(y)/float64(c.h)*t*0.5
		for x := 0; x < c.w; x++ {
			i := c.dst.Offset(x, y)
			r, g, b := c.rgb(i)
			r, g, b = r*(1-t*0.3), math.Min(255, g*(1+t*0.2)), math.Min(255, b*(1+t*0.5))
			c.put(i, r*depth, g*depth, b*depth)
		}
	}
	for range c.particles(c.opts.Atmospheric.BubbleDensity) {
		x := c.rng.IntN(c.w)
		y := c.h - 1 - c.falling(0.5)
		c.splat(x, y, 1+c.rng.IntN(4), 80, 120, 200)
	}
}

// aurora lays interfering green, blue and purple curtains over the upper
// part of the image.
func (c *pass) aurora() {
	tm := c.time * 2
	for y := 0; y < c.h; y++ {
		height := 1 - float64(y)/float64(c.h)
		fy := float64(y)
		for x := 0; x < c.w; x++ {
			fx := float64(x)
			w1 := math.Sin(fx*0.01+tm) * math.Cos(fy*0.005+tm*0.5)
			w2 := math.Cos(fx*0.008+tm*1.3) * math.Sin(fy*0.007+tm*0.8)
			s := ((w1+w2)*0.5 + 0.5) * height * c.t
			if s <= 0.3 {
				continue
			}
			var r, g, b float64
			switch hue := math.Mod(s*360+tm*50, 360); {
			case hue < 120:
				r, g, b = 50+s*100, 150+s*105, 50+s*100
			case hue < 240:
				r, g, b = 100+s*50, 100+s*100, 150+s*105
			default:
				r, g, b = 150+s*105, 50+s*100, 150+s*105
			}
			i := c.dst.Offset(x, y)
			dr, dg, db := c.drgb(i)
			c.put(i, dr+r*s, dg+g*s, db+b*s)
		}
	}
}

// lightning may flash the whole frame, may strike a jagged bolt from the top
// edge and always darkens toward a stormy blue.
func (c *pass) lightning() {
	t := c.t
	if c.rng.Float64() < c.opts.Atmospheric.LightningChance*t {
		f := (0.3 + c.rng.Float64()*0.7) * t
		d := c.dst.Pix
		for i := 0; i < len(d); i += 4 {
			r, g, b := c.drgb(i)
			c.put(i, r+200*f, g+220*f, b+255*f)
		}
	}
	if c.rng.Float64() < 0.05*t {
		x := float64(c.rng.IntN(c.w))
		for y := 0; y < c.h; {
			c.put(c.dst.Offset(int(x), y), 255, 255, 255)
			for branch := range 3 {
				bx := int(math.Floor(x + (c.rng.Float64()-0.5)*10))
				if by := y + branch; bx >= 0 && bx < c.w && by < c.h {
					c.put(c.dst.Offset(bx, by), 200, 200, 255)
				}
			}
			x = math.Max(0, math.Min(float64(c.w-1), x+(c.rng.Float64()-0.5)*4))
			y += 1 + int(c.rng.Float64()*3)
		}
	}
	c.scale(1-t*0.2, 1-t*0.2, 1+t*0.1)
}

// scale multiplies the dst channels in place.
func (c *pass) scale(kr, kg, kb float64) {
	d := c.dst.Pix
	for i := 0; i < len(d); i += 4 {
		r, g, b := c.drgb(i)
		c.put(i, r*kr, g*kg, b*kb)
	}
}
