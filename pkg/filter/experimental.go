package filter

import (
	"math"
)

func (c *pass) experimental(style Style) {
	switch style {
	case ExperimentalKaleidoscope:
		c.remap(c.kaleidoscope())
	case ExperimentalFractal:
		c.fractal()
	case ExperimentalTunnel:
		c.remap(c.tunnel())
	case ExperimentalWarp:
		c.remap(c.warp())
	case ExperimentalChromaticShift:
		c.chromaticShift()
	case ExperimentalDataBend:
		c.dataBend()
		return
	case ExperimentalMirrorWorld:
		c.remap(c.mirror())
	case ExperimentalRealityGlitch:
		c.realityGlitch()
		return
	default:
		return
	}
	c.mix()
}

// mapping returns the src position a dst pixel samples from. ok is false
// when the pixel keeps its own color.
type mapping func(x, y int) (sx, sy float64, ok bool)

// remap fills dst by nearest-neighbor lookup through m.
func (c *pass) remap(m mapping) {
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			sx, sy, ok := m(x, y)
			if !ok {
				continue
			}
			c.copyFrom(c.dst.Offset(x, y), int(math.Floor(sx)), int(math.Floor(sy)))
		}
	}
}

// kaleidoscope folds the polar angle into Segments mirrored wedges that
// rotate over time.
func (c *pass) kaleidoscope() mapping {
	segments := float64(max(1, c.opts.Experimental.Segments))
	wedge := math.Pi / segments
	cx, cy := float64(c.w)/2, float64(c.h)/2
	spin := c.time * c.t
	return func(x, y int) (float64, float64, bool) {
		dx, dy := float64(x)-cx, float64(y)-cy
		dist := math.Hypot(dx, dy)
		angle := math.Mod(math.Atan2(dy, dx)+spin, 2*wedge) * segments
		if int(math.Floor(angle/wedge))%2 == 1 {
			angle = wedge - math.Mod(angle, wedge)
		}
		sx, sy := cx+math.Cos(angle)*dist, cy+math.Sin(angle)*dist
		return sx, sy, sx >= 0 && sx < float64(c.w) && sy >= 0 && sy < float64(c.h)
	}
}

// tunnel maps angle to u and inverse distance to v, scrolling v with time.
func (c *pass) tunnel() mapping {
	cx, cy := float64(c.w)/2, float64(c.h)/2
	scroll := c.time * c.opts.Experimental.TunnelSpeed
	return func(x, y int) (float64, float64, bool) {
		dx, dy := float64(x)-cx, float64(y)-cy
		dist := math.Hypot(dx, dy)
		if dist < 1 {
			return 0, 0, false
		}
		u := (math.Atan2(dy, dx)/math.Pi + 1) * float64(c.w) / 4
		v := math.Mod(100/dist+scroll, float64(c.h))
		return float64(int(u) % c.w), float64(int(v) % c.h), true
	}
}

// warp displaces pixels through two interfering sine fields.
func (c *pass) warp() mapping {
	s := c.opts.Experimental.WarpStrength * c.t
	tm := c.time * 2
	return func(x, y int) (float64, float64, bool) {
		fx, fy := float64(x), float64(y)
		wx := math.Sin(fx*0.02+tm) * math.Cos(fy*0.03+tm*0.7) * s
		wy := math.Cos(fx*0.025+tm*1.3) * math.Sin(fy*0.02+tm*0.5) * s
		return fx + wx, fy + wy, true
	}
}

// mirror reflects one half, one quadrant or the lower half-plane around the
// center onto the rest of the image.
func (c *pass) mirror() mapping {
	w, h := float64(c.w), float64(c.h)
	kind := c.opts.Experimental.Mirror
	return func(x, y int) (float64, float64, bool) {
		sx, sy := float64(x), float64(y)
		switch kind {
		case MirrorHorizontal:
			sx = fold(sx, w)
		case MirrorVertical:
			sy = fold(sy, h)
		case MirrorRadial:
			// Negating the polar angle reflects across the horizontal axis.
			sy = h - sy
		default:
			sx, sy = fold(sx, w), fold(sy, h)
		}
		return sx, sy, true
	}
}

func fold(v, size float64) float64 {
	if v < size/2 {
		return v
	}
	return size - 1 - v
}

// fractal iterates a drifting Mandelbrot-like map and colors each pixel by
// its escape count.
func (c *pass) fractal() {
	o := c.opts.Experimental
	iters := max(1, o.Iterations)
	tm := c.time * 0.5
	cr, ci := math.Cos(tm)*0.5, math.Sin(tm)*0.5
	w, h := float64(c.w), float64(c.h)

	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			zx := (float64(x) - w/2) / (w / 4) * o.Zoom
			zy := (float64(y) - h/2) / (h / 4) * o.Zoom
			px, py := zx+cr, zy+ci
			n := 0
			for n < iters && zx*zx+zy*zy < 4 {
				zx, zy = zx*zx-zy*zy+px, 2*zx*zy+py
				n++
			}
			v := float64(n) / float64(iters)
			hue := math.Mod(v*360+tm*100, 360)
			r, g, b := chroma(hue, v)
			c.put(c.dst.Offset(x, y), r*255, g*255, b*255)
		}
	}
}

// chroma converts a hue in degrees and a chroma equal to the value into RGB
// in [0, 1].
func chroma(hue, v float64) (r, g, b float64) {
	x := v * (1 - math.Abs(math.Mod(hue/60, 2)-1))
	switch {
	case hue < 60:
		return v, x, 0
	case hue < 120:
		return x, v, 0
	case hue < 180:
		return 0, v, x
	case hue < 240:
		return 0, x, v
	case hue < 300:
		return x, 0, v
	default:
		return v, 0, x
	}
}

// chromaticShift samples each channel from its own oscillating offset.
func (c *pass) chromaticShift() {
	s := c.opts.Experimental.ShiftAmount * c.t
	tm := c.time
	at := func(x, y float64, ch int) uint8 {
		sx := max(0, min(c.w-1, int(math.Max(0, x))))
		sy := max(0, min(c.h-1, int(math.Max(0, y))))
		return c.src.Pix[c.src.Offset(sx, sy)+ch]
	}
	for y := 0; y < c.h; y++ {
		fy := float64(y)
		rx := math.Sin(tm+fy*0.01) * s
		gx := math.Cos(tm*1.2+fy*0.01) * s
		bx := math.Sin(tm*0.8+fy*0.01) * s
		for x := 0; x < c.w; x++ {
			fx := float64(x)
			ry := math.Cos(tm*0.7+fx*0.01) * s * 0.5
			gy := math.Sin(tm*1.1+fx*0.01) * s * 0.5
			by := math.Cos(tm*0.9+fx*0.01) * s * 0.5
			i := c.dst.Offset(x, y)
			c.dst.Pix[i] = at(fx+rx, fy+ry, 0)
			c.dst.Pix[i+1] = at(fx+gx, fy+gy, 1)
			c.dst.Pix[i+2] = at(fx+bx, fy+by, 2)
		}
	}
}

// dataBend corrupts a random BendStrength×t share of pixels with a channel
// rotation, bit twiddling, static or inversion.
func (c *pass) dataBend() {
	p := c.src.Pix
	d := c.dst.Pix
	chance := c.opts.Experimental.BendStrength * c.t
	for i := 0; i < len(p); i += 4 {
		if c.rng.Float64() >= chance {
			continue
		}
		switch c.rng.IntN(4) {
		case 0:
			d[i], d[i+1], d[i+2] = p[i+2], p[i], p[i+1]
		case 1:
			d[i], d[i+1], d[i+2] = p[i]<<1, p[i+1]>>1, p[i+2]^0x55
		case 2:
			d[i], d[i+1], d[i+2] = uint8(c.rng.IntN(256)), uint8(c.rng.IntN(256)), uint8(c.rng.IntN(256))
		case 3:
			d[i], d[i+1], d[i+2] = 255-p[i], 255-p[i+1], 255-p[i+2]
		}
	}
}

// realityGlitch scatters rectangular blocks of static, channel split,
// scanline dropout, xor corruption or displacement, and flickers bright
// pixels during the first fifth of every 100ms window.
func (c *pass) realityGlitch() {
	t := c.t
	// One block per 500px of covered area keeps the cost independent of the
	// block size.
	blocks := int(float64(c.w*c.h) * c.opts.Experimental.GlitchDensity * t / 500)
	for range blocks {
		bx, by := c.rng.IntN(c.w), c.rng.IntN(c.h)
		bw, bh := 10+c.rng.IntN(50), 5+c.rng.IntN(20)
		kind := c.rng.IntN(5)
		for y := by; y < min(c.h, by+bh); y++ {
			for x := bx; x < min(c.w, bx+bw); x++ {
				c.glitchPixel(kind, x, y)
			}
		}
	}

	if math.Mod(c.time*1000, 100) >= 20 {
		return
	}
	d := c.dst.Pix
	for i := 0; i < len(d); i += 4 {
		if c.rng.Float64() < 0.1*t {
			r, g, b := c.drgb(i)
			c.put(i, r+100, g+100, b+100)
		}
	}
}

func (c *pass) glitchPixel(kind, x, y int) {
	i := c.dst.Offset(x, y)
	d, p := c.dst.Pix, c.src.Pix
	switch kind {
	case 0:
		d[i], d[i+1], d[i+2] = uint8(c.rng.IntN(256)), uint8(c.rng.IntN(256)), uint8(c.rng.IntN(256))
	case 1:
		off := c.rng.IntN(10)
		d[i] = p[c.src.Offset(min(c.w-1, x+off), y)]
		d[i+1] = p[i+1]
		d[i+2] = p[c.src.Offset(max(0, x-off), y)+2]
	case 2:
		if y%3 == 0 {
			d[i], d[i+1], d[i+2] = 0, 0, 0
		}
	case 3:
		d[i], d[i+1], d[i+2] = p[i]^0xFF, p[i+1], p[i+2]^0xAA
	case 4:
		dx := int(math.Floor((c.rng.Float64() - 0.5) * 20))
		dy := int(math.Floor((c.rng.Float64() - 0.5) * 10))
		c.copyFrom(i, x+dx, y+dy)
	}
}
