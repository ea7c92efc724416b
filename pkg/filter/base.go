package filter

import (
	"math"

	"github.com/tanema/gween/ease"
)

// =============================================================================
// Emboss
// =============================================================================

// emboss convolves interior pixels with a directional 3×3 kernel. Weights grow
// along the light direction given by Angle; at 45° the kernel is the classic
// [-2 -1 0; -1 1 1; 0 1 2] scaled by Depth.
func (c *pass) emboss() {
	o := c.opts.Emboss
	rad := o.Angle * math.Pi / 180
	ux, uy := math.Cos(rad)*math.Sqrt2, math.Sin(rad)*math.Sqrt2

	var kernel [3][3]float64
	for ky := -1; ky <= 1; ky++ {
		for kx := -1; kx <= 1; kx++ {
			kernel[ky+1][kx+1] = o.Depth * (float64(kx)*ux + float64(ky)*uy)
		}
	}
	kernel[1][1] = 1

	for y := 1; y < c.h-1; y++ {
		for x := 1; x < c.w-1; x++ {
			var r, g, b float64
			for ky := 0; ky < 3; ky++ {
				for kx := 0; kx < 3; kx++ {
					wgt := kernel[ky][kx]
					pr, pg, pb := c.rgb(c.src.Offset(x+kx-1, y+ky-1))
					r += pr * wgt
					g += pg * wgt
					b += pb * wgt
				}
			}
			i := c.src.Offset(x, y)
			or, og, ob := c.rgb(i)
			switch o.Blend {
			case EmbossColor:
				f := ((r+g+b)/3 + 128) / 128
				c.put(i, or*f, og*f, ob*f)
			case EmbossOverlay:
				c.put(i, (r+128+or)/2, (g+128+og)/2, (b+128+ob)/2)
			default:
				v := (r+g+b)/3 + 128
				c.put(i, v, v, v)
			}
		}
	}
	c.mix()
}

// =============================================================================
// Edge detection
// =============================================================================

var (
	sobelX     = [][]float64{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	sobelY     = [][]float64{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}
	prewittX   = [][]float64{{-1, 0, 1}, {-1, 0, 1}, {-1, 0, 1}}
	prewittY   = [][]float64{{-1, -1, -1}, {0, 0, 0}, {1, 1, 1}}
	robertsX   = [][]float64{{1, 0}, {0, -1}}
	robertsY   = [][]float64{{0, 1}, {-1, 0}}
	laplaceKer = [][]float64{{0, -1, 0}, {-1, 4, -1}, {0, -1, 0}}
)

// edgeDetect paints pixels whose gradient magnitude exceeds Threshold with
// the edge color and everything else with the background. Magnitudes are
// computed on the channel mean and capped at 255; border pixels outside the
// kernel's reach count as non-edges. A threshold of 0 is honored.
func (c *pass) edgeDetect() {
	o := c.opts.Edge
	kx, ky := sobelX, sobelY
	switch o.Method {
	case EdgePrewitt:
		kx, ky = prewittX, prewittY
	case EdgeRoberts:
		kx, ky = robertsX, robertsY
	case EdgeLaplacian:
		kx, ky = laplaceKer, nil
	}
	size, offset := 3, 1
	if o.Method == EdgeRoberts {
		size, offset = 2, 0
	}

	gray := make([]float64, c.w*c.h)
	for i := range gray {
		r, g, b := c.rgb(i * 4)
		gray[i] = (r + g + b) / 3
	}

	edges := make([]float64, c.w*c.h)
	for y := offset; y < c.h-offset; y++ {
		for x := offset; x < c.w-offset; x++ {
			var gx, gy float64
			for j := 0; j < size; j++ {
				for i := 0; i < size; i++ {
					px, py := x+i-offset, y+j-offset
					if px < 0 || px >= c.w || py < 0 || py >= c.h {
						continue
					}
					v := gray[py*c.w+px]
					gx += v * kx[j][i]
					if ky != nil {
						gy += v * ky[j][i]
					}
				}
			}
			edges[y*c.w+x] = math.Min(255, math.Hypot(gx, gy))
		}
	}

	var bg [3]float64
	if o.Background == BackgroundWhite {
		bg = [3]float64{255, 255, 255}
	}
	for n, e := range edges {
		i := n * 4
		switch {
		case e > o.Threshold:
			c.put(i, float64(o.Color[0]), float64(o.Color[1]), float64(o.Color[2]))
		case o.Background == BackgroundOriginal:
			r, g, b := c.rgb(i)
			c.put(i, r, g, b)
		default:
			c.put(i, bg[0], bg[1], bg[2])
		}
	}
	c.mix()
}

// =============================================================================
// Motion blur
// =============================================================================

// fadeCurves map a sample's normalized distance from the center (0–1) to the
// eased falloff; the sample weight is one minus the curve.
var fadeCurves = map[BlurFade]ease.TweenFunc{
	FadeLinear:      ease.Linear,
	FadeExponential: ease.OutExpo,
	FadeSine:        ease.InSine,
}

func fadeWeight(fade BlurFade, at float64) float64 {
	fn, ok := fadeCurves[fade]
	if !ok {
		return 1
	}
	return 1 - float64(fn(float32(at), 0, 1, 1))
}

// motionBlur averages samples along a direction vector. Both the sampled
// distance and the final blend scale with intensity.
func (c *pass) motionBlur() {
	o := c.opts.MotionBlur
	if o.Direction == BlurRadial {
		c.radialBlur()
		return
	}
	distance := math.Floor(o.Distance * c.t)

	var dx, dy float64
	switch o.Direction {
	case BlurHorizontal:
		dx = 1
	case BlurVertical:
		dy = 1
	case BlurDiagonal:
		dx, dy = math.Sqrt2/2, math.Sqrt2/2
	case BlurDiagonalLeft:
		dx, dy = -math.Sqrt2/2, math.Sqrt2/2
	case BlurCustom:
		rad := o.Angle * math.Pi / 180
		dx, dy = math.Cos(rad), math.Sin(rad)
	}

	samples := int(distance)
	switch o.Quality {
	case QualityFast:
		samples = max(3, samples/2)
	case QualityHigh:
		samples *= 2
	}
	if samples < 2 || distance == 0 {
		return
	}

	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			var r, g, b, total float64
			for s := 0; s < samples; s++ {
				at := float64(s)/float64(samples-1)*2 - 1
				nx := int(math.Round(float64(x) + at*distance*dx))
				ny := int(math.Round(float64(y) + at*distance*dy))
				if nx < 0 || nx >= c.w || ny < 0 || ny >= c.h {
					continue
				}
				wgt := fadeWeight(o.Fade, math.Abs(at))
				pr, pg, pb := c.rgb(c.src.Offset(nx, ny))
				r += pr * wgt
				g += pg * wgt
				b += pb * wgt
				total += wgt
			}
			if total > 0 {
				c.put(c.src.Offset(x, y), r/total, g/total, b/total)
			}
		}
	}
	c.mix()
}

// radialBlur samples eight points along the radius (zoom) or around the arc
// (spin) through each pixel, centered on the buffer.
func (c *pass) radialBlur() {
	const samples = 8
	cx, cy := float64(c.w)/2, float64(c.h)/2
	spin := c.opts.MotionBlur.Radial == RadialSpin

	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			dx, dy := float64(x)-cx, float64(y)-cy
			dist := math.Hypot(dx, dy)
			angle := math.Atan2(dy, dx)
			var r, g, b float64
			n := 0
			for s := 0; s < samples; s++ {
				at := float64(s)/(samples-1)*2 - 1
				var sx, sy float64
				if spin {
					a := angle + at*c.t*0.2
					sx, sy = cx+dist*math.Cos(a), cy+dist*math.Sin(a)
				} else {
					f := 1 + at*c.t*0.1
					sx, sy = cx+dx*f, cy+dy*f
				}
				nx, ny := int(math.Round(sx)), int(math.Round(sy))
				if nx < 0 || nx >= c.w || ny < 0 || ny >= c.h {
					continue
				}
				pr, pg, pb := c.rgb(c.src.Offset(nx, ny))
				r, g, b = r+pr, g+pg, b+pb
				n++
			}
			if n > 0 {
				fn := float64(n)
				c.put(c.src.Offset(x, y), r/fn, g/fn, b/fn)
			}
		}
	}
	c.mix()
}

// =============================================================================
// Vignette
// =============================================================================

// vignette darkens (or tints toward Color) with distance from the center.
// Softness sets the falloff exponent between 1 and 4.
func (c *pass) vignette() {
	o := c.opts.Vignette
	size := o.Size / 100
	cx, cy := float64(c.w)*o.CenterX/100, float64(c.h)*o.CenterY/100
	maxDist := math.Hypot(cx, cy) * (2 - size)
	if maxDist <= 0 {
		return
	}
	power := 1 + (1-o.Softness/100)*3
	aspect := float64(c.w) / float64(c.h)
	tinted := o.Color != RGB{}

	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			dx, dy := float64(x)-cx, float64(y)-cy
			var dist float64
			switch o.Shape {
			case VignetteSquare:
				dist = math.Max(math.Abs(dx), math.Abs(dy))
			case VignetteElliptical:
				dist = math.Sqrt(dx*dx + dy*dy*aspect*aspect)
			default:
				dist = math.Hypot(dx, dy)
			}
			f := math.Pow(math.Max(0, math.Min(1, 1-dist/maxDist)), power)

			i := c.src.Offset(x, y)
			r, g, b := c.rgb(i)
			if !tinted {
				c.put(i, r*f, g*f, b*f)
				continue
			}
			k := 1 - f
			c.put(i,
				r+(float64(o.Color[0])-r)*k,
				g+(float64(o.Color[1])-g)*k,
				b+(float64(o.Color[2])-b)*k)
		}
	}
	c.mix()
}

// =============================================================================
// Halftone
// =============================================================================

// halftone replaces each DotSize cell with a dot whose radius shrinks as the
// cell's mean brightness rises above Threshold.
func (c *pass) halftone() {
	o := c.opts.Halftone
	size := max(1, o.DotSize)
	rad := -o.Angle * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	threshold := math.Min(o.Threshold, 254)
	half := float64(size) / 2

	for by := 0; by < c.h; by += size {
		for bx := 0; bx < c.w; bx += size {
			var sum, ar, ag, ab float64
			n := 0
			for y := by; y < min(by+size, c.h); y++ {
				for x := bx; x < min(bx+size, c.w); x++ {
					r, g, b := c.rgb(c.src.Offset(x, y))
					sum += (r + g + b) / 3
					ar, ag, ab = ar+r, ag+g, ab+b
					n++
				}
			}
			fn := float64(n)
			avg := sum / fn
			ar, ag, ab = ar/fn, ag/fn, ab/fn
			adjusted := math.Max(0, (avg-threshold)/(255-threshold)*255)
			radius := half * (1 - adjusted/255)

			for y := by; y < min(by+size, c.h); y++ {
				for x := bx; x < min(bx+size, c.w); x++ {
					relX, relY := float64(x-bx)-half, float64(y-by)-half
					rx := relX*cos - relY*sin
					ry := relX*sin + relY*cos
					in := inDot(o.Pattern, rx, ry, radius)

					i := c.src.Offset(x, y)
					switch o.ColorMode {
					case HalftoneDuotone:
						col := o.Duotone[1]
						if in {
							col = o.Duotone[0]
						}
						c.put(i, float64(col[0]), float64(col[1]), float64(col[2]))
					case HalftoneFullColor:
						f := 1.0
						if in {
							f = 0.3
						}
						c.put(i, ar*f, ag*f, ab*f)
					default:
						v := 255.0
						if in {
							v = 0
						}
						c.put(i, v, v, v)
					}
				}
			}
		}
	}
	c.mix()
}

func inDot(p DotPattern, x, y, r float64) bool {
	switch p {
	case DotSquare:
		return math.Abs(x) <= r && math.Abs(y) <= r
	case DotDiamond:
		return math.Abs(x)+math.Abs(y) <= r
	case DotLines:
		return math.Abs(y) <= r/4
	case DotCrosshatch:
		return math.Abs(y) <= r/4 || math.Abs(x) <= r/4
	default:
		return math.Hypot(x, y) <= r
	}
}

// =============================================================================
// Liquify
// =============================================================================

// liquify warps a disc around the buffer center with a cosine falloff. The
// intensity scales the displacement itself rather than blending the result.
func (c *pass) liquify() {
	o := c.opts.Liquify
	cx, cy := float64(c.w)/2, float64(c.h)/2
	radius := float64(max(c.w, c.h)) / 2 * o.Coverage / 100
	if radius <= 0 {
		return
	}

	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			dx, dy := float64(x)-cx, float64(y)-cy
			dist := math.Hypot(dx, dy)
			if dist >= radius {
				continue
			}
			falloff := 0.5 * (1 + math.Cos(math.Pi*dist/radius))
			k := falloff * o.Strength / 100 * c.t

			sx, sy := float64(x), float64(y)
			switch o.Warp {
			case WarpPush:
				if dist > 0 {
					sx, sy = sx-dx/dist*k*40, sy-dy/dist*k*40
				}
			case WarpPull:
				if dist > 0 {
					sx, sy = sx+dx/dist*k*40, sy+dy/dist*k*40
				}
			case WarpTwirl:
				if dist > 0 {
					a := math.Atan2(dy, dx) + k*1.5
					sx, sy = cx+dist*math.Cos(a), cy+dist*math.Sin(a)
				}
			case WarpBloat:
				s := 1 + k
				sx, sy = cx+dx/s, cy+dy/s
			case WarpPinch:
				s := math.Max(0.1, 1-k)
				sx, sy = cx+dx/s, cy+dy/s
			}
			r, g, b := bilinear(c.src, sx, sy)
			c.put(c.src.Offset(x, y), r, g, b)
		}
	}
}

// =============================================================================
// Color grading
// =============================================================================

// colorGrading applies lift/gamma/gain style tone offsets weighted by
// luminance band, then temperature, tint, saturation and vibrance. All
// adjustments scale with intensity.
func (c *pass) colorGrading() {
	o := c.opts.ColorGrading
	t := c.t
	temp, tint := o.Temperature/100, o.Tint/100
	vibrance := o.Vibrance / 100
	saturation := 1 + o.Saturation/100

	for i := 0; i < len(c.src.Pix); i += 4 {
		r, g, b := c.rgb(i)
		r, g, b = r/255, g/255, b/255

		lum := 0.2126*r + 0.7152*g + 0.0722*b
		sw := math.Max(0, 1-lum*2)
		hw := math.Max(0, (lum-0.5)*2)
		mw := 1 - sw - hw

		r += (o.Shadows.R*sw + o.Midtones.R*mw + o.Highlights.R*hw) / 100 * t
		g += (o.Shadows.G*sw + o.Midtones.G*mw + o.Highlights.G*hw) / 100 * t
		b += (o.Shadows.B*sw + o.Midtones.B*mw + o.Highlights.B*hw) / 100 * t

		r += temp * 0.2 * t
		b -= temp * 0.2 * t
		g += tint * 0.2 * t

		if saturation != 1 || vibrance != 0 {
			gray := 0.2126*r + 0.7152*g + 0.0722*b
			r = gray + (r-gray)*saturation
			g = gray + (g-gray)*saturation
			b = gray + (b-gray)*saturation
			if vibrance != 0 {
				sat := math.Max(r, math.Max(g, b)) - math.Min(r, math.Min(g, b))
				v := 1 + vibrance*(1-sat)*t
				r = gray + (r-gray)*v
				g = gray + (g-gray)*v
				b = gray + (b-gray)*v
			}
		}
		c.put(i, r*255, g*255, b*255)
	}
}

// =============================================================================
// Noise
// =============================================================================

// noise adds film grain, uniform digital noise, a smooth sine field or a
// hashed cellular pattern. Amount and intensity scale the offset.
func (c *pass) noise() {
	o := c.opts.Noise
	size := math.Max(o.Size, 0.01)
	scale := o.Amount / 100 * c.t * 255

	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			var v float64
			switch o.Type {
			case NoiseFilm:
				v = (c.rng.Float64() - 0.5) * 2
				if c.rng.Float64() < 0.1 {
					v *= 2
				}
			case NoiseDigital:
				v = (c.rng.Float64() - 0.5) * 2
			case NoisePerlin:
				f := 0.1 / size
				fx, fy := float64(x), float64(y)
				v = math.Sin(fx*f)*math.Cos(fy*f) + math.Sin(fx*f*2)*math.Cos(fy*f*2)*0.5
				v = (v+1.5)/3 - 0.5
			case NoiseCellular:
				cell := math.Max(1, size*2)
				cellX, cellY := int(float64(x)/cell), int(float64(y)/cell)
				hash := (int32(cellX*73856093) ^ int32(cellY*19349663)) % 1000000
				v = (float64(hash)/1000000 - 0.5) * 2
			}

			n := v * scale
			i := c.src.Offset(x, y)
			r, g, b := c.rgb(i)
			if o.Color {
				c.put(i,
					r+n*(0.8+c.rng.Float64()*0.4),
					g+n*(0.8+c.rng.Float64()*0.4),
					b+n*(0.8+c.rng.Float64()*0.4))
			} else {
				c.put(i, r+n, g+n, b+n)
			}
		}
	}
}
