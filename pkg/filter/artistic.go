package filter

import (
	"math"
)

// Every artistic style renders the full effect into dst and then blends it
// with the source by intensity.
func (c *pass) artistic(style Style) {
	a := c.opts.Artistic
	switch style {
	case ArtisticOilPainting:
		c.oilPainting(a.OilPainting)
	case ArtisticWatercolor:
		c.watercolor(a.Watercolor)
	case ArtisticPencilSketch:
		c.pencilSketch(a.PencilSketch)
	case ArtisticMosaic:
		c.mosaic(a.Mosaic)
	case ArtisticStainedGlass:
		c.stainedGlass(a.StainedGlass)
	case ArtisticComicBook:
		c.comicBook(a.ComicBook)
	case ArtisticCrosshatch:
		c.crosshatch(a.Crosshatch)
	case ArtisticPointillism:
		c.pointillism(a.Pointillism)
	default:
		return
	}
	c.mix()
}

// fill paints the clipped rectangle [x0,x1)×[y0,y1) of dst.
func (c *pass) fill(x0, y0, x1, y1 int, r, g, b float64) {
	for y := max(0, y0); y < min(c.h, y1); y++ {
		for x := max(0, x0); x < min(c.w, x1); x++ {
			c.put(c.dst.Offset(x, y), r, g, b)
		}
	}
}

// integral is a summed-area table of the three color channels, giving O(1)
// box means.
type integral struct {
	w, h int
	sum  [3][]float64 // (w+1)×(h+1)
}

func newIntegral(c *pass) *integral {
	in := &integral{w: c.w, h: c.h}
	stride := c.w + 1
	for ch := range in.sum {
		in.sum[ch] = make([]float64, stride*(c.h+1))
	}
	for y := 0; y < c.h; y++ {
		var row [3]float64
		for x := 0; x < c.w; x++ {
			p := c.src.Pix[c.src.Offset(x, y):]
			for ch := range 3 {
				row[ch] += float64(p[ch])
				in.sum[ch][(y+1)*stride+x+1] = in.sum[ch][y*stride+x+1] + row[ch]
			}
		}
	}
	return in
}

// mean returns the channel means over the clipped rectangle [x0,x1)×[y0,y1)
// and the number of pixels it covers.
func (in *integral) mean(x0, y0, x1, y1 int) (r, g, b float64, n int) {
	x0, y0 = max(0, x0), max(0, y0)
	x1, y1 = min(in.w, x1), min(in.h, y1)
	if x1 <= x0 || y1 <= y0 {
		return 0, 0, 0, 0
	}
	n = (x1 - x0) * (y1 - y0)
	stride := in.w + 1
	box := func(s []float64) float64 {
		return s[y1*stride+x1] - s[y0*stride+x1] - s[y1*stride+x0] + s[y0*stride+x0]
	}
	fn := float64(n)
	return box(in.sum[0]) / fn, box(in.sum[1]) / fn, box(in.sum[2]) / fn, n
}

// oilPainting lays randomly oriented rectangular strokes, each the textured
// mean of the area it covers, smeared into the previous stroke of the row.
func (c *pass) oilPainting(o OilPaintingOptions) {
	brush := max(1, o.BrushSize)
	stroke := max(1, o.StrokeLength)
	step := max(1, brush*3/4)
	in := newIntegral(c)

	for y := 0; y < c.h; y += step {
		var lr, lg, lb float64
		first := true
		for x := 0; x < c.w; x += step {
			sw, sh := stroke, brush
			if c.rng.IntN(2) == 0 {
				sw, sh = brush, stroke
			}
			hw, hh := sw/2, sh/2
			r, g, b, n := in.mean(x-hw, y-hh, x+hw+1, y+hh+1)
			if n == 0 {
				continue
			}
			r = clamp255(r + (c.rng.Float64()-0.5)*40*o.TextureStrength)
			g = clamp255(g + (c.rng.Float64()-0.5)*40*o.TextureStrength)
			b = clamp255(b + (c.rng.Float64()-0.5)*40*o.TextureStrength)

			sr, sg, sb := r, g, b
			if !first {
				k := o.ColorSmearing
				sr, sg, sb = r*(1-k)+lr*k, g*(1-k)+lg*k, b*(1-k)+lb*k
			}
			first = false
			lr, lg, lb = r, g, b
			c.fill(x-hw, y-hh, x+hw+1, y+hh+1, sr, sg, sb)
		}
	}
}

// watercolor bleeds colors with a box blur, boosts pigment saturation,
// darkens pixels that differ from their neighborhood and adds paper grain.
func (c *pass) watercolor(o WatercolorOptions) {
	radius := int(3 + o.Bleed*5)
	in := newIntegral(c)
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			r, g, b, _ := in.mean(x-radius, y-radius, x+radius+1, y+radius+1)
			avg := (r + g + b) / 3
			k := 1 + o.PigmentDensity
			r, g, b = avg+(r-avg)*k, avg+(g-avg)*k, avg+(b-avg)*k

			if o.EdgeDarkening > 0 {
				lr, lg, lb, _ := in.mean(x-1, y-1, x+2, y+2)
				i := c.src.Offset(x, y)
				cr, cg, cb := c.rgb(i)
				if math.Abs((cr+cg+cb)/3-(lr+lg+lb)/3) > 10 {
					d := 1 - o.EdgeDarkening*0.5
					r, g, b = r*d, g*d, b*d
				}
			}
			if o.PaperTexture > 0 {
				tex := (c.rng.Float64() - 0.5) * 30 * o.PaperTexture
				r, g, b = r+tex, g+tex, b+tex
			}
			c.put(c.dst.Offset(x, y), r, g, b)
		}
	}
}

// pencilSketch draws strong Sobel edges as graphite strokes on white paper
// and hatches random dark pixels.
func (c *pass) pencilSketch(o PencilSketchOptions) {
	gray := grayscale(c.src)
	c.fill(0, 0, c.w, c.h, 255, 255, 255)
	for y := 1; y < c.h-1; y++ {
		for x := 1; x < c.w-1; x++ {
			edge := sobel(gray, c.w, x, y)
			v := 255.0
			if edge > o.EdgeThreshold {
				v = math.Max(0, 255-edge*(1+o.GraphiteShading))
			} else if lum := gray[y*c.w+x]; lum < 128 && c.rng.Float64() < o.HatchDensity {
				v = lum * (1 - o.GraphiteShading*0.5)
			}
			c.put(c.dst.Offset(x, y), v, v, v)
		}
	}
}

// mosaic averages each tile's interior and separates tiles with grout lines.
func (c *pass) mosaic(o MosaicOptions) {
	tile := max(1, o.TileSize)
	grout := max(0, o.Grout)
	in := newIntegral(c)
	gr, gg, gb := float64(o.GroutColor[0]), float64(o.GroutColor[1]), float64(o.GroutColor[2])

	for ty := 0; ty < c.h; ty += tile {
		for tx := 0; tx < c.w; tx += tile {
			r, g, b, _ := in.mean(tx+grout, ty+grout, tx+tile-grout, ty+tile-grout)
			if o.ColorVariation > 0 {
				v := (c.rng.Float64() - 0.5) * 50 * o.ColorVariation
				r, g, b = clamp255(r+v), clamp255(g+v), clamp255(b+v)
			}
			c.fill(tx, ty, tx+tile, ty+tile, gr, gg, gb)
			c.fill(tx+grout, ty+grout, tx+tile-grout, ty+tile-grout, r, g, b)
		}
	}
}

// stainedGlass partitions the image into Voronoi cells around one jittered
// seed per CellSize grid square, fills each cell with its seed's color and
// leads the cell boundaries.
func (c *pass) stainedGlass(o StainedGlassOptions) {
	cell := max(4, o.CellSize)
	gw, gh := (c.w+cell-1)/cell, (c.h+cell-1)/cell

	type seed struct {
		x, y    float64
		r, g, b float64
	}
	seeds := make([]seed, gw*gh)
	for j := 0; j < gh; j++ {
		for i := 0; i < gw; i++ {
			sx := math.Min(float64(c.w-1), float64(i*cell)+c.rng.Float64()*float64(cell))
			sy := math.Min(float64(c.h-1), float64(j*cell)+c.rng.Float64()*float64(cell))
			r, g, b := c.rgb(c.src.Offset(int(sx), int(sy)))
			seeds[j*gw+i] = seed{sx, sy, r, g, b}
		}
	}

	label := make([]int32, c.w*c.h)
	dist := make([]float64, c.w*c.h)
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			ci, cj := x/cell, y/cell
			best, bestD := -1, math.Inf(1)
			for j := max(0, cj-1); j <= min(gh-1, cj+1); j++ {
				for i := max(0, ci-1); i <= min(gw-1, ci+1); i++ {
					s := seeds[j*gw+i]
					if d := math.Hypot(float64(x)-s.x, float64(y)-s.y); d < bestD {
						best, bestD = j*gw+i, d
					}
				}
			}
			label[y*c.w+x] = int32(best)
			dist[y*c.w+x] = bestD
		}
	}

	reach := max(1, o.BorderThickness/2)
	border := func(x, y int) bool {
		if o.BorderThickness <= 0 {
			return false
		}
		l := label[y*c.w+x]
		for d := 1; d <= reach; d++ {
			if (x+d < c.w && label[y*c.w+x+d] != l) ||
				(x-d >= 0 && label[y*c.w+x-d] != l) ||
				(y+d < c.h && label[(y+d)*c.w+x] != l) ||
				(y-d >= 0 && label[(y-d)*c.w+x] != l) {
				return true
			}
		}
		return false
	}

	br, bg, bb := float64(o.BorderColor[0]), float64(o.BorderColor[1]), float64(o.BorderColor[2])
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			i := c.dst.Offset(x, y)
			if border(x, y) {
				c.put(i, br, bg, bb)
				continue
			}
			s := seeds[label[y*c.w+x]]
			shift := math.Sin(math.Min(1, dist[y*c.w+x]/float64(cell))*math.Pi) * 20 * o.LightRefraction
			c.put(i, s.r+shift, s.g-shift, s.b+shift*0.5)
		}
	}
}

// comicBook posterizes to ColorLevels per channel, optionally screens with
// halftone dots and inks Sobel edges black.
func (c *pass) comicBook(o ComicBookOptions) {
	levels := max(2, o.ColorLevels)
	step := 255 / float64(levels-1)
	threshold := o.EdgeThreshold * (1.1 - o.InkStrength)
	gray := grayscale(c.src)

	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			i := c.src.Offset(x, y)
			if x > 0 && y > 0 && x < c.w-1 && y < c.h-1 && sobel(gray, c.w, x, y) > threshold {
				c.put(i, 0, 0, 0)
				continue
			}
			r, g, b := c.rgb(i)
			r, g, b = math.Round(r/step)*step, math.Round(g/step)*step, math.Round(b/step)*step
			if dot := o.HalftoneDot; dot > 0 {
				rad := float64(dot) / 2
				lum := gray[y*c.w+x] / 255
				dx, dy := float64(x%dot)-rad, float64(y%dot)-rad
				if dx*dx+dy*dy > (lum*rad)*(lum*rad) {
					r, g, b = r*0.6, g*0.6, b*0.6
				}
			}
			c.put(i, r, g, b)
		}
	}
}

var (
	hatchAngles = [...]float64{0, math.Pi / 2, math.Pi / 4, 3 * math.Pi / 4}
	darkAngles  = [...]float64{math.Pi / 8, 3 * math.Pi / 8, 5 * math.Pi / 8, 7 * math.Pi / 8}
	// Darkness thresholds at which each successive hatch layer appears.
	hatchLevels = [...]float64{0.1, 0.3, 0.5, 0.7}
)

// crosshatch draws up to eight layers of parallel lines; darker pixels get
// more layers.
func (c *pass) crosshatch(o CrosshatchOptions) {
	spacing := math.Max(1, o.LineSpacing)
	half := math.Max(1, o.LineThickness) / 2
	bg := 255 * o.Background
	ink := bg * (1 - o.Darkness)
	gray := grayscale(c.src)

	hit := func(x, y int, angle float64) bool {
		a := angle + (c.rng.Float64()-0.5)*2*o.AngleVariation
		p := float64(x)*math.Cos(a) + float64(y)*math.Sin(a)
		return math.Abs(math.Mod(p, spacing)) < half
	}

	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			dark := (255 - gray[y*c.w+x]) / 255
			v := bg
			for n, level := range hatchLevels {
				if dark > level && hit(x, y, hatchAngles[n]) {
					v = ink
				}
			}
			if dark > 0.85 && (hit(x, y, darkAngles[0]) || hit(x, y, darkAngles[1])) {
				v = ink
			}
			if dark > 0.95 && (hit(x, y, darkAngles[2]) || hit(x, y, darkAngles[3])) {
				v = ink
			}
			c.put(c.dst.Offset(x, y), v, v, v)
		}
	}
}

// pointillism dabs saturated dots sampled from the source onto a light
// background.
func (c *pass) pointillism(o PointillismOptions) {
	size := max(1, o.DotSize)
	density := math.Max(0.1, math.Min(1, o.Density))
	spacing := max(size+1, int(float64(size)/density))
	jitter := float64(spacing) * 0.25
	bg := math.Floor(255 * o.Background)
	c.fill(0, 0, c.w, c.h, bg, bg, bg)

	for y := size; y < c.h-size; y += spacing {
		for x := size; x < c.w-size; x += spacing {
			dx := int(math.Floor(float64(x) + (c.rng.Float64()-0.5)*jitter))
			dy := int(math.Floor(float64(y) + (c.rng.Float64()-0.5)*jitter))
			if dx < size || dx >= c.w-size || dy < size || dy >= c.h-size {
				continue
			}
			r, g, b := c.rgb(c.src.Offset(dx, dy))
			if o.ColorVariation > 0 {
				v := (c.rng.Float64() - 0.5) * 50 * o.ColorVariation
				r, g, b = clamp255(r+v), clamp255(g+v), clamp255(b+v)
			}
			avg := (r + g + b) / 3
			r = clamp255(avg + (r-avg)*1.3)
			g = clamp255(avg + (g-avg)*1.3)
			b = clamp255(avg + (b-avg)*1.3)
			c.dot(dx, dy, size, o.Shape, r, g, b)
		}
	}
}

// dot paints a square or anti-aliased circular dot of the given radius over
// dst.
func (c *pass) dot(cx, cy, radius int, shape DotShape, r, g, b float64) {
	rad := float64(radius)
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			if !c.dst.In(x, y) {
				continue
			}
			alpha := 1.0
			if shape == ShapeCircle {
				d := math.Hypot(float64(x-cx), float64(y-cy))
				if d > rad {
					continue
				}
				if d > rad-1 {
					alpha = rad - d
				}
			}
			i := c.dst.Offset(x, y)
			p := c.dst.Pix
			c.put(i,
				float64(p[i])+(r-float64(p[i]))*alpha,
				float64(p[i+1])+(g-float64(p[i+1]))*alpha,
				float64(p[i+2])+(b-float64(p[i+2]))*alpha)
		}
	}
}

func clamp255(v float64) float64 {
	return math.Max(0, math.Min(255, v))
}
