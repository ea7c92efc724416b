package filter

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/glitcher/internal/randutil"
	"github.com/matzehuels/glitcher/pkg/bitmap"
)

// frameRate converts Spec.Frame into seconds for the animated styles.
const frameRate = 60

// Spec describes one filter application.
type Spec struct {
	Kind
	Intensity float64 // 0–100
	Options   Options
	Frame     int        // drives animated styles; never wall-clock time
	Rand      *rand.Rand // nil uses a generator seeded from Frame
}

// Apply renders spec over src into a new buffer. src is never modified. Off,
// zero intensity and empty inputs return a plain copy.
func Apply(src *bitmap.Buffer, spec Spec) *bitmap.Buffer {
	dst := src.Clone()
	if src.Empty() || spec.Family == Off || spec.Intensity <= 0 {
		return dst
	}
	c := &pass{
		src:  src,
		dst:  dst,
		t:    math.Max(0, math.Min(spec.Intensity, 100)) / 100,
		opts: spec.Options,
		rng:  spec.Rand,
		time: float64(spec.Frame) / frameRate,
		w:    src.Width,
		h:    src.Height,
	}
	if c.rng == nil {
		c.rng = randutil.New(uint64(spec.Frame))
	}

	switch spec.Family {
	case Emboss:
		c.emboss()
	case EdgeDetect:
		c.edgeDetect()
	case MotionBlur:
		c.motionBlur()
	case Vignette:
		c.vignette()
	case Halftone:
		c.halftone()
	case Liquify:
		c.liquify()
	case ColorGrading:
		c.colorGrading()
	case Noise:
		c.noise()
	case PopArt:
		c.popArt(spec.Style)
	case Vintage:
		c.vintage(spec.Style)
	case Cyberpunk:
		c.cyberpunk(spec.Style)
	case Artistic:
		c.artistic(spec.Style)
	case Atmospheric:
		c.atmospheric(spec.Style)
	case Experimental:
		c.experimental(spec.Style)
	}
	return dst
}

// pass carries the state of one Apply call. dst starts as a copy of src.
type pass struct {
	src, dst *bitmap.Buffer
	t        float64 // normalized intensity
	opts     Options
	rng      *rand.Rand
	time     float64 // seconds since frame zero
	w, h     int
}

// mix blends every dst pixel back toward src, keeping t of the effect. Alpha
// is taken from src.
func (c *pass) mix() {
	s, d := c.src.Pix, c.dst.Pix
	for i := 0; i < len(d); i += 4 {
		d[i] = bitmap.Lerp(s[i], d[i], c.t)
		d[i+1] = bitmap.Lerp(s[i+1], d[i+1], c.t)
		d[i+2] = bitmap.Lerp(s[i+2], d[i+2], c.t)
		d[i+3] = s[i+3]
	}
}

// put writes an RGB triple at byte offset i of dst, clamping each channel.
func (c *pass) put(i int, r, g, b float64) {
	c.dst.Pix[i] = bitmap.Clamp(r)
	c.dst.Pix[i+1] = bitmap.Clamp(g)
	c.dst.Pix[i+2] = bitmap.Clamp(b)
}

// rgb returns the src channels at byte offset i as floats.
func (c *pass) rgb(i int) (float64, float64, float64) {
	p := c.src.Pix
	return float64(p[i]), float64(p[i+1]), float64(p[i+2])
}

// copyFrom copies the src pixel at (sx, sy) into dst at byte offset i,
// clamping the source coordinates to the buffer.
func (c *pass) copyFrom(i, sx, sy int) {
	sx = max(0, min(sx, c.w-1))
	sy = max(0, min(sy, c.h-1))
	j := c.src.Offset(sx, sy)
	copy(c.dst.Pix[i:i+3], c.src.Pix[j:j+3])
}

// bilinear samples src at a fractional position clamped to the buffer.
func bilinear(src *bitmap.Buffer, x, y float64) (r, g, b float64) {
	x = math.Max(0, math.Min(float64(src.Width-1), x))
	y = math.Max(0, math.Min(float64(src.Height-1), y))
	x1, y1 := int(x), int(y)
	x2, y2 := min(src.Width-1, x1+1), min(src.Height-1, y1+1)
	fx, fy := x-float64(x1), y-float64(y1)

	p := src.Pix
	i1, i2 := src.Offset(x1, y1), src.Offset(x2, y1)
	i3, i4 := src.Offset(x1, y2), src.Offset(x2, y2)
	w1, w2 := (1-fx)*(1-fy), fx*(1-fy)
	w3, w4 := (1-fx)*fy, fx*fy
	ch := func(o int) float64 {
		return w1*float64(p[i1+o]) + w2*float64(p[i2+o]) + w3*float64(p[i3+o]) + w4*float64(p[i4+o])
	}
	return ch(0), ch(1), ch(2)
}

// grayscale returns the Rec. 601 luma of every src pixel.
func grayscale(src *bitmap.Buffer) []float64 {
	out := make([]float64, src.Width*src.Height)
	for i := range out {
		p := src.Pix[i*4:]
		out[i] = 0.299*float64(p[0]) + 0.587*float64(p[1]) + 0.114*float64(p[2])
	}
	return out
}

// sobel returns the gradient magnitude at interior pixel (x, y) of a
// single-channel image.
func sobel(gray []float64, w, x, y int) float64 {
	at := func(dx, dy int) float64 { return gray[(y+dy)*w+x+dx] }
	gx := -at(-1, -1) + at(1, -1) - 2*at(-1, 0) + 2*at(1, 0) - at(-1, 1) + at(1, 1)
	gy := -at(-1, -1) - 2*at(0, -1) - at(1, -1) + at(-1, 1) + 2*at(0, 1) + at(1, 1)
	return math.Hypot(gx, gy)
}
