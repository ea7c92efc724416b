package selection

import (
	"math"

	"github.com/matzehuels/glitcher/internal/randutil"
	"github.com/matzehuels/glitcher/pkg/bitmap"
)

// blobPoints is the number of vertices on an organic outline.
const blobPoints = 16

// Vertex is a sub-pixel outline point.
type Vertex struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Shape is an organic blob. Effects only use Bounds; the outline is kept for
// path-based overlays.
type Shape struct {
	CenterX int           `json:"center_x"`
	CenterY int           `json:"center_y"`
	Radius  int           `json:"radius"`
	Outline []Vertex      `json:"outline"`
	Bounds  bitmap.Region `json:"bounds"`
}

func (e *Engine) selectOrganicShapes(cfg Config) []bitmap.Region {
	buf := e.buf
	radius := max(1, buf.Width/cfg.Intensity.organicDivisor())
	count := cfg.Organic.Count

	e.shapes = e.shapes[:0]
	regions := make([]bitmap.Region, 0, max(count, 0))
	for i := 0; i < count; i++ {
		cx := randutil.Int(e.rng, radius, buf.Width-radius)
		cy := randutil.Int(e.rng, radius, buf.Height-radius)

		outline := make([]Vertex, blobPoints)
		for p := range outline {
			angle := float64(p) / blobPoints * 2 * math.Pi
			r := float64(radius) * (1 + randutil.Jitter(e.rng, cfg.Organic.Randomness))
			outline[p] = Vertex{
				X: float64(cx) + math.Cos(angle)*r,
				Y: float64(cy) + math.Sin(angle)*r,
			}
		}

		bounds := bitmap.Rect(cx-radius, cy-radius, radius*2, radius*2).Clip(buf.Width, buf.Height)
		e.shapes = append(e.shapes, Shape{
			CenterX: cx,
			CenterY: cy,
			Radius:  radius,
			Outline: outline,
			Bounds:  bounds,
		})
		regions = append(regions, bounds)
	}
	return regions
}
