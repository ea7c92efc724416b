package bitmap

import "fmt"

// Region is an axis-aligned integer rectangle. Regions handed between
// components are always clipped so that X+W <= width and Y+H <= height.
type Region struct {
	X int `json:"x" toml:"x"`
	Y int `json:"y" toml:"y"`
	W int `json:"w" toml:"w"`
	H int `json:"h" toml:"h"`
}

// Point is an integer pixel coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Rect is shorthand for Region{x, y, w, h}.
func Rect(x, y, w, h int) Region {
	return Region{X: x, Y: y, W: w, H: h}
}

// RectFromCorners builds the region spanning two corners, inclusive of both.
// The corners may be given in any order.
func RectFromCorners(x1, y1, x2, y2 int) Region {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	return Region{X: x1, Y: y1, W: x2 - x1 + 1, H: y2 - y1 + 1}
}

func (r Region) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.W, r.H)
}

// Empty reports whether the region covers no pixels.
func (r Region) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Area returns W*H, or 0 for empty regions.
func (r Region) Area() int {
	if r.Empty() {
		return 0
	}
	return r.W * r.H
}

// MaxX returns the exclusive right edge.
func (r Region) MaxX() int { return r.X + r.W }

// MaxY returns the exclusive bottom edge.
func (r Region) MaxY() int { return r.Y + r.H }

// Contains reports whether (x, y) lies inside the region.
func (r Region) Contains(x, y int) bool {
	return x >= r.X && y >= r.Y && x < r.MaxX() && y < r.MaxY()
}

// Clip intersects the region with [0,width)×[0,height). The result may be
// empty but never has negative size.
func (r Region) Clip(width, height int) Region {
	x0 := clampInt(r.X, 0, width)
	y0 := clampInt(r.Y, 0, height)
	x1 := clampInt(r.MaxX(), 0, width)
	y1 := clampInt(r.MaxY(), 0, height)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return Region{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Within reports whether the region lies entirely inside a width×height
// buffer.
func (r Region) Within(width, height int) bool {
	return r.X >= 0 && r.Y >= 0 && r.W >= 0 && r.H >= 0 &&
		r.MaxX() <= width && r.MaxY() <= height
}

// Intersects reports whether the two regions share at least one pixel.
func (r Region) Intersects(o Region) bool {
	return r.X < o.MaxX() && o.X < r.MaxX() &&
		r.Y < o.MaxY() && o.Y < r.MaxY()
}

// Union returns the smallest region covering both.
func (r Region) Union(o Region) Region {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	x0, y0 := min(r.X, o.X), min(r.Y, o.Y)
	x1, y1 := max(r.MaxX(), o.MaxX()), max(r.MaxY(), o.MaxY())
	return Region{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// MergeOverlapping repeatedly replaces any two intersecting regions with
// their union until no pair intersects. Order of first appearance is kept.
func MergeOverlapping(regions []Region) []Region {
	out := make([]Region, 0, len(regions))
	for _, r := range regions {
		if !r.Empty() {
			out = append(out, r)
		}
	}
	for merged := true; merged; {
		merged = false
		for i := 0; i < len(out) && !merged; i++ {
			for j := i + 1; j < len(out); j++ {
				if out[i].Intersects(out[j]) {
					out[i] = out[i].Union(out[j])
					out = append(out[:j], out[j+1:]...)
					merged = true
					break
				}
			}
		}
	}
	return out
}

// ClipAll clips every region and drops the ones that become empty.
func ClipAll(regions []Region, width, height int) []Region {
	out := make([]Region, 0, len(regions))
	for _, r := range regions {
		if c := r.Clip(width, height); !c.Empty() {
			out = append(out, c)
		}
	}
	return out
}
