package selection

import "github.com/matzehuels/glitcher/pkg/bitmap"

// fillResult is the footprint of one flood fill.
type fillResult struct {
	pixels                 int
	minX, minY, maxX, maxY int
}

// bounds returns the inclusive bounding box as a Region.
func (f fillResult) bounds() bitmap.Region {
	return bitmap.RectFromCorners(f.minX, f.minY, f.maxX, f.maxY)
}

// floodFill grows a 4-connected region from (x, y). match decides whether a
// pixel index joins the region; visited is shared across fills so a pixel is
// claimed at most once. Pixels that fail match are not marked. visit, if not
// nil, is called once for every claimed pixel.
//
// The stack is explicit, so region size is bounded only by memory.
func floodFill(width, height, x, y int, visited []bool, match func(i int) bool, visit func(i int)) fillResult {
	res := fillResult{minX: x, minY: y, maxX: x, maxY: y}
	stack := []bitmap.Point{{X: x, Y: y}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.Y < 0 || p.X >= width || p.Y >= height {
			continue
		}
		i := p.Y*width + p.X
		if visited[i] || !match(i) {
			continue
		}
		visited[i] = true
		if visit != nil {
			visit(i)
		}

		res.pixels++
		res.minX = min(res.minX, p.X)
		res.maxX = max(res.maxX, p.X)
		res.minY = min(res.minY, p.Y)
		res.maxY = max(res.maxY, p.Y)

		stack = append(stack,
			bitmap.Point{X: p.X + 1, Y: p.Y},
			bitmap.Point{X: p.X - 1, Y: p.Y},
			bitmap.Point{X: p.X, Y: p.Y + 1},
			bitmap.Point{X: p.X, Y: p.Y - 1},
		)
	}
	return res
}
