package selection

import (
	"math"

	"github.com/matzehuels/glitcher/pkg/bitmap"
)

// Tool is a manual selection tool.
type Tool uint8

const (
	ToolNone Tool = iota
	ToolRect
	ToolBrush
	ToolWand
	ToolLasso
)

var toolNames = [...]string{
	ToolNone:  "none",
	ToolRect:  "select",
	ToolBrush: "brush",
	ToolWand:  "wand",
	ToolLasso: "lasso",
}

func (t Tool) String() string {
	if int(t) < len(toolNames) {
		return toolNames[t]
	}
	return "unknown"
}

// ParseTool maps a tool name to a Tool. "rect" is accepted as an alias for
// "select".
func ParseTool(s string) (Tool, bool) {
	if s == "rect" {
		return ToolRect, true
	}
	for i, name := range toolNames {
		if name == s {
			return Tool(i), true
		}
	}
	return ToolNone, false
}

// MarshalText implements encoding.TextMarshaler.
func (t Tool) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tool) UnmarshalText(b []byte) error {
	v, ok := ParseTool(string(b))
	if !ok {
		return &bitmap.ParseError{Kind: "tool", Value: string(b)}
	}
	*t = v
	return nil
}

// =============================================================================
// Mask painting
// =============================================================================

// ApplyRect selects every pixel in r, clipped to the image.
func (m *Manager) ApplyRect(r bitmap.Region) {
	if !m.ready("rect") {
		return
	}
	r = r.Clip(m.mask.Width, m.mask.Height)
	for y := r.Y; y < r.MaxY(); y++ {
		row := m.mask.Bits[y*m.mask.Width : (y+1)*m.mask.Width]
		for x := r.X; x < r.MaxX(); x++ {
			row[x] = bitmap.Selected
		}
	}
}

// ApplyBrush selects a filled circle of the given radius around (x, y).
func (m *Manager) ApplyBrush(x, y, radius int) {
	if !m.ready("brush") {
		return
	}
	m.stamp(x, y, radius)
}

// stamp selects the disc of the given radius around (cx, cy). The radius is
// capped at the larger mask side and only in-bounds rows and columns are
// visited, so the center may lie anywhere.
func (m *Manager) stamp(cx, cy, radius int) {
	radius = min(max(radius, 0), m.longSide())
	x0, x1 := max(cx-radius, 0), min(cx+radius, m.mask.Width-1)
	y0, y1 := max(cy-radius, 0), min(cy+radius, m.mask.Height-1)
	r2 := float64(radius) * float64(radius)
	for y := y0; y <= y1; y++ {
		dy := float64(y - cy)
		for x := x0; x <= x1; x++ {
			dx := float64(x - cx)
			if dx*dx+dy*dy <= r2 {
				m.mask.Bits[y*m.mask.Width+x] = bitmap.Selected
			}
		}
	}
}

func (m *Manager) longSide() int {
	return max(m.mask.Width, m.mask.Height)
}

// ApplyLine stamps a brush of the given radius at every Bresenham step from
// (x1, y1) to (x2, y2), so fast drags leave no gaps. The segment is first
// clipped to the mask bounds widened by the radius; steps outside that box
// cannot touch the mask.
func (m *Manager) ApplyLine(x1, y1, x2, y2, radius int) {
	if !m.ready("line") {
		return
	}
	radius = min(max(radius, 0), m.longSide())
	x1, y1, x2, y2, ok := clipSegment(x1, y1, x2, y2,
		-radius, -radius, m.mask.Width-1+radius, m.mask.Height-1+radius)
	if !ok {
		return
	}
	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	e := dx + dy
	for {
		m.stamp(x1, y1, radius)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x1 += sx
		}
		if e2 <= dx {
			e += dx
			y1 += sy
		}
	}
}

// ApplyWand selects the 4-connected area around (x, y) whose colors lie
// within tolerance (Euclidean RGB distance) of the seed pixel.
func (m *Manager) ApplyWand(x, y int, tolerance float64) {
	if !m.ready("wand") {
		return
	}
	buf := m.buf
	if !buf.In(x, y) {
		return
	}
	sr, sg, sb, _ := buf.At(x, y)
	visited := make([]bool, buf.Width*buf.Height)
	floodFill(buf.Width, buf.Height, x, y, visited, func(i int) bool {
		p := i * bitmap.BytesPerPixel
		return bitmap.ColorDistance(buf.Pix[p], buf.Pix[p+1], buf.Pix[p+2], sr, sg, sb) <= tolerance
	}, func(i int) {
		m.mask.Bits[i] = bitmap.Selected
	})
}

// ApplyLasso selects the inside of the closed polygon through points using
// even-odd ray casting. Paths with fewer than three points are ignored.
func (m *Manager) ApplyLasso(points []bitmap.Point) {
	if !m.ready("lasso") || len(points) < 3 {
		return
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	bounds := bitmap.RectFromCorners(minX, minY, maxX, maxY).Clip(m.mask.Width, m.mask.Height)
	for y := bounds.Y; y < bounds.MaxY(); y++ {
		for x := bounds.X; x < bounds.MaxX(); x++ {
			if insidePolygon(float64(x), float64(y), points) {
				m.mask.Bits[y*m.mask.Width+x] = bitmap.Selected
			}
		}
	}
}

func insidePolygon(x, y float64, points []bitmap.Point) bool {
	inside := false
	for i, j := 0, len(points)-1; i < len(points); j, i = i, i+1 {
		xi, yi := float64(points[i].X), float64(points[i].Y)
		xj, yj := float64(points[j].X), float64(points[j].Y)
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

// Clear unselects everything.
func (m *Manager) Clear() {
	if m.mask == nil {
		return
	}
	m.mask.Clear()
	m.logger.Debug("selection cleared")
}

// Invert flips every mask byte.
func (m *Manager) Invert() {
	if !m.ready("invert") {
		return
	}
	m.mask.Invert()
}

// =============================================================================
// Gesture state machine
// =============================================================================

// StartDrawing begins a gesture with the active tool at (x, y). A gesture
// already in progress is left untouched.
func (m *Manager) StartDrawing(x, y int) {
	if m.drawing || m.mask == nil || m.tool == ToolNone {
		return
	}
	m.drawing = true
	p := bitmap.Point{X: x, Y: y}
	m.start, m.last = p, p

	switch m.tool {
	case ToolBrush:
		m.stamp(x, y, m.brushRadius())
	case ToolWand:
		m.ApplyWand(x, y, m.wandTolerance)
	case ToolLasso:
		m.lasso = append(m.lasso[:0], p)
	}
}

// ContinueDrawing extends the current gesture to (x, y). It is a no-op when
// no gesture is in progress.
func (m *Manager) ContinueDrawing(x, y int) {
	if !m.drawing {
		return
	}
	p := bitmap.Point{X: x, Y: y}
	switch m.tool {
	case ToolBrush:
		m.ApplyLine(m.last.X, m.last.Y, x, y, m.brushRadius())
	case ToolLasso:
		m.lasso = append(m.lasso, p)
	}
	m.last = p
}

// EndDrawing finishes the current gesture. Rectangle and lasso selections
// are committed here.
func (m *Manager) EndDrawing() {
	if !m.drawing {
		return
	}
	switch m.tool {
	case ToolRect:
		m.ApplyRect(bitmap.RectFromCorners(m.start.X, m.start.Y, m.last.X, m.last.Y))
	case ToolLasso:
		if len(m.lasso) > 2 {
			m.ApplyLasso(m.lasso)
		}
	}
	m.drawing = false
	m.lasso = m.lasso[:0]
}

// Drawing reports whether a gesture is in progress.
func (m *Manager) Drawing() bool {
	return m.drawing
}

func (m *Manager) brushRadius() int {
	return max(1, m.brushSize/2)
}

// Preview describes the in-progress gesture for overlay rendering. It never
// affects pixel data.
type Preview struct {
	Tool    Tool           `json:"tool"`
	Drawing bool           `json:"drawing"`
	Rect    bitmap.Region  `json:"rect"`
	Lasso   []bitmap.Point `json:"lasso,omitempty"`
	Cursor  bitmap.Point   `json:"cursor"`
	Radius  int            `json:"radius"`
}

// Preview returns the current gesture state.
func (m *Manager) Preview() Preview {
	p := Preview{
		Tool:    m.tool,
		Drawing: m.drawing,
		Cursor:  m.last,
		Radius:  m.brushRadius(),
	}
	if m.drawing && m.tool == ToolRect {
		p.Rect = bitmap.RectFromCorners(m.start.X, m.start.Y, m.last.X, m.last.Y)
	}
	if len(m.lasso) > 0 {
		p.Lasso = append([]bitmap.Point(nil), m.lasso...)
	}
	return p
}

// clipSegment clips the segment (x1, y1)-(x2, y2) to the closed box
// [minX, maxX] x [minY, maxY] using Liang-Barsky. The clipped endpoints are
// rounded to the nearest pixel and stay inside the box. ok is false when the
// segment misses the box.
func clipSegment(x1, y1, x2, y2, minX, minY, maxX, maxY int) (cx1, cy1, cx2, cy2 int, ok bool) {
	fx, fy := float64(x1), float64(y1)
	dx, dy := float64(x2)-fx, float64(y2)-fy
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, fx - float64(minX)},
		{dx, float64(maxX) - fx},
		{-dy, fy - float64(minY)},
		{dy, float64(maxY) - fy},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			t0 = max(t0, t)
		} else {
			t1 = min(t1, t)
		}
		if t0 > t1 {
			return 0, 0, 0, 0, false
		}
	}
	at := func(t float64) (int, int) {
		x := clampInt(int(math.Round(fx+t*dx)), minX, maxX)
		y := clampInt(int(math.Round(fy+t*dy)), minY, maxY)
		return x, y
	}
	cx1, cy1 = at(t0)
	cx2, cy2 = at(t1)
	return cx1, cy1, cx2, cy2, true
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
