package selection

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/glitcher/internal/randutil"
	"github.com/matzehuels/glitcher/pkg/bitmap"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func newTestEngine(buf *bitmap.Buffer) *Engine {
	e := NewEngine(randutil.New(7), quietLogger())
	e.SetBuffer(buf)
	return e
}

func newTestManager(buf *bitmap.Buffer) *Manager {
	m := NewManager(nil, randutil.New(7), quietLogger())
	m.SetImage(buf)
	return m
}

// fillRect paints r on buf with a solid color.
func fillRect(buf *bitmap.Buffer, r bitmap.Region, cr, cg, cb uint8) {
	for y := r.Y; y < r.MaxY(); y++ {
		for x := r.X; x < r.MaxX(); x++ {
			buf.Set(x, y, cr, cg, cb, 255)
		}
	}
}

// noisyBuffer returns a buffer with random pixels and a few solid blocks so
// every method has something to find.
func noisyBuffer(w, h int) *bitmap.Buffer {
	rng := randutil.New(99)
	buf := bitmap.New(w, h)
	for i := 0; i < len(buf.Pix); i += 4 {
		buf.Pix[i] = uint8(rng.IntN(256))
		buf.Pix[i+1] = uint8(rng.IntN(256))
		buf.Pix[i+2] = uint8(rng.IntN(256))
		buf.Pix[i+3] = 255
	}
	fillRect(buf, bitmap.Rect(0, 0, 40, 40), 0, 0, 0)
	fillRect(buf, bitmap.Rect(w-50, h-50, 50, 50), 0, 200, 200)
	return buf
}

func TestColorRangeFindsCyanSquare(t *testing.T) {
	buf := bitmap.Filled(64, 64, 255, 0, 0, 255)
	square := bitmap.Rect(20, 20, 20, 20)
	fillRect(buf, square, 0, 255, 255)

	cfg := DefaultConfig()
	cfg.Color.TargetHue = 180
	cfg.Color.HueTolerance = 30

	got := newTestEngine(buf).Generate(MethodColorRange, cfg)
	if len(got) != 1 {
		t.Fatalf("len(regions) = %d, want 1 (%v)", len(got), got)
	}
	r := got[0]
	if abs(r.X-square.X) > 1 || abs(r.Y-square.Y) > 1 || abs(r.W-square.W) > 1 || abs(r.H-square.H) > 1 {
		t.Errorf("region = %v, want %v", r, square)
	}
}

func TestGenerateRegionsWithinBounds(t *testing.T) {
	const w, h = 150, 110
	e := newTestEngine(noisyBuffer(w, h))

	for _, intensity := range []Intensity{IntensityMedium, IntensityLarge, IntensityExtraLarge} {
		cfg := DefaultConfig()
		cfg.Intensity = intensity
		cfg.MaxRegions = 6
		cfg.Brightness.Zone = ZoneMidtones
		cfg.Edges.Threshold = 0
		for _, method := range Methods() {
			for range 5 {
				for _, r := range e.Generate(method, cfg) {
					if !r.Within(w, h) || r.Empty() {
						t.Errorf("%s/%s: region %v out of bounds", method, intensity, r)
					}
				}
			}
		}
	}
}

func TestGenerateCaching(t *testing.T) {
	e := newTestEngine(noisyBuffer(64, 64))
	cfg := DefaultConfig()

	first := e.Generate(MethodBrightness, cfg)
	if e.CacheLen() != 1 {
		t.Fatalf("CacheLen = %d, want 1", e.CacheLen())
	}
	second := e.Generate(MethodBrightness, cfg)
	if len(first) != len(second) {
		t.Fatalf("cached result length = %d, want %d", len(second), len(first))
	}
	if len(first) > 0 {
		first[0] = bitmap.Region{}
		if third := e.Generate(MethodBrightness, cfg); third[0] == first[0] {
			t.Error("mutating a returned slice changed the cache")
		}
	}

	e.Generate(MethodRandom, cfg)
	e.Generate(MethodOrganicShapes, cfg)
	if e.CacheLen() != 1 {
		t.Errorf("CacheLen = %d after random methods, want 1", e.CacheLen())
	}

	e.SetBuffer(noisyBuffer(64, 64))
	if e.CacheLen() != 0 {
		t.Errorf("CacheLen = %d after SetBuffer, want 0", e.CacheLen())
	}
}

func TestGenerateUnknownMethod(t *testing.T) {
	e := newTestEngine(noisyBuffer(64, 64))
	got := e.Generate(Method(200), DefaultConfig())
	if len(got) != 1 {
		t.Fatalf("len(regions) = %d, want 1", len(got))
	}
	if !got[0].Within(64, 64) {
		t.Errorf("fallback region %v out of bounds", got[0])
	}
}

func TestGenerateWithoutImage(t *testing.T) {
	e := NewEngine(nil, quietLogger())
	if got := e.Generate(MethodColorRange, DefaultConfig()); got != nil {
		t.Errorf("Generate() = %v, want nil", got)
	}
}

func TestBrightnessShadows(t *testing.T) {
	buf := bitmap.Filled(64, 64, 0, 0, 0, 255)
	got := newTestEngine(buf).Generate(MethodBrightness, DefaultConfig())
	if len(got) != defaultBrightnessRegions {
		t.Fatalf("len(regions) = %d, want %d", len(got), defaultBrightnessRegions)
	}
	if got[0] != bitmap.Rect(0, 0, 32, 32) {
		t.Errorf("regions[0] = %v, want (0,0 32x32)", got[0])
	}
	if last := got[3]; last != bitmap.Rect(48, 0, 16, 32) {
		t.Errorf("regions[3] = %v, want clipped (48,0 16x32)", last)
	}
}

func TestEdgeDetection(t *testing.T) {
	flat := bitmap.Filled(64, 64, 90, 90, 90, 255)
	cfg := DefaultConfig()
	cfg.Edges.Threshold = 0
	if got := newTestEngine(flat).Generate(MethodEdgeDetection, cfg); len(got) != 0 {
		t.Errorf("flat image: len(regions) = %d, want 0", len(got))
	}

	// 2px stripes put a gradient on every interior pixel.
	stripes := bitmap.New(64, 64)
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			v := uint8(0)
			if x%4 < 2 {
				v = 255
			}
			stripes.Set(x, y, v, v, v, 255)
		}
	}
	if got := newTestEngine(stripes).Generate(MethodEdgeDetection, cfg); len(got) != 4 {
		t.Errorf("stripes: len(regions) = %d, want 4", len(got))
	}
}

func TestOrganicShapes(t *testing.T) {
	e := newTestEngine(noisyBuffer(128, 96))
	cfg := DefaultConfig()
	cfg.Organic.Count = 4
	regions := e.Generate(MethodOrganicShapes, cfg)
	if len(regions) != 4 {
		t.Fatalf("len(regions) = %d, want 4", len(regions))
	}
	shapes := e.Shapes()
	if len(shapes) != 4 {
		t.Fatalf("len(Shapes()) = %d, want 4", len(shapes))
	}
	for _, s := range shapes {
		if len(s.Outline) != blobPoints {
			t.Errorf("outline has %d points, want %d", len(s.Outline), blobPoints)
		}
	}
}

func TestCombinedMergesOverlaps(t *testing.T) {
	e := newTestEngine(noisyBuffer(128, 128))
	cfg := DefaultConfig()
	cfg.MaxRegions = 9
	cfg.Brightness.Zone = ZoneShadows
	got := e.Generate(MethodCombined, cfg)
	if len(got) > 9 {
		t.Errorf("len(regions) = %d, want <= 9", len(got))
	}
	for i := range got {
		for j := i + 1; j < len(got); j++ {
			if got[i].Intersects(got[j]) {
				t.Errorf("%v and %v overlap", got[i], got[j])
			}
		}
	}
}

func TestWandSelectsConnectedRegion(t *testing.T) {
	buf := bitmap.Filled(64, 64, 255, 0, 0, 255)
	left := bitmap.Rect(0, 0, 32, 64)
	fillRect(buf, left, 0, 255, 255)

	m := newTestManager(buf)
	m.ApplyWand(5, 5, 0)

	mask := m.Mask()
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if got, want := mask.IsSet(x, y), left.Contains(x, y); got != want {
				t.Fatalf("mask(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestInvertTwice(t *testing.T) {
	m := newTestManager(noisyBuffer(40, 30))
	m.ApplyBrush(10, 10, 6)
	m.ApplyRect(bitmap.Rect(20, 5, 8, 8))
	before := m.Mask().Clone()

	m.Invert()
	if m.Mask().Equal(before) {
		t.Fatal("Invert() left the mask unchanged")
	}
	m.Invert()
	if !m.Mask().Equal(before) {
		t.Error("Invert(Invert(mask)) != mask")
	}
}

func TestToolsWithoutImage(t *testing.T) {
	m := NewManager(nil, nil, quietLogger())
	m.ApplyRect(bitmap.Rect(0, 0, 10, 10))
	m.ApplyBrush(1, 1, 3)
	m.ApplyLine(0, 0, 10, 10, 2)
	m.ApplyWand(0, 0, 10)
	m.ApplyLasso([]bitmap.Point{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 5, Y: 5}})
	m.Invert()
	m.Clear()
	if m.Mask() != nil {
		t.Error("Mask() != nil without an image")
	}
	if got := m.MaskToRegions(); got != nil {
		t.Errorf("MaskToRegions() = %v, want nil", got)
	}
}

func TestOutOfBoundsToolsClip(t *testing.T) {
	m := newTestManager(bitmap.New(20, 20))
	m.ApplyRect(bitmap.Rect(-10, -10, 15, 15))
	m.ApplyBrush(100, 100, 5)
	m.ApplyLine(-50, 10, 50, 10, 0)
	if got := m.Mask().Count(); got != 25+20 {
		t.Errorf("Count() = %d, want %d", got, 25+20)
	}
}

func TestBrushDragFarOffImage(t *testing.T) {
	m := newTestManager(bitmap.New(64, 64))
	m.ApplyLine(10, 10, 1e7, 1e7, 1)
	for i := 10; i < 64; i++ {
		if !m.Mask().IsSet(i, i) {
			t.Fatalf("pixel (%d,%d) not selected", i, i)
		}
	}
	if m.Mask().IsSet(5, 5) || m.Mask().IsSet(63, 0) {
		t.Error("selected pixels away from the drag")
	}

	m.Clear()
	m.ApplyLine(-1e7, 30, -1e6, 30, 3)
	if got := m.Mask().Count(); got != 0 {
		t.Errorf("drag left of the image selected %d pixels", got)
	}
}

func TestHugeBrushIsCapped(t *testing.T) {
	m := newTestManager(bitmap.New(64, 48))
	m.SetBrushSize(20000)
	if got := m.BrushSize(); got != 64 {
		t.Errorf("BrushSize() = %d, want 64", got)
	}
	m.ApplyBrush(32, 24, 1<<40)
	if got := m.Mask().Count(); got != 64*48 {
		t.Errorf("Count() = %d, want %d", got, 64*48)
	}

	detached := NewManager(nil, nil, quietLogger())
	detached.SetBrushSize(20000)
	if got := detached.BrushSize(); got != 20000 {
		t.Errorf("BrushSize() without image = %d, want 20000", got)
	}
}

func TestClipSegment(t *testing.T) {
	tests := []struct {
		name           string
		x1, y1, x2, y2 int
		want           [4]int
		ok             bool
	}{
		{"inside", 1, 2, 8, 7, [4]int{1, 2, 8, 7}, true},
		{"through", -10, 5, 20, 5, [4]int{0, 5, 9, 5}, true},
		{"diagonal out", 5, 5, 1000, 1000, [4]int{5, 5, 9, 9}, true},
		{"reversed", 9, 20, 9, -20, [4]int{9, 9, 9, 0}, true},
		{"miss", -10, -10, -5, -20, [4]int{}, false},
		{"parallel outside", -3, 0, -3, 9, [4]int{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x1, y1, x2, y2, ok := clipSegment(tt.x1, tt.y1, tt.x2, tt.y2, 0, 0, 9, 9)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if got := [4]int{x1, y1, x2, y2}; ok && got != tt.want {
				t.Errorf("clipSegment() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMaskToRegions(t *testing.T) {
	m := newTestManager(bitmap.New(64, 64))
	m.ApplyRect(bitmap.Rect(2, 2, 10, 10))  // 100 px
	m.ApplyRect(bitmap.Rect(40, 40, 5, 5))  // 25 px, dropped
	m.ApplyRect(bitmap.Rect(20, 30, 30, 2)) // 60 px
	got := m.MaskToRegions()
	want := []bitmap.Region{bitmap.Rect(2, 2, 10, 10), bitmap.Rect(20, 30, 30, 2)}
	if len(got) != len(want) {
		t.Fatalf("MaskToRegions() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("regions[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRectGesture(t *testing.T) {
	m := newTestManager(bitmap.New(32, 32))
	m.SetTool(ToolRect)

	m.ContinueDrawing(3, 3)
	if m.Mask().Count() != 0 {
		t.Fatal("ContinueDrawing without StartDrawing wrote to the mask")
	}

	m.StartDrawing(14, 9)
	m.ContinueDrawing(8, 8)
	m.ContinueDrawing(5, 5)
	if m.Mask().Count() != 0 {
		t.Fatal("rect tool wrote before EndDrawing")
	}
	if p := m.Preview(); p.Rect != bitmap.Rect(5, 5, 10, 5) {
		t.Errorf("Preview().Rect = %v, want (5,5 10x5)", p.Rect)
	}
	m.EndDrawing()
	if got := m.Mask().Count(); got != 50 {
		t.Errorf("Count() = %d, want 50", got)
	}
	if m.Drawing() {
		t.Error("Drawing() = true after EndDrawing")
	}
}

func TestBrushGestureLeavesNoGaps(t *testing.T) {
	m := newTestManager(bitmap.New(100, 20))
	m.SetTool(ToolBrush)
	m.SetBrushSize(2)
	m.StartDrawing(5, 10)
	m.ContinueDrawing(90, 10)
	m.EndDrawing()
	for x := 5; x <= 90; x++ {
		if !m.Mask().IsSet(x, 10) {
			t.Fatalf("pixel (%d,10) not selected", x)
		}
	}
}

func TestLassoGesture(t *testing.T) {
	m := newTestManager(bitmap.New(40, 40))
	m.SetTool(ToolLasso)
	m.StartDrawing(10, 10)
	m.StartDrawing(0, 0) // ignored while drawing
	m.ContinueDrawing(30, 10)
	m.ContinueDrawing(30, 30)
	m.ContinueDrawing(10, 30)
	m.EndDrawing()

	mask := m.Mask()
	if !mask.IsSet(20, 20) {
		t.Error("center of lasso not selected")
	}
	if mask.IsSet(5, 5) || mask.IsSet(35, 35) {
		t.Error("pixels outside lasso selected")
	}
}

func TestSelectionsToClumps(t *testing.T) {
	m := newTestManager(bitmap.New(64, 64))
	regions := []bitmap.Region{bitmap.Rect(0, 0, 10, 10), {}, bitmap.Rect(5, 5, 3, 3)}
	clumps := m.SelectionsToClumps(regions, 10, 12)
	if len(clumps) != 2 {
		t.Fatalf("len(clumps) = %d, want 2", len(clumps))
	}
	for _, c := range clumps {
		if c.FramesRemaining < 10 || c.FramesRemaining > 12 {
			t.Errorf("FramesRemaining = %d, want in [10,12]", c.FramesRemaining)
		}
		if c.Direction.String() == "unknown" {
			t.Errorf("Direction = %d, want a valid direction", c.Direction)
		}
	}
}

func TestClumpCountdown(t *testing.T) {
	c := Clump{Region: bitmap.Rect(0, 0, 4, 4), FramesRemaining: 3}
	for want := int32(2); want >= 0; want-- {
		alive := c.Tick()
		if c.FramesRemaining != want {
			t.Fatalf("FramesRemaining = %d, want %d", c.FramesRemaining, want)
		}
		if alive != (want > 0) {
			t.Errorf("Tick() = %v at %d", alive, want)
		}
	}
}

func TestHistory(t *testing.T) {
	m := newTestManager(noisyBuffer(64, 64))
	for range HistorySize + 2 {
		m.Generate(MethodRandom, DefaultConfig())
	}
	if got := m.History().Len(); got != HistorySize {
		t.Fatalf("History().Len() = %d, want %d", got, HistorySize)
	}

	last, ok := m.LastSelection()
	if !ok {
		t.Fatal("LastSelection() ok = false")
	}
	regions, ok := m.Replay(last.ID)
	if !ok || len(regions) != len(last.Regions) {
		t.Errorf("Replay() = %v, %v; want %v", regions, ok, last.Regions)
	}

	m.SetImage(bitmap.New(8, 8))
	for _, e := range m.History().Entries() {
		for _, r := range e.Regions {
			if !r.Within(8, 8) {
				t.Errorf("history region %v not re-clipped", r)
			}
		}
	}
}

func TestParseTool(t *testing.T) {
	tests := []struct {
		in   string
		want Tool
		ok   bool
	}{
		{"select", ToolRect, true},
		{"rect", ToolRect, true},
		{"brush", ToolBrush, true},
		{"lasso", ToolLasso, true},
		{"pencil", ToolNone, false},
	}
	for _, tt := range tests {
		got, ok := ParseTool(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseTool(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
