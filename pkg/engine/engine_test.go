package engine

import (
	"context"
	"io"
	"slices"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/glitcher/pkg/bitmap"
	"github.com/matzehuels/glitcher/pkg/errors"
	"github.com/matzehuels/glitcher/pkg/filter"
	"github.com/matzehuels/glitcher/pkg/observability"
	"github.com/matzehuels/glitcher/pkg/selection"
	"github.com/matzehuels/glitcher/pkg/transform"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func gradient(w, h int) *bitmap.Buffer {
	buf := bitmap.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			buf.Set(x, y, uint8(x*4), uint8(y*4), uint8((x+y)*2), 255)
		}
	}
	return buf
}

func newLoaded(t *testing.T, cfg Config, buf *bitmap.Buffer) *Scheduler {
	t.Helper()
	s := New(cfg, quietLogger())
	if err := s.LoadImage(buf); err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	return s
}

type recordingHooks struct {
	observability.NoopFrameHooks
	sources []string
	frames  int
}

func (r *recordingHooks) OnSpawn(_ context.Context, source string, _ int) {
	r.sources = append(r.sources, source)
}

func (r *recordingHooks) OnFrame(context.Context, uint64, int, time.Duration) {
	r.frames++
}

func TestClumpCountdown(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Direction = transform.DirectionOff
	cfg.MinLifetime, cfg.MaxLifetime = 3, 3
	s := newLoaded(t, cfg, gradient(64, 64))
	ctx := context.Background()

	for want := int32(2); want > 0; want-- {
		if _, err := s.Step(ctx); err != nil {
			t.Fatal(err)
		}
		clumps := s.State().Clumps
		if len(clumps) == 0 {
			t.Fatalf("no clumps with %d frames left", want)
		}
		for _, c := range clumps {
			if c.FramesRemaining != want {
				t.Errorf("FramesRemaining = %d, want %d", c.FramesRemaining, want)
			}
		}
	}

	if _, err := s.Step(ctx); err != nil {
		t.Fatal(err)
	}
	if n := len(s.State().Clumps); n != 0 {
		t.Errorf("clumps after expiry = %d, want 0", n)
	}

	// The next frame starts a new generation.
	if _, err := s.Step(ctx); err != nil {
		t.Fatal(err)
	}
	if n := len(s.State().Clumps); n == 0 {
		t.Error("no clumps respawned")
	}
}

func TestFallbackSpawn(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetFrameHooks(hooks)
	defer observability.Reset()

	cfg := DefaultConfig()
	cfg.Method = selection.MethodColorRange
	s := newLoaded(t, cfg, bitmap.Filled(64, 48, 128, 128, 128, 255))
	if _, err := s.Step(context.Background()); err != nil {
		t.Fatal(err)
	}

	clumps := s.State().Clumps
	if len(clumps) != 1 {
		t.Fatalf("clumps = %d, want 1 fallback clump", len(clumps))
	}
	if r := clumps[0].Region; !r.Within(64, 48) || r.Empty() {
		t.Errorf("fallback region %v not inside 64x48", r)
	}
	if len(hooks.sources) != 1 || hooks.sources[0] != "fallback" {
		t.Errorf("spawn sources = %v, want [fallback]", hooks.sources)
	}
	if hooks.frames != 1 {
		t.Errorf("OnFrame calls = %d, want 1", hooks.frames)
	}
}

func TestManualModeSpawnsFromMask(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Manual = true
	cfg.Direction = transform.DirectionOff
	s := newLoaded(t, cfg, gradient(64, 64))
	ctx := context.Background()

	if _, err := s.Step(ctx); err != nil {
		t.Fatal(err)
	}
	if n := len(s.State().Clumps); n != 0 {
		t.Fatalf("clumps with empty mask = %d, want 0", n)
	}

	events := []ToolEvent{
		{Kind: EventTool, Tool: selection.ToolRect},
		{Kind: EventDown, X: 10, Y: 10},
		{Kind: EventMove, X: 30, Y: 30},
		{Kind: EventUp},
	}
	for _, ev := range events {
		if err := s.ApplyToolEvent(ev); err != nil {
			t.Fatalf("ApplyToolEvent(%s): %v", ev.Kind, err)
		}
	}
	if _, err := s.Step(ctx); err != nil {
		t.Fatal(err)
	}

	clumps := s.State().Clumps
	if len(clumps) != 1 {
		t.Fatalf("clumps = %d, want 1", len(clumps))
	}
	if want := bitmap.Rect(10, 10, 21, 21); clumps[0].Region != want {
		t.Errorf("clump region = %v, want %v", clumps[0].Region, want)
	}
}

func TestModeSwitchDropsClumps(t *testing.T) {
	s := newLoaded(t, DefaultConfig(), gradient(64, 64))
	if _, err := s.Step(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := s.ApplyToolEvent(ToolEvent{Kind: EventMode, Manual: true}); err != nil {
		t.Fatal(err)
	}
	if n := len(s.State().Clumps); n != 0 {
		t.Errorf("clumps after mode switch = %d, want 0", n)
	}
	if !s.Config().Manual || !s.Selection().Manual {
		t.Error("manual mode not applied")
	}
}

func TestReplayEvent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Selection.MaxRegions = 3
	s := newLoaded(t, cfg, gradient(96, 64))
	if _, err := s.Step(context.Background()); err != nil {
		t.Fatal(err)
	}
	last, ok := s.Selection().LastSelection()
	if !ok {
		t.Fatal("no history entry after an automatic spawn")
	}
	if err := s.ApplyToolEvent(ToolEvent{Kind: EventReplay, ID: last.ID}); err != nil {
		t.Fatalf("replay: %v", err)
	}
	if got, want := len(s.State().Clumps), len(last.Regions); got != want {
		t.Errorf("replayed clumps = %d, want %d", got, want)
	}

	err := s.ApplyToolEvent(ToolEvent{Kind: EventReplay})
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("replay of unknown id error = %v, want %s", err, errors.ErrCodeNotFound)
	}
}

func TestTickRateLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TargetFPS = 10
	s := newLoaded(t, cfg, gradient(32, 32))
	ctx := context.Background()
	t0 := time.Unix(1000, 0)

	steps := []struct {
		name   string
		at     time.Duration
		before func()
		want   bool
	}{
		{"first tick", 0, nil, true},
		{"too early", 50 * time.Millisecond, nil, false},
		{"on time", 100 * time.Millisecond, nil, true},
		{"paused", 300 * time.Millisecond, s.Pause, false},
		{"paused while recording", 400 * time.Millisecond, func() { s.SetRecording(true) }, true},
		{"resumed", 500 * time.Millisecond, func() { s.SetRecording(false); s.Play() }, true},
	}
	for _, st := range steps {
		if st.before != nil {
			st.before()
		}
		if got := s.Tick(ctx, t0.Add(st.at)); got != st.want {
			t.Errorf("%s: Tick = %v, want %v", st.name, got, st.want)
		}
	}
	if got := s.DebugInfo().Frame; got != 4 {
		t.Errorf("frames processed = %d, want 4", got)
	}
}

func TestTickWithoutImage(t *testing.T) {
	s := New(DefaultConfig(), quietLogger())
	if s.Tick(context.Background(), time.Now()) {
		t.Error("Tick without an image reported a frame")
	}
	if _, err := s.Step(context.Background()); !errors.Is(err, errors.ErrCodeNoImage) {
		t.Errorf("Step error = %v, want %s", err, errors.ErrCodeNoImage)
	}
}

func TestRender(t *testing.T) {
	s := newLoaded(t, DefaultConfig(), gradient(48, 32))
	s.Pause()
	sink := &MemorySink{}
	if err := s.Render(context.Background(), 7, sink); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(sink.Frames) != 7 {
		t.Errorf("frames = %d, want 7", len(sink.Frames))
	}
	if d := s.DebugInfo(); d.Frame != 7 || d.Recording {
		t.Errorf("after Render frame = %d recording = %v, want 7 false", d.Frame, d.Recording)
	}
	if sink.Last().Width != 48 || sink.Last().Height != 32 {
		t.Errorf("frame size = %dx%d, want 48x32", sink.Last().Width, sink.Last().Height)
	}
}

func TestRenderErrors(t *testing.T) {
	ctx := context.Background()

	if err := New(DefaultConfig(), quietLogger()).Render(ctx, 5, Discard); !errors.Is(err, errors.ErrCodeNoImage) {
		t.Errorf("Render without image = %v, want %s", err, errors.ErrCodeNoImage)
	}

	s := newLoaded(t, DefaultConfig(), gradient(16, 16))
	if err := s.Render(ctx, 0, Discard); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Render(0) = %v, want %s", err, errors.ErrCodeInvalidInput)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := s.Render(cancelled, 5, Discard); err != context.Canceled {
		t.Errorf("Render with cancelled context = %v, want %v", err, context.Canceled)
	}
}

func TestRenderIsReproducible(t *testing.T) {
	cfg, err := DefaultConfig().WithPreset("digital-chaos")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Filter = filter.Kind{Family: filter.Noise}
	cfg.Seed = 7

	render := func() *bitmap.Buffer {
		s := newLoaded(t, cfg, gradient(64, 48))
		sink := &MemorySink{}
		if err := s.Render(context.Background(), 12, sink); err != nil {
			t.Fatal(err)
		}
		return sink.Last()
	}
	if !render().Equal(render()) {
		t.Error("renders with the same seed differ")
	}
}

func TestFilterLeavesWorkBuffer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Direction = transform.DirectionOff
	cfg.Filter = filter.Kind{Family: filter.EdgeDetect}
	cfg.FilterIntensity = 100
	s := newLoaded(t, cfg, gradient(32, 32))

	f, err := s.Step(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	st := s.State()
	if f.Image == st.Work {
		t.Fatal("filtered frame shares the work buffer")
	}
	if !st.Work.Equal(st.Original) {
		t.Error("filter pass modified the work buffer")
	}
}

func TestResetRestoresOriginal(t *testing.T) {
	cfg, _ := DefaultConfig().WithPreset("vintage-tv")
	src := gradient(64, 64)
	s := newLoaded(t, cfg, src)
	if err := s.Render(context.Background(), 10, Discard); err != nil {
		t.Fatal(err)
	}
	if s.Current().Image.Equal(src) {
		t.Fatal("vintage-tv left the image unchanged")
	}
	s.Reset()
	if !s.Current().Image.Equal(src) {
		t.Error("Reset did not restore the original")
	}
	if d := s.DebugInfo(); d.Frame != 0 || d.Clumps != 0 {
		t.Errorf("after Reset frame = %d clumps = %d, want 0 0", d.Frame, d.Clumps)
	}
}

func TestResizeReclipsClumps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Selection.Intensity = selection.IntensityExtraLarge
	cfg.Selection.MaxRegions = 6
	s := newLoaded(t, cfg, gradient(128, 128))
	ctx := context.Background()
	if _, err := s.Step(ctx); err != nil {
		t.Fatal(err)
	}

	if err := s.Resize(64, 32); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	for _, c := range s.State().Clumps {
		if !c.Within(64, 32) {
			t.Errorf("clump %v outside 64x32 after resize", c.Region)
		}
	}
	for _, e := range s.Selection().History().Entries() {
		for _, r := range e.Regions {
			if !r.Within(64, 32) {
				t.Errorf("history region %v outside 64x32", r)
			}
		}
	}
	f, err := s.Step(ctx)
	if err != nil {
		t.Fatalf("Step after resize: %v", err)
	}
	if f.Image.Width != 64 || f.Image.Height != 32 {
		t.Errorf("frame size = %dx%d, want 64x32", f.Image.Width, f.Image.Height)
	}
}

func TestLoadImageRejects(t *testing.T) {
	s := New(DefaultConfig(), quietLogger())
	tests := []struct {
		name string
		buf  *bitmap.Buffer
		code errors.Code
	}{
		{"nil", nil, errors.ErrCodeNoImage},
		{"empty", bitmap.New(0, 0), errors.ErrCodeNoImage},
		{"too large", &bitmap.Buffer{Width: 4096, Height: 4096, Pix: make([]byte, 4)}, errors.ErrCodeInvalidDimensions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.LoadImage(tt.buf); !errors.Is(err, tt.code) {
				t.Errorf("LoadImage error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestClear(t *testing.T) {
	s := newLoaded(t, DefaultConfig(), gradient(16, 16))
	s.Clear()
	if s.Loaded() {
		t.Error("Loaded after Clear")
	}
	if s.Selection().Mask() != nil {
		t.Error("mask survives Clear")
	}
}

func TestPixelSortInterval(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Direction = transform.DirectionOff
	cfg.PixelSort = transform.SortColumnBrightness
	cfg.SortInterval = 5

	// Brightness falls toward the bottom, so a column sort reverses it.
	buf := bitmap.New(32, 32)
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			v := uint8((31 - y) * 8)
			buf.Set(x, y, v, v, v, 255)
		}
	}
	want := buf.Clone()
	s := newLoaded(t, cfg, buf)
	ctx := context.Background()

	for i := 1; i <= 4; i++ {
		f, err := s.Step(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if !f.Image.Equal(want) {
			t.Fatalf("frame %d changed the image before the sort interval", i)
		}
	}
	f, err := s.Step(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if f.Index != 5 {
		t.Fatalf("Index = %d, want 5", f.Index)
	}
	if f.Image.Equal(want) {
		t.Fatal("frame 5 did not sort")
	}
	for x := 0; x < 32; x++ {
		for y := 1; y < 32; y++ {
			if f.Image.Pix[f.Image.Offset(x, y)] < f.Image.Pix[f.Image.Offset(x, y-1)] {
				t.Fatalf("column %d not ascending at y=%d", x, y)
			}
		}
	}
}

func TestCurrentClumpsSurviveNextStep(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Direction = transform.DirectionOff
	cfg.MinLifetime, cfg.MaxLifetime = 1, 1
	s := newLoaded(t, cfg, gradient(64, 64))
	ctx := context.Background()

	if _, err := s.Step(ctx); err != nil {
		t.Fatal(err)
	}
	// Lifetime 1 expires everything on the next Step, which respawns.
	cfg.MinLifetime, cfg.MaxLifetime = 2, 2
	if err := s.SetConfig(cfg); err != nil {
		t.Fatal(err)
	}
	f, err := s.Step(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Clumps) == 0 {
		t.Fatal("no clumps")
	}
	kept := slices.Clone(f.Clumps)

	for range 3 {
		if _, err := s.Step(ctx); err != nil {
			t.Fatal(err)
		}
	}
	if !slices.Equal(f.Clumps, kept) {
		t.Errorf("presented clumps changed after later steps: %v, want %v", f.Clumps, kept)
	}
}

func TestSetConfigRejectsHugeCounts(t *testing.T) {
	s := newLoaded(t, DefaultConfig(), gradient(32, 32))

	cfg := DefaultConfig()
	cfg.Selection.MaxRegions = 1 << 62
	if err := s.SetConfig(cfg); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("SetConfig(MaxRegions=1<<62) = %v, want INVALID_CONFIG", err)
	}
	cfg = DefaultConfig()
	cfg.Selection.Organic.Count = 1 << 40
	if err := s.SetConfig(cfg); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("SetConfig(Organic.Count=1<<40) = %v, want INVALID_CONFIG", err)
	}
	// The rejected config never took effect.
	if _, err := s.Step(context.Background()); err != nil {
		t.Fatal(err)
	}
}
