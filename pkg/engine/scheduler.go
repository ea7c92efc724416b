package engine

import (
	"context"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/matzehuels/glitcher/internal/randutil"
	"github.com/matzehuels/glitcher/pkg/bitmap"
	"github.com/matzehuels/glitcher/pkg/errors"
	"github.com/matzehuels/glitcher/pkg/filter"
	pkgio "github.com/matzehuels/glitcher/pkg/io"
	"github.com/matzehuels/glitcher/pkg/observability"
	"github.com/matzehuels/glitcher/pkg/selection"
	"github.com/matzehuels/glitcher/pkg/transform"
)

// Fallback clump sides are drawn from [fallbackMin, fallbackMin+fallbackSpan).
const (
	fallbackMin  = 50
	fallbackSpan = 100
)

// State is the mutable animation state a Scheduler owns.
type State struct {
	Original *bitmap.Buffer // the image as loaded, restored by Reset
	Work     *bitmap.Buffer // corrupted in place by destructive transforms
	Display  *bitmap.Buffer // the last presented image; Work when no filter ran

	Clumps []selection.Clump
	Frame  uint64

	Paused    bool
	Recording bool
	LastTick  time.Time
}

// Scheduler runs the per-frame glitch algorithm over one image.
type Scheduler struct {
	cfg    Config
	state  State
	rng    *rand.Rand
	sel    *selection.Manager
	logger *log.Logger
}

// New creates a scheduler with no image. cfg is defaulted but not
// validated; use SetConfig for untrusted input. A nil logger uses
// log.Default().
func New(cfg Config, logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.Default()
	}
	cfg.SetDefaults()
	rng := randutil.New(cfg.Seed)
	sel := selection.NewManager(nil, rng, logger)
	sel.Manual = cfg.Manual
	return &Scheduler{cfg: cfg, rng: rng, sel: sel, logger: logger}
}

// =============================================================================
// Image lifecycle
// =============================================================================

// LoadImage replaces the image. The scheduler keeps its own copies of buf.
// Clumps, the frame counter and the selection mask start over.
func (s *Scheduler) LoadImage(buf *bitmap.Buffer) error {
	if buf.Empty() {
		return errors.New(errors.ErrCodeNoImage, "image is empty")
	}
	if err := errors.ValidateDimensions(buf.Width, buf.Height); err != nil {
		return err
	}
	s.state = State{
		Original: buf.Clone(),
		Work:     buf.Clone(),
		Paused:   s.state.Paused,
	}
	s.state.Display = s.state.Work
	s.sel.SetImage(s.state.Work)
	s.logger.Debug("image loaded", "width", buf.Width, "height", buf.Height)
	return nil
}

// Clear releases the image. Tick and Step are no-ops until the next
// LoadImage.
func (s *Scheduler) Clear() {
	s.state = State{Paused: s.state.Paused}
	s.sel.SetImage(nil)
}

// Loaded reports whether an image is attached.
func (s *Scheduler) Loaded() bool {
	return !s.state.Work.Empty()
}

// Reset restores the original image and drops all clumps and selections.
func (s *Scheduler) Reset() {
	if !s.Loaded() {
		return
	}
	s.state.Work.CopyFrom(s.state.Original)
	s.state.Display = s.state.Work
	s.state.Clumps = nil
	s.state.Frame = 0
	s.sel.Clear()
	s.sel.Engine().Invalidate()
}

// Resize resamples the image to width×height. Live clumps and the
// selection history are clipped to the new bounds; the mask is cleared.
func (s *Scheduler) Resize(width, height int) error {
	if !s.Loaded() {
		return errors.New(errors.ErrCodeNoImage, "no image loaded")
	}
	if err := errors.ValidateDimensions(width, height); err != nil {
		return err
	}
	resample := func(b *bitmap.Buffer) *bitmap.Buffer {
		if b.Width == width && b.Height == height {
			return b
		}
		return pkgio.ToBuffer(imaging.Resize(b.RGBA(), width, height, imaging.Lanczos))
	}
	s.state.Original = resample(s.state.Original)
	s.state.Work = resample(s.state.Work)
	s.state.Display = s.state.Work
	s.state.Clumps = selection.ClipClumps(s.state.Clumps, width, height)
	s.sel.SetImage(s.state.Work)
	return nil
}

// =============================================================================
// Playback
// =============================================================================

// Pause stops Tick from processing frames.
func (s *Scheduler) Pause() { s.state.Paused = true }

// Play resumes processing.
func (s *Scheduler) Play() { s.state.Paused = false }

// TogglePause flips the paused state and returns the new value.
func (s *Scheduler) TogglePause() bool {
	s.state.Paused = !s.state.Paused
	return s.state.Paused
}

// Paused reports whether the scheduler is paused.
func (s *Scheduler) Paused() bool { return s.state.Paused }

// SetRecording marks an export in progress. A recording scheduler keeps
// processing ticks while paused.
func (s *Scheduler) SetRecording(on bool) { s.state.Recording = on }

// =============================================================================
// Configuration
// =============================================================================

// Config returns the current configuration.
func (s *Scheduler) Config() Config { return s.cfg }

// SetConfig validates and installs cfg. Call it between frames. Live clumps
// keep running; the new selection settings apply at the next spawn. The
// random seed only takes effect on a new Scheduler.
func (s *Scheduler) SetConfig(cfg Config) error {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Manual != s.cfg.Manual {
		s.state.Clumps = nil
	}
	s.cfg = cfg
	s.sel.Manual = cfg.Manual
	return nil
}

// Selection exposes the selection manager for hosts that draw overlays or
// need direct tool access.
func (s *Scheduler) Selection() *selection.Manager { return s.sel }

// State returns a snapshot of the animation state. The buffers are shared,
// not copied.
func (s *Scheduler) State() State {
	st := s.state
	st.Clumps = slices.Clone(s.state.Clumps)
	return st
}

// =============================================================================
// Frame loop
// =============================================================================

// Tick processes a frame if at least 1/TargetFPS has passed since the last
// accepted tick. Early ticks are dropped, not queued. It reports whether a
// new frame is available from Current.
func (s *Scheduler) Tick(ctx context.Context, now time.Time) bool {
	interval := time.Duration(float64(time.Second) / s.cfg.TargetFPS)
	if !s.state.LastTick.IsZero() && now.Sub(s.state.LastTick) < interval {
		return false
	}
	s.state.LastTick = now
	if s.state.Paused && !s.state.Recording {
		return false
	}
	if _, err := s.Step(ctx); err != nil {
		s.logger.Debug("tick skipped", "err", err)
		return false
	}
	return true
}

// Current returns the last processed frame.
func (s *Scheduler) Current() Frame {
	return Frame{
		Index:   s.state.Frame,
		Image:   s.state.Display,
		Clumps:  slices.Clone(s.state.Clumps),
		Mask:    s.sel.ActiveMask(),
		Preview: s.sel.Preview(),
	}
}

// Step processes exactly one frame, ignoring pause and rate limiting.
func (s *Scheduler) Step(ctx context.Context) (Frame, error) {
	if !s.Loaded() {
		return Frame{}, errors.New(errors.ErrCodeNoImage, "no image loaded")
	}
	start := time.Now()
	st := &s.state
	cfg := &s.cfg
	work := st.Work
	st.Frame++

	if len(st.Clumps) == 0 {
		s.spawn(ctx)
	}

	mask := s.sel.ActiveMask()
	for i := range st.Clumps {
		c := &st.Clumps[i]
		if dir, ok := cfg.Direction.Resolve(c.Direction, s.rng); ok {
			transform.Shift(work, c.Region, cfg.Speed, dir, mask)
		}
		transform.Swirl(work, c.Region, cfg.SwirlStrength, cfg.Spiral, cfg.Turn, mask, s.rng)
		c.Tick()
	}
	st.Clumps = slices.DeleteFunc(st.Clumps, func(c selection.Clump) bool { return !c.Alive() })

	transform.Slice(work, cfg.Slice, cfg.ColorOffset, nil, s.rng)
	if cfg.PixelSort != transform.SortOff && st.Frame%uint64(cfg.SortInterval) == 0 {
		transform.PixelSort(work, cfg.PixelSort, nil, s.rng)
	}
	transform.Color(work, cfg.ColorEffect, cfg.ColorIntensity, cfg.Color, nil, s.rng)

	st.Display = work
	if cfg.Filter.Family != filter.Off && cfg.FilterIntensity > 0 {
		fstart := time.Now()
		st.Display = filter.Apply(work, filter.Spec{
			Kind:      cfg.Filter,
			Intensity: cfg.FilterIntensity,
			Options:   cfg.FilterOptions,
			Frame:     int(st.Frame),
			Rand:      s.rng,
		})
		observability.Frame().OnFilter(ctx, cfg.Filter.String(), time.Since(fstart))
	}

	observability.Frame().OnFrame(ctx, st.Frame, len(st.Clumps), time.Since(start))
	return s.Current(), nil
}

// spawn fills the clump list for a new generation.
func (s *Scheduler) spawn(ctx context.Context) {
	cfg := &s.cfg
	var regions []bitmap.Region
	source := "manual"
	if s.sel.Manual {
		regions = s.sel.MaskToRegions()
	} else {
		source = cfg.Method.String()
		regions = s.sel.Generate(cfg.Method, cfg.Selection)
	}
	s.state.Clumps = s.sel.SelectionsToClumps(regions, cfg.MinLifetime, cfg.MaxLifetime)

	if len(s.state.Clumps) == 0 && !s.sel.Manual {
		source = "fallback"
		s.state.Clumps = []selection.Clump{s.fallbackClump()}
	}
	if len(s.state.Clumps) > 0 {
		s.logger.Debug("spawned clumps", "source", source, "clumps", len(s.state.Clumps), "frame", s.state.Frame)
		observability.Frame().OnSpawn(ctx, source, len(s.state.Clumps))
	}
}

// fallbackClump places one random rectangle with 50–149px sides, clipped
// to the image, without consulting the selection engine.
func (s *Scheduler) fallbackClump() selection.Clump {
	w := s.state.Work.Width
	h := s.state.Work.Height
	cw := fallbackMin + s.rng.IntN(fallbackSpan)
	ch := fallbackMin + s.rng.IntN(fallbackSpan)
	r := bitmap.Rect(s.rng.IntN(max(1, w-cw)), s.rng.IntN(max(1, h-ch)), cw, ch).Clip(w, h)
	return selection.Clump{
		Region:          r,
		FramesRemaining: int32(randutil.Int(s.rng, s.cfg.MinLifetime, s.cfg.MaxLifetime)),
		Direction:       bitmap.Directions[s.rng.IntN(len(bitmap.Directions))],
	}
}

// Render processes n frames back to back into sink, without rate limiting
// and regardless of pause. It stops early when ctx is cancelled or the sink
// fails.
func (s *Scheduler) Render(ctx context.Context, n int, sink Sink) error {
	if err := errors.ValidateFrameCount(n); err != nil {
		return err
	}
	if !s.Loaded() {
		return errors.New(errors.ErrCodeNoImage, "no image loaded")
	}
	s.state.Recording = true
	defer func() { s.state.Recording = false }()

	for range n {
		if err := ctx.Err(); err != nil {
			return err
		}
		f, err := s.Step(ctx)
		if err != nil {
			return err
		}
		if err := sink.Present(ctx, f); err != nil {
			return err
		}
	}
	return nil
}
