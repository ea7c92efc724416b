// Package window shows a running scheduler in an ebiten window.
//
// The window ticks the scheduler from ebiten's update loop, routes mouse
// gestures to the active selection tool and draws the selection overlay.
//
// Keys:
//
//	space        play/pause
//	r            reset to the original image
//	m            toggle manual selection mode
//	0-4          tool: none, select, brush, wand, lasso
//	[ ]          brush size
//	c / i        clear / invert the mask
//	o            toggle the overlay
//	esc          close
package window

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/matzehuels/glitcher/pkg/bitmap"
	"github.com/matzehuels/glitcher/pkg/display"
	"github.com/matzehuels/glitcher/pkg/engine"
	"github.com/matzehuels/glitcher/pkg/selection"
)

const brushStep = 5

var toolKeys = map[ebiten.Key]selection.Tool{
	ebiten.KeyDigit0: selection.ToolNone,
	ebiten.KeyDigit1: selection.ToolRect,
	ebiten.KeyDigit2: selection.ToolBrush,
	ebiten.KeyDigit3: selection.ToolWand,
	ebiten.KeyDigit4: selection.ToolLasso,
}

// Options configures a Window.
type Options struct {
	Title   string
	Overlay display.Overlay
	// Scale is the initial window size relative to the image. Zero fits
	// the image into 1280×960.
	Scale  float64
	Logger *log.Logger
}

// Window is an ebiten game that drives a scheduler. It also implements
// engine.Sink so it can display frames rendered elsewhere.
type Window struct {
	ctx     context.Context
	sched   *engine.Scheduler
	opts    Options
	logger  *log.Logger
	overlay bool

	screen   *ebiten.Image
	composed *bitmap.Buffer
	frame    engine.Frame
	dirty    bool
}

// New creates a window for s. s must have an image loaded.
func New(ctx context.Context, s *engine.Scheduler, opts Options) *Window {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Title == "" {
		opts.Title = "glitcher"
	}
	if opts.Overlay == (display.Overlay{}) {
		opts.Overlay = display.DefaultOverlay()
	}
	return &Window{
		ctx:     ctx,
		sched:   s,
		opts:    opts,
		logger:  opts.Logger,
		overlay: true,
		frame:   s.Current(),
		dirty:   true,
	}
}

// Run opens the window and blocks until it is closed or ctx is done.
func (w *Window) Run() error {
	img := w.sched.Current().Image
	if img.Empty() {
		return errors.New("window: no image loaded")
	}
	scale := w.opts.Scale
	if scale <= 0 {
		scale = math.Min(1, math.Min(1280/float64(img.Width), 960/float64(img.Height)))
	}
	ebiten.SetWindowTitle(w.opts.Title)
	ebiten.SetWindowSize(int(float64(img.Width)*scale), int(float64(img.Height)*scale))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(int(math.Ceil(w.sched.Config().TargetFPS)))

	err := ebiten.RunGame(w)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// Present implements engine.Sink.
func (w *Window) Present(_ context.Context, f engine.Frame) error {
	w.frame = f
	w.dirty = true
	return nil
}

// Update implements ebiten.Game.
func (w *Window) Update() error {
	if w.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	for _, ev := range w.events() {
		if err := w.sched.ApplyToolEvent(ev); err != nil {
			w.logger.Warn("tool event rejected", "kind", ev.Kind, "error", err)
		}
		w.dirty = true
	}
	if w.sched.Tick(w.ctx, time.Now()) {
		w.Present(w.ctx, w.sched.Current())
	} else if w.dirty {
		// Tool changes show up even while paused.
		w.frame = w.sched.Current()
	}
	return nil
}

// events translates this tick's keyboard and mouse input.
func (w *Window) events() []engine.ToolEvent {
	var evs []engine.ToolEvent
	sel := w.sched.Selection()

	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		switch k {
		case ebiten.KeySpace:
			paused := w.sched.TogglePause()
			w.logger.Info("playback", "paused", paused)
		case ebiten.KeyR:
			w.sched.Reset()
			w.dirty = true
		case ebiten.KeyM:
			evs = append(evs, engine.ToolEvent{Kind: engine.EventMode, Manual: !sel.Manual})
		case ebiten.KeyBracketLeft:
			evs = append(evs, engine.ToolEvent{Kind: engine.EventBrushSize, Value: float64(max(1, sel.BrushSize()-brushStep))})
		case ebiten.KeyBracketRight:
			evs = append(evs, engine.ToolEvent{Kind: engine.EventBrushSize, Value: float64(sel.BrushSize() + brushStep)})
		case ebiten.KeyC:
			evs = append(evs, engine.ToolEvent{Kind: engine.EventClear})
		case ebiten.KeyI:
			evs = append(evs, engine.ToolEvent{Kind: engine.EventInvert})
		case ebiten.KeyO:
			w.overlay = !w.overlay
			w.dirty = true
		default:
			if t, ok := toolKeys[k]; ok {
				evs = append(evs, engine.ToolEvent{Kind: engine.EventTool, Tool: t})
			}
		}
	}

	x, y := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		evs = append(evs, engine.ToolEvent{Kind: engine.EventDown, X: x, Y: y})
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		evs = append(evs, engine.ToolEvent{Kind: engine.EventMove, X: x, Y: y}, engine.ToolEvent{Kind: engine.EventUp})
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		evs = append(evs, engine.ToolEvent{Kind: engine.EventMove, X: x, Y: y})
	}
	return evs
}

// Draw implements ebiten.Game.
func (w *Window) Draw(screen *ebiten.Image) {
	f := w.frame
	if f.Image.Empty() {
		return
	}
	if w.dirty || w.composed == nil {
		if w.overlay {
			w.composed = w.opts.Overlay.Compose(f)
		} else {
			w.composed = f.Image
		}
		if w.screen == nil || w.screen.Bounds().Dx() != f.Image.Width || w.screen.Bounds().Dy() != f.Image.Height {
			w.screen = ebiten.NewImage(f.Image.Width, f.Image.Height)
		}
		w.screen.WritePixels(w.composed.Pix)
		w.dirty = false
	}
	screen.DrawImage(w.screen, nil)
}

// Layout implements ebiten.Game. The logical screen is the image, so
// cursor positions are image coordinates.
func (w *Window) Layout(_, _ int) (int, int) {
	img := w.frame.Image
	if img.Empty() {
		return 1, 1
	}
	return img.Width, img.Height
}
