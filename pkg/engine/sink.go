package engine

import (
	"context"

	"github.com/matzehuels/glitcher/pkg/bitmap"
	"github.com/matzehuels/glitcher/pkg/selection"
)

// Frame is one presented animation frame.
//
// Image is owned by the scheduler and is only valid until the next frame is
// processed; sinks that keep frames must Clone it. Clumps is a copy the sink
// may keep. Clumps, Mask and Preview are for overlays, which a sink draws on
// its own surface and never into Image.
type Frame struct {
	Index   uint64
	Image   *bitmap.Buffer
	Clumps  []selection.Clump
	Mask    *bitmap.Mask // manual selection mask, nil in automatic mode
	Preview selection.Preview
}

// Sink receives processed frames.
type Sink interface {
	Present(ctx context.Context, f Frame) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, f Frame) error

// Present calls fn.
func (fn SinkFunc) Present(ctx context.Context, f Frame) error {
	return fn(ctx, f)
}

// Discard is a sink that drops every frame.
var Discard Sink = SinkFunc(func(context.Context, Frame) error { return nil })

// MemorySink keeps a copy of every presented image.
type MemorySink struct {
	Frames []*bitmap.Buffer
}

// Present implements Sink.
func (m *MemorySink) Present(_ context.Context, f Frame) error {
	m.Frames = append(m.Frames, f.Image.Clone())
	return nil
}

// Last returns the most recent frame, or nil when nothing was presented.
func (m *MemorySink) Last() *bitmap.Buffer {
	if len(m.Frames) == 0 {
		return nil
	}
	return m.Frames[len(m.Frames)-1]
}

// MultiSink presents each frame to every sink in order and stops at the
// first error.
func MultiSink(sinks ...Sink) Sink {
	return SinkFunc(func(ctx context.Context, f Frame) error {
		for _, s := range sinks {
			if err := s.Present(ctx, f); err != nil {
				return err
			}
		}
		return nil
	})
}
