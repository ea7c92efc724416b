// Package observability lets hosts watch the engine without the engine
// depending on a metrics backend.
//
// Four hook sets cover the event sources: the scheduler ([FrameHooks]),
// batch renders ([PipelineHooks]), caches ([CacheHooks]) and the HTTP API
// ([HTTPHooks]). Each starts as a no-op and can be swapped at startup:
//
//	observability.SetAll(observability.NewLogHooks(logger))
//
// Emitters fetch the current set on every event, so a swap takes effect
// immediately and emitting costs one atomic load when nothing is listening:
//
//	observability.Frame().OnFrame(ctx, frame, clumps, time.Since(start))
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// FrameHooks receives scheduler events.
type FrameHooks interface {
	// OnSpawn reports clumps created in one step. source is the selection
	// method name, "manual" or "fallback".
	OnSpawn(ctx context.Context, source string, clumps int)
	OnFrame(ctx context.Context, frame uint64, clumps int, took time.Duration)
	OnFilter(ctx context.Context, kind string, took time.Duration)
}

// PipelineHooks receives batch render events. Complete calls carry the
// job's error, nil on success.
type PipelineHooks interface {
	OnLoadStart(ctx context.Context, source string)
	OnLoadComplete(ctx context.Context, source string, width, height int, took time.Duration, err error)
	OnRenderStart(ctx context.Context, frames int, format string)
	OnRenderComplete(ctx context.Context, frames int, format string, took time.Duration, err error)
}

// CacheHooks receives cache lookups and writes. keyType names the cache
// layer, such as "image" or "render".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives API traffic.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, status int, took time.Duration)
}

// Hooks is anything implementing every hook set, such as [LogHooks].
type Hooks interface {
	FrameHooks
	PipelineHooks
	CacheHooks
	HTTPHooks
}

// Noop implements every hook set and does nothing. Embed one of the
// per-set aliases to override only some methods.
type Noop struct{}

type (
	NoopFrameHooks    = Noop
	NoopPipelineHooks = Noop
	NoopCacheHooks    = Noop
	NoopHTTPHooks     = Noop
)

func (Noop) OnSpawn(context.Context, string, int)                                   {}
func (Noop) OnFrame(context.Context, uint64, int, time.Duration)                    {}
func (Noop) OnFilter(context.Context, string, time.Duration)                        {}
func (Noop) OnLoadStart(context.Context, string)                                    {}
func (Noop) OnLoadComplete(context.Context, string, int, int, time.Duration, error) {}
func (Noop) OnRenderStart(context.Context, int, string)                             {}
func (Noop) OnRenderComplete(context.Context, int, string, time.Duration, error)    {}
func (Noop) OnCacheHit(context.Context, string)                                     {}
func (Noop) OnCacheMiss(context.Context, string)                                    {}
func (Noop) OnCacheSet(context.Context, string, int)                                {}
func (Noop) OnRequest(context.Context, string, string)                              {}
func (Noop) OnResponse(context.Context, string, string, int, time.Duration)         {}

var _ Hooks = Noop{}

// slot holds one registered hook set.
type slot[T any] struct {
	p atomic.Pointer[T]
}

func (s *slot[T]) get(fallback T) T {
	if h := s.p.Load(); h != nil {
		return *h
	}
	return fallback
}

func (s *slot[T]) set(h T) { s.p.Store(&h) }

var (
	frames    slot[FrameHooks]
	pipelines slot[PipelineHooks]
	caches    slot[CacheHooks]
	requests  slot[HTTPHooks]
)

// SetFrameHooks replaces the frame hooks. nil is ignored.
func SetFrameHooks(h FrameHooks) {
	if h != nil {
		frames.set(h)
	}
}

// SetPipelineHooks replaces the pipeline hooks. nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		pipelines.set(h)
	}
}

// SetCacheHooks replaces the cache hooks. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		caches.set(h)
	}
}

// SetHTTPHooks replaces the HTTP hooks. nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		requests.set(h)
	}
}

// SetAll registers h for every hook set.
func SetAll(h Hooks) {
	SetFrameHooks(h)
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func Frame() FrameHooks       { return frames.get(Noop{}) }
func Pipeline() PipelineHooks { return pipelines.get(Noop{}) }
func Cache() CacheHooks       { return caches.get(Noop{}) }
func HTTP() HTTPHooks         { return requests.get(Noop{}) }

// Reset restores the no-op hooks.
func Reset() {
	frames.p.Store(nil)
	pipelines.p.Store(nil)
	caches.p.Store(nil)
	requests.p.Store(nil)
}
