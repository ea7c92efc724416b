package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level, except failed
// jobs and 5xx responses, which are logged as errors. The CLI installs it
// under --verbose.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log through l, tagged with the "obs" prefix.
func NewLogHooks(l *log.Logger) *LogHooks {
	return &LogHooks{logger: l.WithPrefix("obs")}
}

func (h *LogHooks) OnSpawn(_ context.Context, source string, clumps int) {
	h.logger.Debug("spawn", "source", source, "clumps", clumps)
}

func (h *LogHooks) OnFrame(_ context.Context, frame uint64, clumps int, took time.Duration) {
	h.logger.Debug("frame", "n", frame, "clumps", clumps, "took", took)
}

func (h *LogHooks) OnFilter(_ context.Context, kind string, took time.Duration) {
	h.logger.Debug("filter", "kind", kind, "took", took)
}

func (h *LogHooks) OnLoadStart(_ context.Context, source string) {
	h.logger.Debug("load", "source", source)
}

func (h *LogHooks) OnLoadComplete(_ context.Context, source string, width, height int, took time.Duration, err error) {
	if err != nil {
		h.logger.Error("load failed", "source", source, "took", took, "error", err)
		return
	}
	h.logger.Debug("loaded", "source", source, "width", width, "height", height, "took", took)
}

func (h *LogHooks) OnRenderStart(_ context.Context, frames int, format string) {
	h.logger.Debug("render", "frames", frames, "format", format)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, frames int, format string, took time.Duration, err error) {
	if err != nil {
		h.logger.Error("render failed", "frames", frames, "format", format, "took", took, "error", err)
		return
	}
	h.logger.Debug("rendered", "frames", frames, "format", format, "took", took)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, took time.Duration) {
	if status >= 500 {
		h.logger.Error("response", "method", method, "path", path, "status", status, "took", took)
		return
	}
	h.logger.Debug("response", "method", method, "path", path, "status", status, "took", took)
}

var _ Hooks = (*LogHooks)(nil)
