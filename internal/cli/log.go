// Package cli implements the glitcher command-line interface.
//
// Commands are thin cobra wrappers over the library packages:
//   - render: animate an image through pkg/pipeline into a GIF, the last
//     frame as PNG, or a directory of numbered frames
//   - play: run the scheduler live in a terminal dashboard or an ebiten window
//   - serve: expose interactive sessions over HTTP via pkg/server
//   - presets, config, cache: inspect presets, manage the TOML config file
//     and the on-disk render cache
//
// Everything logs through one charmbracelet/log logger on stderr. --verbose
// lowers it to debug, which also surfaces the scheduler's per-frame events.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger stamped with wall-clock time to the
// hundredth of a second.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// stopwatch logs how long a step took once it finishes.
type stopwatch struct {
	logger *log.Logger
	start  time.Time
}

func startStopwatch(l *log.Logger) stopwatch {
	return stopwatch{logger: l, start: time.Now()}
}

// done logs the formatted message followed by the elapsed time, e.g.
// "Rendered 60 frames (1.234s)".
func (s stopwatch) done(format string, args ...any) {
	elapsed := time.Since(s.start).Round(time.Millisecond)
	s.logger.Infof("%s (%s)", fmt.Sprintf(format, args...), elapsed)
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger attached by the root command, or
// log.Default when a command runs outside it (as in tests).
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
