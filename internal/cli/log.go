// Package cli implements the timeline command-line interface. It reads
// event files, lays them out and writes the rendered timeline.
//
// # Commands
//
// The main commands are:
//   - render: Generate SVG, PNG, JSON, CSV or ICS output from an events file
//   - bands: List the month bands covered by an events file
//   - inspect: Browse the resolved label placements interactively
//   - config: Create and show the configuration file
//   - serve: Run the HTTP API
//   - cache: Manage the artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger for diagnostics on w. Timestamps use
// centisecond precision, which is enough to see where a render spends its
// time without cluttering the line.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          appName,
	})
}

// progress measures one command run and logs each finished phase with the
// time spent in it. Not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
	last   time.Time
}

func newProgress(l *log.Logger) *progress {
	now := time.Now()
	return &progress{logger: l, start: now, last: now}
}

// step logs a finished phase at debug level with the time since the
// previous step.
func (p *progress) step(phase string, keyvals ...any) {
	now := time.Now()
	p.logger.Debug(phase, append(keyvals, "took", now.Sub(p.last).Round(time.Millisecond))...)
	p.last = now
}

// done logs msg at info level with the total elapsed time.
func (p *progress) done(msg string, keyvals ...any) {
	p.logger.Info(msg, append(keyvals, "elapsed", time.Since(p.start).Round(time.Millisecond))...)
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger stored by withLogger, or the
// package default when the command was run without one.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
