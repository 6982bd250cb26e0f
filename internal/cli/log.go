package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates the CLI logger. Timestamps render as "HH:MM:SS.ff" so
// back-to-back export steps stay readable at a glance.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress measures one command-level operation and logs its completion
// with the elapsed time. Driven serially by a single command run.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress starts the clock for an operation.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed duration, e.g. "Exported 12 slides (34ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey is a private context key type so logger attachment cannot collide
// with other packages.
type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches the CLI logger to a command context.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the attached logger, falling back to
// log.Default so commands always have a usable logger.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
