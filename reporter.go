package talon

import (
	"context"
	"log/slog"
	"slices"

	"github.com/casualjim/talon/pkg/slogx"
)

// Reporter receives the failures dispatch swallowed while fanning an
// invocation out. Implementations must not assume they run on any
// particular goroutine; they are called inline from Invoke, on whichever
// goroutine invoked the hook.
type Reporter interface {
	OnFailure(context.Context, Failure)
}

// LoggingReporter returns the default Reporter: every failure becomes an
// error-level record on the process-wide slog logger, tagged with the hook
// name and the owner whose implementation failed.
func LoggingReporter() Reporter {
	return &loggingReporter{}
}

type loggingReporter struct{}

func (loggingReporter) OnFailure(ctx context.Context, failure Failure) {
	slog.ErrorContext(ctx, "hook implementation failed",
		slogx.LoggerName("talon"),
		slog.String("hook", failure.Hook),
		slog.String("owner", failure.Owner),
		slogx.Error(failure.Err),
	)
}

// NewCompositeReporter combines several reporters into one.
func NewCompositeReporter(reporters ...Reporter) Reporter {
	return CompositeReporter(reporters)
}

// CompositeReporter fans every failure out to each of its reporters in
// order. It is itself a Reporter, so composites nest.
type CompositeReporter []Reporter

func (c CompositeReporter) OnFailure(ctx context.Context, failure Failure) {
	for r := range slices.Values(c) {
		r.OnFailure(ctx, failure)
	}
}
