package capture

import (
	"context"
	"errors"
	"time"
)

// ErrLaunch marks a capture that could not be started at all, as opposed to
// one that ran and exited non-zero.
var ErrLaunch = errors.New("failed to launch capture")

const maxStderrBytes = 2048

// Invoker performs one capture. It returns an error only when the capture
// could not be launched; a tool that ran and failed is reported through
// Outcome.
type Invoker interface {
	Invoke(ctx context.Context, spec CommandSpec) (Outcome, error)
}

type Outcome struct {
	ExitCode    int
	Duration    time.Duration
	Stderr      string
	Interrupted bool // killed by timeout or cancellation
}

func (o Outcome) Success() bool {
	return o.ExitCode == 0 && !o.Interrupted
}

func tail(s string) string {
	if len(s) <= maxStderrBytes {
		return s
	}
	return s[len(s)-maxStderrBytes:]
}
