package capture

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

var _ Invoker = (*ExecInvoker)(nil)

// ExecInvoker runs the tool binary directly and streams its stdout into the
// output file. No shell is involved, so the URL is never interpreted.
type ExecInvoker struct{}

func NewExecInvoker() *ExecInvoker {
	return &ExecInvoker{}
}

func (e *ExecInvoker) Invoke(ctx context.Context, spec CommandSpec) (Outcome, error) {
	if spec.Binary == "" {
		return Outcome{}, fmt.Errorf("%w: tool %q has no executable", ErrLaunch, spec.Tool)
	}

	file, err := os.Create(spec.OutputPath)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: failed to create output file: %v", ErrLaunch, err)
	}
	defer file.Close()

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, spec.Binary, spec.Argv()...)
	cmd.Stdout = file
	cmd.Stderr = &stderr

	return run(ctx, cmd, &stderr)
}

func run(ctx context.Context, cmd *exec.Cmd, stderr *bytes.Buffer) (Outcome, error) {
	start := time.Now()
	if err := cmd.Start(); err != nil {
		return Outcome{}, fmt.Errorf("%w: %s: %v", ErrLaunch, cmd.Path, err)
	}

	// The exit status is read from ProcessState below.
	_ = cmd.Wait()

	return Outcome{
		ExitCode:    cmd.ProcessState.ExitCode(),
		Duration:    time.Since(start),
		Stderr:      tail(strings.TrimSpace(stderr.String())),
		Interrupted: ctx.Err() != nil,
	}, nil
}
