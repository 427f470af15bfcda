package capture

import (
	"bytes"
	"context"
	"os/exec"
)

var _ Invoker = (*ShellInvoker)(nil)

// ShellInvoker hands the rendered command line to sh, redirection included.
// A missing tool surfaces as sh's exit status 127, not as a launch error.
type ShellInvoker struct {
	shell string
}

func NewShellInvoker(shell string) *ShellInvoker {
	if shell == "" {
		shell = "sh"
	}
	return &ShellInvoker{shell: shell}
}

func (s *ShellInvoker) Invoke(ctx context.Context, spec CommandSpec) (Outcome, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, s.shell, "-c", spec.ShellLine())
	cmd.Stderr = &stderr

	return run(ctx, cmd, &stderr)
}
