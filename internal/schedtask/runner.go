package schedtask

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Runner executes short external commands non-interactively. Every call runs
// under a hard timeout so a stuck tool cannot block registration.
type Runner interface {
	// Run executes name with args and returns combined output.
	Run(ctx context.Context, name string, args ...string) (string, error)

	// RunInput is Run with input fed to the command's stdin.
	RunInput(ctx context.Context, input, name string, args ...string) (string, error)
}

const defaultExecTimeout = 30 * time.Second

// execRunner runs commands via os/exec.
type execRunner struct {
	timeout time.Duration
}

// NewRunner returns a Runner with the given per-call timeout. A zero or
// negative timeout falls back to 30s.
func NewRunner(timeout time.Duration) Runner {
	if timeout <= 0 {
		timeout = defaultExecTimeout
	}
	return &execRunner{timeout: timeout}
}

func (r *execRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	return r.RunInput(ctx, "", name, args...)
}

func (r *execRunner) RunInput(ctx context.Context, input, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(input)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), fmt.Errorf("running %s: %w", name, err)
	}
	return string(out), nil
}
