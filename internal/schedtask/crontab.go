package schedtask

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/nicolettas-muggelbude/Scrat-Backup-sub001/internal/platform"
)

// rebootSpec is the crontab time specification for the startup trigger.
const rebootSpec = "@reboot"

// crontabBackend stores tasks as lines in the user crontab. Each owned line
// carries a trailing sentinel comment "# <App>: <task>"; every other line is
// foreign and must survive rewrites byte-identical. The crontab is a shared
// document not owned by this process.
type crontabBackend struct {
	kind     platform.Kind
	app      string
	runner   Runner
	lookPath func(string) (string, error)
	logger   *zap.Logger
}

func newCrontabBackend(kind platform.Kind, app string, runner Runner, logger *zap.Logger) *crontabBackend {
	return &crontabBackend{
		kind:     kind,
		app:      app,
		runner:   runner,
		lookPath: exec.LookPath,
		logger:   logger,
	}
}

// Available reports whether the crontab tool can be used. It only inspects
// the platform kind and the search path.
func (c *crontabBackend) Available() bool {
	if c.kind != platform.KindLinux {
		return false
	}
	_, err := c.lookPath("crontab")
	return err == nil
}

// sentinel marks a crontab line as owned by the named task.
func (c *crontabBackend) sentinel(name string) string {
	return fmt.Sprintf("# %s: %s", c.app, name)
}

// Register rewrites the crontab: the current document minus any line owned
// by name, plus one fresh line for name. The whole document is replaced in
// a single write, so re-registration never duplicates.
func (c *crontabBackend) Register(ctx context.Context, name string, trigger Trigger, command string, args []string) error {
	if trigger != TriggerStartup {
		return fmt.Errorf("%w: crontab has no %s event", ErrUnsupportedTrigger, trigger)
	}
	lines := c.withoutTask(c.read(ctx), name)
	line := rebootSpec + " " + command
	if len(args) > 0 {
		line += " " + strings.Join(args, " ")
	}
	line += " " + c.sentinel(name)
	return c.write(ctx, append(lines, line))
}

// Unregister is the same rewrite without the fresh line. An absent task
// leaves the document as it was.
func (c *crontabBackend) Unregister(ctx context.Context, name string) error {
	return c.write(ctx, c.withoutTask(c.read(ctx), name))
}

// read lists the current crontab. A failed read, including "no crontab for
// user", yields an empty document.
func (c *crontabBackend) read(ctx context.Context) []string {
	out, err := c.runner.Run(ctx, "crontab", "-l")
	if err != nil {
		c.logger.Debug("No readable crontab, starting from empty document", zap.Error(err))
		return nil
	}
	out = strings.TrimRight(out, "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// withoutTask drops every line owned by name. Foreign lines pass through
// untouched.
func (c *crontabBackend) withoutTask(lines []string, name string) []string {
	marker := c.sentinel(name)
	var kept []string
	for _, l := range lines {
		if strings.HasSuffix(strings.TrimRight(l, " \t"), marker) {
			continue
		}
		kept = append(kept, l)
	}
	return kept
}

// write replaces the whole crontab document through the crontab tool's
// stdin install mode.
func (c *crontabBackend) write(ctx context.Context, lines []string) error {
	doc := strings.Join(lines, "\n")
	if doc != "" {
		doc += "\n"
	}
	if out, err := c.runner.RunInput(ctx, doc, "crontab", "-"); err != nil {
		return fmt.Errorf("replacing crontab: %w (output: %s)", err, strings.TrimSpace(out))
	}
	return nil
}
