package schedtask

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/nicolettas-muggelbude/Scrat-Backup-sub001/internal/platform"
)

// schtasksBackend drives the Windows task scheduler CLI. Tasks are
// namespaced under the application folder so unrelated system tasks are
// never touched.
type schtasksBackend struct {
	kind   platform.Kind
	app    string
	runner Runner
	logger *zap.Logger
}

func newSchtasksBackend(kind platform.Kind, app string, runner Runner, logger *zap.Logger) *schtasksBackend {
	return &schtasksBackend{kind: kind, app: app, runner: runner, logger: logger}
}

func (s *schtasksBackend) Available() bool {
	return s.kind == platform.KindWindows
}

func (s *schtasksBackend) taskPath(name string) string {
	return s.app + `\` + name
}

// schedule maps a trigger to the scheduler's /SC value.
func schedule(trigger Trigger) (string, error) {
	switch trigger {
	case TriggerStartup:
		return "ONSTART", nil
	case TriggerShutdown:
		return "ONLOGOFF", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedTrigger, trigger)
	}
}

// Register creates the task with /F so re-registration overwrites the
// existing definition instead of failing on "already exists".
func (s *schtasksBackend) Register(ctx context.Context, name string, trigger Trigger, command string, args []string) error {
	sc, err := schedule(trigger)
	if err != nil {
		return err
	}
	out, err := s.runner.Run(ctx, "schtasks",
		"/Create", "/TN", s.taskPath(name), "/TR", commandLine(command, args), "/SC", sc, "/F")
	if err != nil {
		return fmt.Errorf("creating task %s: %w (output: %s)", name, err, strings.TrimSpace(out))
	}
	return nil
}

// Unregister deletes the task. A not-found outcome means the task is
// already absent and counts as success.
func (s *schtasksBackend) Unregister(ctx context.Context, name string) error {
	out, err := s.runner.Run(ctx, "schtasks", "/Delete", "/TN", s.taskPath(name), "/F")
	if err != nil {
		if taskNotFound(out) {
			s.logger.Debug("Task already absent", zap.String("task", name))
			return nil
		}
		return fmt.Errorf("deleting task %s: %w (output: %s)", name, err, strings.TrimSpace(out))
	}
	return nil
}

// taskNotFound matches the scheduler's "task does not exist" responses.
func taskNotFound(out string) bool {
	low := strings.ToLower(out)
	return strings.Contains(low, "cannot find") || strings.Contains(low, "does not exist")
}

// commandLine joins command and arguments into the single string the /TR
// flag expects, quoting anything containing whitespace.
func commandLine(command string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	for _, p := range append([]string{command}, args...) {
		if strings.ContainsAny(p, " \t") {
			p = `"` + p + `"`
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, " ")
}
