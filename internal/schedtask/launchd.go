package schedtask

import (
	"context"

	"go.uber.org/zap"

	"github.com/nicolettas-muggelbude/Scrat-Backup-sub001/internal/platform"
)

// launchdBackend is selected on macOS but declines every mutating operation;
// launchd-based task registration is not implemented. Callers on macOS get a
// selected, non-functional scheduler rather than "no scheduler available".
type launchdBackend struct {
	kind   platform.Kind
	logger *zap.Logger
}

func newLaunchdBackend(kind platform.Kind, logger *zap.Logger) *launchdBackend {
	return &launchdBackend{kind: kind, logger: logger}
}

func (l *launchdBackend) Available() bool {
	return l.kind == platform.KindDarwin
}

func (l *launchdBackend) Register(_ context.Context, name string, trigger Trigger, _ string, _ []string) error {
	l.logger.Warn("Task registration not implemented on macOS",
		zap.String("task", name), zap.String("trigger", string(trigger)))
	return ErrNotImplemented
}

func (l *launchdBackend) Unregister(_ context.Context, name string) error {
	l.logger.Warn("Task removal not implemented on macOS", zap.String("task", name))
	return ErrNotImplemented
}
