// Package schedtask registers named tasks bound to OS lifecycle events with
// the native scheduler of each OS family: the task scheduler CLI on Windows,
// the user crontab on Linux and launchd on macOS. The layer only reads and
// writes durable OS state; it keeps no history and runs no timers of its
// own — execution is left entirely to the OS.
package schedtask

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/nicolettas-muggelbude/Scrat-Backup-sub001/internal/platform"
)

// Trigger is the lifecycle event a task is bound to.
type Trigger string

const (
	TriggerStartup  Trigger = "startup"
	TriggerShutdown Trigger = "shutdown"
)

// ParseTrigger parses a trigger name.
func ParseTrigger(s string) (Trigger, error) {
	switch Trigger(s) {
	case TriggerStartup, TriggerShutdown:
		return Trigger(s), nil
	default:
		return "", fmt.Errorf("invalid trigger %q (expected \"startup\" or \"shutdown\")", s)
	}
}

// ErrUnsupportedTrigger is returned when a backend cannot express the
// requested trigger. It is raised before any native call is made.
var ErrUnsupportedTrigger = errors.New("trigger not supported by this backend")

// ErrNotImplemented is returned by backends that are selected for their
// platform but decline all mutating operations.
var ErrNotImplemented = errors.New("not implemented on this platform")

// Backend persists a named task for one OS family.
type Backend interface {
	// Available reports whether this backend can operate here.
	// It must not mutate any state.
	Available() bool

	// Register persists the task, overwriting any existing task with the
	// same name.
	Register(ctx context.Context, name string, trigger Trigger, command string, args []string) error

	// Unregister removes the task. An already absent task is not an error.
	Unregister(ctx context.Context, name string) error
}

// forPlatform returns the one backend matching kind, gated on the backend's
// own availability probe. A nil result means no scheduler support on this
// platform and is a valid, expected outcome for callers. Note that macOS
// keeps its backend selected even though every mutating call declines.
func forPlatform(kind platform.Kind, app string, runner Runner, logger *zap.Logger) Backend {
	var b Backend
	switch kind {
	case platform.KindWindows:
		b = newSchtasksBackend(kind, app, runner, logger)
	case platform.KindLinux:
		b = newCrontabBackend(kind, app, runner, logger)
	case platform.KindDarwin:
		b = newLaunchdBackend(kind, logger)
	default:
		return nil
	}
	if !b.Available() {
		return nil
	}
	return b
}

// Manager is the entry point collaborators use. Every outcome is folded to a
// boolean; diagnostics go to the logger and never propagate as errors.
//
// The crontab rewrite is not transactional: concurrent registrations for the
// same task name must be serialized by the caller.
type Manager struct {
	backend Backend
	logger  *zap.Logger
}

// NewManager builds a Manager for the given platform kind. app names the
// namespace all tasks are scoped under.
func NewManager(kind platform.Kind, app string, runner Runner, logger *zap.Logger) *Manager {
	b := forPlatform(kind, app, runner, logger)
	if b == nil {
		logger.Warn("No task scheduler backend for platform", zap.Stringer("platform", kind))
	}
	return &Manager{backend: b, logger: logger}
}

// Register persists the named task, overwriting any existing task with the
// same name.
func (m *Manager) Register(ctx context.Context, name string, trigger Trigger, command string, args []string) bool {
	if m.backend == nil {
		m.logger.Warn("Task registration skipped, no backend", zap.String("task", name))
		return false
	}
	if err := m.backend.Register(ctx, name, trigger, command, args); err != nil {
		m.logger.Error("Task registration failed",
			zap.String("task", name),
			zap.String("trigger", string(trigger)),
			zap.Error(err))
		return false
	}
	m.logger.Info("Task registered",
		zap.String("task", name), zap.String("trigger", string(trigger)))
	return true
}

// Unregister removes the named task. Removing a task that does not exist is
// a successful no-op.
func (m *Manager) Unregister(ctx context.Context, name string) bool {
	if m.backend == nil {
		m.logger.Warn("Task removal skipped, no backend", zap.String("task", name))
		return false
	}
	if err := m.backend.Unregister(ctx, name); err != nil {
		m.logger.Error("Task removal failed", zap.String("task", name), zap.Error(err))
		return false
	}
	m.logger.Info("Task unregistered", zap.String("task", name))
	return true
}
