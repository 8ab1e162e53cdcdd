// Package autostart persists, removes and queries a single "run this command
// at login" entry, using the native mechanism of each OS family: a per-user
// registry value on Windows, an XDG desktop entry on Linux and a LaunchAgent
// property list on macOS. The entry's true state lives entirely in OS storage;
// nothing is kept in memory between calls.
package autostart

import (
	"go.uber.org/zap"

	"github.com/nicolettas-muggelbude/Scrat-Backup-sub001/internal/platform"
)

// Backend persists a login entry for one OS family.
type Backend interface {
	// Available reports whether this backend can operate here.
	// It must not mutate any state.
	Available() bool

	// Enable persists the login entry, overwriting any existing entry
	// for the same application name.
	Enable(app, command string) error

	// Disable removes the login entry. An already absent entry is not
	// an error.
	Disable(app string) error

	// Enabled reports whether the login entry currently exists.
	Enabled(app string) (bool, error)
}

// Options configures backend construction.
type Options struct {
	// IconCandidates are absolute icon paths probed in order for the
	// desktop entry; the first existing one wins, otherwise the
	// lowercased application name is used as a bare icon name.
	IconCandidates []string

	// LaunchArgs is the fixed program-argument vector written into the
	// LaunchAgent plist. The packaged application is always launched
	// through this vector; the per-call command is not used on macOS.
	LaunchArgs []string

	// AutostartDir and LaunchAgentsDir override the default per-user
	// directories. Used by tests.
	AutostartDir    string
	LaunchAgentsDir string
}

// forPlatform returns the one backend matching kind, gated on the backend's
// own availability probe. A nil result means no autostart support on this
// platform and is a valid, expected outcome for callers.
func forPlatform(kind platform.Kind, opts Options, logger *zap.Logger) Backend {
	var b Backend
	switch kind {
	case platform.KindWindows:
		b = newRunKeyBackend(logger)
	case platform.KindLinux:
		b = newDesktopEntryBackend(opts, logger)
	case platform.KindDarwin:
		b = newLaunchAgentBackend(opts, logger)
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
type Manager struct {
	app     string
	command string
	backend Backend
	logger  *zap.Logger
}

// NewManager builds a Manager for the given platform kind. app names the
// entry this layer owns; command is the default launch command used when
// Enable is called with an empty override.
func NewManager(kind platform.Kind, app, command string, opts Options, logger *zap.Logger) *Manager {
	b := forPlatform(kind, opts, logger)
	if b == nil {
		logger.Warn("No autostart backend for platform", zap.Stringer("platform", kind))
	}
	return &Manager{app: app, command: command, backend: b, logger: logger}
}

// Enable registers the login entry, overwriting any existing entry for the
// same application name. An empty command falls back to the configured one.
func (m *Manager) Enable(command string) bool {
	if m.backend == nil {
		m.logger.Warn("Autostart enable skipped, no backend", zap.String("app", m.app))
		return false
	}
	if command == "" {
		command = m.command
	}
	if err := m.backend.Enable(m.app, command); err != nil {
		m.logger.Error("Enabling autostart failed",
			zap.String("app", m.app), zap.Error(err))
		return false
	}
	m.logger.Info("Autostart enabled",
		zap.String("app", m.app), zap.String("command", command))
	return true
}

// Disable removes the login entry. Removing an entry that does not exist is
// a successful no-op.
func (m *Manager) Disable() bool {
	if m.backend == nil {
		m.logger.Warn("Autostart disable skipped, no backend", zap.String("app", m.app))
		return false
	}
	if err := m.backend.Disable(m.app); err != nil {
		m.logger.Error("Disabling autostart failed",
			zap.String("app", m.app), zap.Error(err))
		return false
	}
	m.logger.Info("Autostart disabled", zap.String("app", m.app))
	return true
}

// Enabled reports whether the login entry currently exists. Query failures
// are logged and reported as not enabled.
func (m *Manager) Enabled() bool {
	if m.backend == nil {
		return false
	}
	enabled, err := m.backend.Enabled(m.app)
	if err != nil {
		m.logger.Error("Checking autostart failed",
			zap.String("app", m.app), zap.Error(err))
		return false
	}
	return enabled
}
