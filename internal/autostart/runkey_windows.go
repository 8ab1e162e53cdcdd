//go:build windows

package autostart

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sys/windows/registry"
)

// runKeyPath is the current user's "run at logon" key.
const runKeyPath = `Software\Microsoft\Windows\CurrentVersion\Run`

// runKeyBackend stores the login entry as a string value under the per-user
// Run key, keyed by application name.
type runKeyBackend struct {
	logger *zap.Logger
}

func newRunKeyBackend(logger *zap.Logger) Backend {
	return &runKeyBackend{logger: logger}
}

func (r *runKeyBackend) Available() bool { return true }

// Enable writes the run value, overwriting any existing value for app.
func (r *runKeyBackend) Enable(app, command string) error {
	k, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("opening run key: %w", err)
	}
	defer k.Close()
	if err := k.SetStringValue(app, command); err != nil {
		return fmt.Errorf("writing run value: %w", err)
	}
	return nil
}

// Disable deletes the run value; an already absent value is success.
func (r *runKeyBackend) Disable(app string) error {
	k, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("opening run key: %w", err)
	}
	defer k.Close()
	if err := k.DeleteValue(app); err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			r.logger.Debug("Run value already absent", zap.String("app", app))
			return nil
		}
		return fmt.Errorf("deleting run value: %w", err)
	}
	return nil
}

// Enabled checks whether the run value exists.
func (r *runKeyBackend) Enabled(app string) (bool, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.QUERY_VALUE)
	if err != nil {
		return false, fmt.Errorf("opening run key: %w", err)
	}
	defer k.Close()
	if _, _, err := k.GetStringValue(app); err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("reading run value: %w", err)
	}
	return true, nil
}
