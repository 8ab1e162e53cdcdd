//go:build !windows

package autostart

import (
	"errors"

	"go.uber.org/zap"
)

var errRegistryUnavailable = errors.New("windows registry not available on this platform")

// newRunKeyBackend returns an unavailable backend on non-Windows builds;
// the selector filters it out through the availability probe.
func newRunKeyBackend(_ *zap.Logger) Backend {
	return runKeyUnavailable{}
}

type runKeyUnavailable struct{}

func (runKeyUnavailable) Available() bool              { return false }
func (runKeyUnavailable) Enable(_, _ string) error     { return errRegistryUnavailable }
func (runKeyUnavailable) Disable(string) error         { return errRegistryUnavailable }
func (runKeyUnavailable) Enabled(string) (bool, error) { return false, errRegistryUnavailable }
