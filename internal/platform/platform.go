// Package platform identifies the operating system family the process runs on.
// The detected Kind is passed explicitly into backend constructors instead of
// being queried inside business logic, so tests can simulate any OS.
package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v3/host"
)

// Kind is the closed set of OS families with native backends.
type Kind int

const (
	KindUnknown Kind = iota
	KindWindows
	KindLinux
	KindDarwin
)

// String returns the GOOS-style name of the platform kind.
func (k Kind) String() string {
	switch k {
	case KindWindows:
		return "windows"
	case KindLinux:
		return "linux"
	case KindDarwin:
		return "darwin"
	default:
		return "unknown"
	}
}

// Detect maps the compiled-in GOOS to a Kind.
func Detect() Kind {
	switch runtime.GOOS {
	case "windows":
		return KindWindows
	case "linux":
		return KindLinux
	case "darwin":
		return KindDarwin
	default:
		return KindUnknown
	}
}

// ParseKind parses a platform override string.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "windows":
		return KindWindows, nil
	case "linux":
		return KindLinux, nil
	case "darwin":
		return KindDarwin, nil
	default:
		return KindUnknown, fmt.Errorf("invalid platform %q (expected \"windows\", \"linux\" or \"darwin\")", s)
	}
}

// Info describes the running host for diagnostics.
type Info struct {
	OS              string
	Platform        string
	PlatformVersion string
	KernelVersion   string
}

// Describe reads host details. Diagnostics only; a failure here must
// never block a registration operation.
func Describe(ctx context.Context) (Info, error) {
	hi, err := host.InfoWithContext(ctx)
	if err != nil {
		return Info{}, fmt.Errorf("reading host info: %w", err)
	}
	return Info{
		OS:              hi.OS,
		Platform:        hi.Platform,
		PlatformVersion: hi.PlatformVersion,
		KernelVersion:   hi.KernelVersion,
	}, nil
}
