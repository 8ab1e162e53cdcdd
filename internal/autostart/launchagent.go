package autostart

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// launchAgentTemplate is the LaunchAgent property list written on macOS.
// Placeholders {label} and {args} are substituted on write.
const launchAgentTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>{label}</string>
    <key>ProgramArguments</key>
    <array>
{args}    </array>
    <key>RunAtLoad</key>
    <true/>
    <key>KeepAlive</key>
    <false/>
</dict>
</plist>
`

// launchAgentBackend stores the login entry as a plist in the user's
// LaunchAgents directory.
type launchAgentBackend struct {
	dir        string
	launchArgs []string
	logger     *zap.Logger
}

func newLaunchAgentBackend(opts Options, logger *zap.Logger) *launchAgentBackend {
	dir := opts.LaunchAgentsDir
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, "Library", "LaunchAgents")
	}
	return &launchAgentBackend{dir: dir, launchArgs: opts.LaunchArgs, logger: logger}
}

func (l *launchAgentBackend) Available() bool { return true }

func (l *launchAgentBackend) label(app string) string {
	return "com." + strings.ToLower(app)
}

func (l *launchAgentBackend) path(app string) string {
	return filepath.Join(l.dir, l.label(app)+".plist")
}

// Enable writes the LaunchAgent plist. The application is always launched
// through the fixed program-argument vector it was packaged with; the
// command argument is not used here.
func (l *launchAgentBackend) Enable(app, _ string) error {
	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return fmt.Errorf("creating LaunchAgents directory: %w", err)
	}
	var args strings.Builder
	for _, a := range l.launchArgs {
		fmt.Fprintf(&args, "        <string>%s</string>\n", a)
	}
	plist := strings.ReplaceAll(launchAgentTemplate, "{label}", l.label(app))
	plist = strings.ReplaceAll(plist, "{args}", args.String())
	if err := os.WriteFile(l.path(app), []byte(plist), 0644); err != nil {
		return fmt.Errorf("writing plist: %w", err)
	}
	return nil
}

// Disable removes the plist; an already absent plist is success.
func (l *launchAgentBackend) Disable(app string) error {
	if err := os.Remove(l.path(app)); err != nil {
		if os.IsNotExist(err) {
			l.logger.Debug("LaunchAgent plist already absent", zap.String("app", app))
			return nil
		}
		return fmt.Errorf("removing plist: %w", err)
	}
	return nil
}

// Enabled checks whether the plist file exists.
func (l *launchAgentBackend) Enabled(app string) (bool, error) {
	_, err := os.Stat(l.path(app))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking plist file: %w", err)
	}
	return true, nil
}
