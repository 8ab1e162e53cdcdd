package autostart

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// desktopEntryTemplate is the XDG autostart file written on Linux.
// Placeholders {app}, {command} and {icon} are substituted on write.
const desktopEntryTemplate = `[Desktop Entry]
Type=Application
Name={app}
Comment={app} backup application
Exec={command}
Icon={icon}
Terminal=false
Categories=Utility;
X-GNOME-Autostart-enabled=true
`

// desktopEntryBackend stores the login entry as a .desktop file in the
// user's autostart directory.
type desktopEntryBackend struct {
	dir            string
	iconCandidates []string
	logger         *zap.Logger
}

func newDesktopEntryBackend(opts Options, logger *zap.Logger) *desktopEntryBackend {
	dir := opts.AutostartDir
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config", "autostart")
	}
	return &desktopEntryBackend{dir: dir, iconCandidates: opts.IconCandidates, logger: logger}
}

func (d *desktopEntryBackend) Available() bool { return true }

func (d *desktopEntryBackend) path(app string) string {
	return filepath.Join(d.dir, strings.ToLower(app)+".desktop")
}

// Enable writes the desktop entry, creating the autostart directory if
// missing. An existing entry for the same app is overwritten.
func (d *desktopEntryBackend) Enable(app, command string) error {
	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return fmt.Errorf("creating autostart directory: %w", err)
	}
	entry := strings.ReplaceAll(desktopEntryTemplate, "{app}", app)
	entry = strings.ReplaceAll(entry, "{command}", command)
	entry = strings.ReplaceAll(entry, "{icon}", d.icon(app))
	if err := os.WriteFile(d.path(app), []byte(entry), 0755); err != nil {
		return fmt.Errorf("writing desktop entry: %w", err)
	}
	return nil
}

// icon returns the first existing candidate icon path, falling back to the
// bare lowercased app name so the icon theme can resolve it.
func (d *desktopEntryBackend) icon(app string) string {
	for _, p := range d.iconCandidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return strings.ToLower(app)
}

// Disable removes the desktop entry; an already absent entry is success.
func (d *desktopEntryBackend) Disable(app string) error {
	if err := os.Remove(d.path(app)); err != nil {
		if os.IsNotExist(err) {
			d.logger.Debug("Desktop entry already absent", zap.String("app", app))
			return nil
		}
		return fmt.Errorf("removing desktop entry: %w", err)
	}
	return nil
}

// Enabled checks whether the desktop entry file exists.
func (d *desktopEntryBackend) Enabled(app string) (bool, error) {
	_, err := os.Stat(d.path(app))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking desktop entry: %w", err)
	}
	return true, nil
}
