package autostart

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestDesktopEntry_EnableWritesEntry(t *testing.T) {
	dir := t.TempDir()
	b := newDesktopEntryBackend(Options{AutostartDir: filepath.Join(dir, "autostart")}, zap.NewNop())

	if err := b.Enable("Scrat", "/usr/bin/scrat --tray"); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "autostart", "scrat.desktop"))
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	for _, want := range []string{
		"Type=Application",
		"Name=Scrat",
		"Exec=/usr/bin/scrat --tray",
		"Terminal=false",
		"Categories=Utility;",
		"X-GNOME-Autostart-enabled=true",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("desktop entry missing %q:\n%s", want, content)
		}
	}
}

func TestDesktopEntry_EnableOverwrites(t *testing.T) {
	dir := t.TempDir()
	b := newDesktopEntryBackend(Options{AutostartDir: dir}, zap.NewNop())

	if err := b.Enable("Scrat", "/usr/bin/scrat --tray"); err != nil {
		t.Fatal(err)
	}
	if err := b.Enable("Scrat", "/opt/scrat/scrat --minimized"); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d files in autostart dir, want exactly 1", len(entries))
	}
	data, err := os.ReadFile(filepath.Join(dir, "scrat.desktop"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Exec=/opt/scrat/scrat --minimized") {
		t.Errorf("entry not updated to new command:\n%s", data)
	}
}

func TestDesktopEntry_DisableAbsentIsSuccess(t *testing.T) {
	b := newDesktopEntryBackend(Options{AutostartDir: t.TempDir()}, zap.NewNop())
	if err := b.Disable("Scrat"); err != nil {
		t.Errorf("Disable on absent entry = %v, want nil", err)
	}
}

func TestDesktopEntry_Lifecycle(t *testing.T) {
	b := newDesktopEntryBackend(Options{AutostartDir: t.TempDir()}, zap.NewNop())

	if on, _ := b.Enabled("Scrat"); on {
		t.Error("Enabled before Enable = true, want false")
	}
	if err := b.Enable("Scrat", "/usr/bin/scrat"); err != nil {
		t.Fatal(err)
	}
	if on, err := b.Enabled("Scrat"); err != nil || !on {
		t.Errorf("Enabled after Enable = %v, %v, want true", on, err)
	}
	if err := b.Disable("Scrat"); err != nil {
		t.Fatal(err)
	}
	if on, _ := b.Enabled("Scrat"); on {
		t.Error("Enabled after Disable = true, want false")
	}
}

func TestDesktopEntry_IconResolution(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "scrat.png")
	if err := os.WriteFile(existing, []byte("png"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		candidates []string
		want       string
	}{
		{"first existing wins", []string{filepath.Join(dir, "missing.png"), existing}, "Icon=" + existing},
		{"fallback to bare name", []string{filepath.Join(dir, "missing.png")}, "Icon=scrat"},
		{"no candidates", nil, "Icon=scrat"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entryDir := t.TempDir()
			b := newDesktopEntryBackend(Options{AutostartDir: entryDir, IconCandidates: tt.candidates}, zap.NewNop())
			if err := b.Enable("Scrat", "/usr/bin/scrat"); err != nil {
				t.Fatal(err)
			}
			data, err := os.ReadFile(filepath.Join(entryDir, "scrat.desktop"))
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(data), tt.want+"\n") {
				t.Errorf("desktop entry missing %q:\n%s", tt.want, data)
			}
		})
	}
}
