package schedtask

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/nicolettas-muggelbude/Scrat-Backup-sub001/internal/platform"
)

func TestParseTrigger(t *testing.T) {
	tests := []struct {
		input   string
		want    Trigger
		wantErr bool
	}{
		{"startup", TriggerStartup, false},
		{"shutdown", TriggerShutdown, false},
		{"weekly", "", true},
		{"Startup", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseTrigger(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTrigger(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseTrigger(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestForPlatform_UnknownHasNoBackend(t *testing.T) {
	if b := forPlatform(platform.KindUnknown, "Scrat", &fakeRunner{}, zap.NewNop()); b != nil {
		t.Errorf("forPlatform(KindUnknown) = %T, want nil", b)
	}
}

func TestForPlatform_WindowsUsesScheduler(t *testing.T) {
	b := forPlatform(platform.KindWindows, "Scrat", &fakeRunner{}, zap.NewNop())
	if _, ok := b.(*schtasksBackend); !ok {
		t.Errorf("forPlatform(KindWindows) = %T, want *schtasksBackend", b)
	}
}

func TestForPlatform_DarwinSelectedButDeclines(t *testing.T) {
	b := forPlatform(platform.KindDarwin, "Scrat", &fakeRunner{}, zap.NewNop())
	if b == nil {
		t.Fatal("forPlatform(KindDarwin) = nil, want selected launchd backend")
	}
	if !b.Available() {
		t.Error("darwin backend Available() = false, want true")
	}

	ctx := context.Background()
	err := b.Register(ctx, "DailyBackup", TriggerStartup, "/usr/local/bin/scrat", nil)
	if !errors.Is(err, ErrNotImplemented) {
		t.Errorf("Register on darwin = %v, want ErrNotImplemented", err)
	}
	if err := b.Unregister(ctx, "DailyBackup"); !errors.Is(err, ErrNotImplemented) {
		t.Errorf("Unregister on darwin = %v, want ErrNotImplemented", err)
	}
}

func TestManager_FoldsOutcomesToBooleans(t *testing.T) {
	ctx := context.Background()

	// No backend at all: every operation reports failure, never panics.
	none := NewManager(platform.KindUnknown, "Scrat", &fakeRunner{}, zap.NewNop())
	if none.Register(ctx, "DailyBackup", TriggerStartup, "/usr/bin/app", nil) {
		t.Error("Register with no backend = true, want false")
	}
	if none.Unregister(ctx, "DailyBackup") {
		t.Error("Unregister with no backend = true, want false")
	}

	// Selected but declining backend (macOS).
	declined := NewManager(platform.KindDarwin, "Scrat", &fakeRunner{}, zap.NewNop())
	if declined.Register(ctx, "DailyBackup", TriggerStartup, "/usr/bin/app", nil) {
		t.Error("Register on darwin = true, want false")
	}

	// Working backend.
	working := NewManager(platform.KindWindows, "Scrat", &fakeRunner{}, zap.NewNop())
	if !working.Register(ctx, "DailyBackup", TriggerStartup, "scrat.exe", []string{"--run"}) {
		t.Error("Register on windows = false, want true")
	}
	if !working.Unregister(ctx, "DailyBackup") {
		t.Error("Unregister on windows = false, want true")
	}
}
