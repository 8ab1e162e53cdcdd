package platform

import (
	"runtime"
	"testing"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		input   string
		want    Kind
		wantErr bool
	}{
		{"windows", KindWindows, false},
		{"linux", KindLinux, false},
		{"darwin", KindDarwin, false},
		{"freebsd", KindUnknown, true},
		{"Linux", KindUnknown, true},
		{"", KindUnknown, true},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseKind(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindWindows, "windows"},
		{KindLinux, "linux"},
		{KindDarwin, "darwin"},
		{KindUnknown, "unknown"},
		{Kind(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestDetect_MatchesGOOS(t *testing.T) {
	got := Detect()
	switch runtime.GOOS {
	case "windows", "linux", "darwin":
		if got.String() != runtime.GOOS {
			t.Errorf("Detect() = %v, want %s", got, runtime.GOOS)
		}
	default:
		if got != KindUnknown {
			t.Errorf("Detect() = %v, want KindUnknown on %s", got, runtime.GOOS)
		}
	}
}
