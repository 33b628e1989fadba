package timeserver

import (
	"strings"
	"testing"
	"time"
)

// fixedTime is 2026-03-15 14:30:45.5 local time: the half-second puts the
// frame counter mid-second for frame tests.
func fixedTime() time.Time {
	return time.Date(2026, 3, 15, 14, 30, 45, 500_000_000, time.Local)
}

func newFixedService(cfg Config) *Service {
	s := NewService(30)
	s.UpdateConfig(cfg)
	s.SetTimeProvider(fixedTime)
	return s
}

// TestService_24HourDefault verifies the default formatting.
func TestService_24HourDefault(t *testing.T) {
	s := NewService(30)
	s.SetTimeProvider(fixedTime)

	if got := s.DisplayText(); got != "14:30:45" {
		t.Errorf("DisplayText = %q, want 14:30:45", got)
	}
}

// TestService_TimeModes covers each supported mode.
func TestService_TimeModes(t *testing.T) {
	cases := []struct {
		mode string
		want string
	}{
		{"24 Hour", "14:30:45"},
		{"12 Hour", "02:30:45"},
		{"12 Hour + AM/PM", "02:30:45 PM"},
		{"nonsense", "14:30:45"}, // unknown modes fall back to 24-hour
	}
	for _, tt := range cases {
		s := newFixedService(Config{TimeMode: tt.mode, FPS: 30})
		if got := s.DisplayText(); got != tt.want {
			t.Errorf("mode %q: DisplayText = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

// TestService_ShowDate verifies the date prefix.
func TestService_ShowDate(t *testing.T) {
	s := newFixedService(Config{TimeMode: "24 Hour", ShowDate: true, FPS: 30})
	if got := s.DisplayText(); got != "2026-03-15 14:30:45" {
		t.Errorf("DisplayText = %q", got)
	}
}

// TestService_ShowFrame verifies the frame counter: at exactly half a
// second into the second, the frame is fps/2.
func TestService_ShowFrame(t *testing.T) {
	s := newFixedService(Config{TimeMode: "24 Hour", ShowFrame: true, FPS: 30})
	if got := s.DisplayText(); got != "14:30:45:15" {
		t.Errorf("DisplayText = %q, want 14:30:45:15", got)
	}

	// frame counter must stay below fps
	s = newFixedService(Config{TimeMode: "24 Hour", ShowFrame: true, FPS: 24})
	got := s.DisplayText()
	if !strings.HasPrefix(got, "14:30:45:") {
		t.Fatalf("DisplayText = %q", got)
	}
	if got != "14:30:45:12" {
		t.Errorf("DisplayText = %q, want frame 12 at 0.5s of 24fps", got)
	}
}

// TestService_PrePostText verifies wrapping text.
func TestService_PrePostText(t *testing.T) {
	s := newFixedService(Config{TimeMode: "24 Hour", PreText: "TC ", PostText: " END", FPS: 30})
	if got := s.DisplayText(); got != "TC 14:30:45 END" {
		t.Errorf("DisplayText = %q", got)
	}
}

// TestService_ShowUTC verifies UTC conversion.
func TestService_ShowUTC(t *testing.T) {
	s := newFixedService(Config{TimeMode: "24 Hour", ShowUTC: true, FPS: 30})
	want := fixedTime().UTC().Format("15:04:05")
	if got := s.DisplayText(); got != want {
		t.Errorf("DisplayText = %q, want %q", got, want)
	}
}

// TestService_FPSFallback verifies that non-positive frame rates fall back
// to 30 instead of dividing by zero.
func TestService_FPSFallback(t *testing.T) {
	s := newFixedService(Config{TimeMode: "24 Hour", ShowFrame: true, FPS: -1})
	if got := s.Configured().FPS; got != 30 {
		t.Errorf("FPS = %d after non-positive update, want 30", got)
	}
	if got := s.DisplayText(); got != "14:30:45:15" {
		t.Errorf("DisplayText = %q", got)
	}

	if got := NewService(0).Configured().FPS; got != 30 {
		t.Errorf("NewService(0) FPS = %d, want 30", got)
	}
}
