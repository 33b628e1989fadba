package timecast

import (
	"errors"
	"fmt"
)

// Time display modes understood by the timecode server.
const (
	TimeMode24Hour     = "24 Hour"
	TimeMode12Hour     = "12 Hour"
	TimeMode12HourAMPM = "12 Hour + AM/PM"
)

// Settings is the immutable-per-update configuration record.
//
// Settings is a value type replaced wholesale on every update via
// [Timecast.ApplySettings]; individual fields are never mutated in place.
// Use [DefaultSettings] as the starting point and [Settings.Validate]
// before applying.
type Settings struct {
	// ServerHost is the timecode server's hostname or IP.
	ServerHost string

	// ServerPort is the timecode server's TCP port (1-65535).
	ServerPort int

	// TargetName is the name of the display target to render into.
	TargetName string

	// TimeMode selects the server-side time format; one of the TimeMode
	// constants.
	TimeMode string

	// ShowFrame asks the server to append a frame counter.
	ShowFrame bool

	// FPS is the frame rate for the frame counter (1-240).
	FPS int

	// ShowDate asks the server to prepend the date.
	ShowDate bool

	// ShowUTC asks the server to format in UTC.
	ShowUTC bool

	// PreText and PostText wrap the formatted timecode.
	PreText  string
	PostText string

	// KeepUpdated pushes these formatting settings to the server and
	// retries until the server acknowledges them.
	KeepUpdated bool

	// Debug enables verbose request/outcome logging on the default
	// logger. When a logger is supplied via WithLogger, its handler's
	// level decides instead.
	Debug bool
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		ServerHost: "127.0.0.1",
		ServerPort: 8080,
		TargetName: "TimecodeDisplay",
		TimeMode:   TimeMode24Hour,
		FPS:        30,
	}
}

// Validate checks the settings for values the scheduler cannot work with.
func (s Settings) Validate() error {
	if s.ServerHost == "" {
		return errors.New("server host is required")
	}
	if s.ServerPort < 1 || s.ServerPort > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", s.ServerPort)
	}
	if s.TargetName == "" {
		return errors.New("target name is required")
	}
	if s.FPS < 1 || s.FPS > 240 {
		return fmt.Errorf("fps must be between 1 and 240, got %d", s.FPS)
	}
	switch s.TimeMode {
	case TimeMode24Hour, TimeMode12Hour, TimeMode12HourAMPM:
	default:
		return fmt.Errorf("unknown time mode %q", s.TimeMode)
	}
	return nil
}

// ServerURL builds the server URL for an endpoint path such as "/timecode".
func (s Settings) ServerURL(path string) string {
	return fmt.Sprintf("http://%s:%d%s", s.ServerHost, s.ServerPort, path)
}
