package timeserver

import (
	"fmt"
	"sync"
	"time"
)

// fallbackFPS is used when a client pushes a non-positive frame rate.
const fallbackFPS = 30

// Config is the formatting configuration pushed by clients via POST /config.
type Config struct {
	// SourceName is the client's display target name, kept for logging
	// only; it does not affect formatting.
	SourceName string `json:"source_name"`

	// TimeMode is "24 Hour", "12 Hour", or "12 Hour + AM/PM". Unknown
	// values fall back to 24-hour format.
	TimeMode string `json:"time_mode"`

	// ShowFrame appends a :FF frame counter derived from the fractional
	// second.
	ShowFrame bool `json:"show_frame"`

	// ShowDate prepends YYYY-MM-DD.
	ShowDate bool `json:"show_date"`

	// ShowUTC formats in UTC instead of local time.
	ShowUTC bool `json:"show_utc"`

	// PreText and PostText wrap the formatted timecode.
	PreText  string `json:"pre_text"`
	PostText string `json:"post_text"`

	// FPS is the frame rate for the frame counter.
	FPS int `json:"fps"`
}

// TimeProvider supplies the current time. Swappable for NTP-disciplined
// time (see [NewNTPProvider]) and for tests.
type TimeProvider func() time.Time

// Service formats the current time into a display string according to the
// client-pushed [Config].
//
// Service is safe for concurrent use by HTTP handlers.
type Service struct {
	mu     sync.Mutex
	config Config
	now    TimeProvider
}

// NewService creates a [Service] with 24-hour formatting and the given
// default frame rate.
func NewService(defaultFPS int) *Service {
	if defaultFPS <= 0 {
		defaultFPS = fallbackFPS
	}
	return &Service{
		config: Config{
			TimeMode: "24 Hour",
			FPS:      defaultFPS,
		},
		now: time.Now,
	}
}

// SetTimeProvider replaces the time source.
func (s *Service) SetTimeProvider(tp TimeProvider) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = tp
}

// UpdateConfig replaces the formatting configuration wholesale. A
// non-positive FPS falls back to 30.
func (s *Service) UpdateConfig(cfg Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cfg.FPS <= 0 {
		cfg.FPS = fallbackFPS
	}
	s.config = cfg
}

// Configured returns a copy of the current formatting configuration.
func (s *Service) Configured() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}

// DisplayText formats the current time for display.
//
// The frame counter is derived from the elapsed fraction of the current
// second, so it stays monotonic within a second regardless of when clients
// poll.
func (s *Service) DisplayText() string {
	s.mu.Lock()
	cfg := s.config
	now := s.now()
	s.mu.Unlock()

	if cfg.ShowUTC {
		now = now.UTC()
	}

	var frameStr string
	if cfg.ShowFrame {
		nanosPerFrame := int64(1e9) / int64(cfg.FPS)
		elapsed := now.Sub(now.Truncate(time.Second)).Nanoseconds()
		frame := int(elapsed/nanosPerFrame) % cfg.FPS
		frameStr = fmt.Sprintf(":%02d", frame)
	}

	var timeFormat string
	switch cfg.TimeMode {
	case "12 Hour", "12 Hour + AM/PM":
		timeFormat = "03:04:05"
	default:
		timeFormat = "15:04:05"
	}

	var dateStr string
	if cfg.ShowDate {
		dateStr = now.Format("2006-01-02 ")
	}

	var ampmStr string
	if cfg.TimeMode == "12 Hour + AM/PM" {
		ampmStr = " " + now.Format("PM")
	}

	return cfg.PreText + dateStr + now.Format(timeFormat) + frameStr + ampmStr + cfg.PostText
}
