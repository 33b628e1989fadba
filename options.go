package timecast

import (
	"errors"
	"log/slog"

	"github.com/jpalmerr/timecast/display"
)

// tcConfig holds mutable state during Timecast construction.
type tcConfig struct {
	settings Settings
	host     display.Host
	logger   *slog.Logger
}

// Option configures a [Timecast] instance during construction.
//
// Option implements the functional options pattern. Options return an
// error if validation fails. Built-in options: [WithSettings], [WithHost],
// [WithLogger].
type Option func(*tcConfig) error

// WithSettings replaces the default [Settings].
//
// The settings are validated by [New]; pass a value derived from
// [DefaultSettings] to keep unspecified fields sensible.
func WithSettings(s Settings) Option {
	return func(cfg *tcConfig) error {
		cfg.settings = s
		return nil
	}
}

// WithHost sets the render host that owns the display target.
//
// A host is required; [New] fails without one. For terminal use see the
// CLI, for embedding implement [display.Host] over your rendering
// environment.
func WithHost(h display.Host) Option {
	return func(cfg *tcConfig) error {
		if h == nil {
			return errors.New("render host must not be nil")
		}
		cfg.host = h
		return nil
	}
}

// WithLogger sets the logger used by all components.
//
// When omitted, a default text logger is created; its level honors
// [Settings.Debug]. Request-level detail is logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *tcConfig) error {
		if logger == nil {
			return errors.New("logger must not be nil")
		}
		cfg.logger = logger
		return nil
	}
}
