// Package config provides YAML configuration parsing for timecast.
//
// This package enables running timecast as a standalone binary with a
// configuration file, as an alternative to the programmatic SDK approach.
//
// Example configuration:
//
//	server_host: 127.0.0.1
//	server_port: 8080
//	target_name: TimecodeDisplay
//	time_mode: 24 Hour
//	show_frame: true
//	fps: 30
//	keep_updated: true
package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/jpalmerr/timecast"
)

// Config is the root configuration structure for timecast.
//
// It maps directly to the YAML configuration file structure. Use [Load] or
// [Parse] to create a Config from YAML; unset fields take the defaults
// from [timecast.DefaultSettings].
type Config struct {
	// ServerHost is the timecode server's hostname or IP.
	// Supports environment variable substitution: ${VAR} or ${VAR:-default}
	ServerHost string `yaml:"server_host"`

	// ServerPort is the timecode server's TCP port (1-65535).
	ServerPort int `yaml:"server_port"`

	// TargetName is the display target to render into.
	TargetName string `yaml:"target_name"`

	// TimeMode selects the server-side time format:
	// "24 Hour", "12 Hour", or "12 Hour + AM/PM".
	TimeMode string `yaml:"time_mode"`

	// ShowFrame appends a frame counter to the timecode.
	ShowFrame bool `yaml:"show_frame"`

	// FPS is the frame rate for the frame counter (1-240).
	FPS int `yaml:"fps"`

	// ShowDate prepends the date.
	ShowDate bool `yaml:"show_date"`

	// ShowUTC formats the time in UTC.
	ShowUTC bool `yaml:"show_utc"`

	// PreText and PostText wrap the formatted timecode.
	PreText  string `yaml:"pre_text"`
	PostText string `yaml:"post_text"`

	// KeepUpdated pushes the formatting settings to the server,
	// retrying until acknowledged.
	KeepUpdated bool `yaml:"keep_updated"`

	// Debug enables verbose request/outcome logging.
	Debug bool `yaml:"debug"`
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with
// environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML configuration file.
//
// Environment variables in the file are expanded before validation.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Environment variables are expanded in ServerHost. Unset fields take
// their defaults from [timecast.DefaultSettings], and the resulting
// settings are validated.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	defaults := timecast.DefaultSettings()
	if cfg.ServerHost == "" {
		cfg.ServerHost = defaults.ServerHost
	}
	if cfg.ServerPort == 0 {
		cfg.ServerPort = defaults.ServerPort
	}
	if cfg.TargetName == "" {
		cfg.TargetName = defaults.TargetName
	}
	if cfg.TimeMode == "" {
		cfg.TimeMode = defaults.TimeMode
	}
	if cfg.FPS == 0 {
		cfg.FPS = defaults.FPS
	}

	expanded, err := expandEnvVars(cfg.ServerHost)
	if err != nil {
		return nil, fmt.Errorf("server_host: %w", err)
	}
	cfg.ServerHost = expanded

	if err := cfg.Settings().Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Settings converts the parsed configuration into SDK settings.
func (c *Config) Settings() timecast.Settings {
	return timecast.Settings{
		ServerHost:  c.ServerHost,
		ServerPort:  c.ServerPort,
		TargetName:  c.TargetName,
		TimeMode:    c.TimeMode,
		ShowFrame:   c.ShowFrame,
		FPS:         c.FPS,
		ShowDate:    c.ShowDate,
		ShowUTC:     c.ShowUTC,
		PreText:     c.PreText,
		PostText:    c.PostText,
		KeepUpdated: c.KeepUpdated,
		Debug:       c.Debug,
	}
}
