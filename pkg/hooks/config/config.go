package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ErrInvalidSettings is wrapped by every validation failure.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings configures a hooks registry.
type Settings struct {
	// DefaultPriority is used when a registration does not pass WithPriority.
	DefaultPriority int

	// DefaultAcceptedArgs is used when a registration does not pass
	// WithAcceptedArgs. Must be >= 0.
	DefaultAcceptedArgs int

	// Metrics enables OpenTelemetry metrics.
	Metrics bool

	// Tracing enables OpenTelemetry tracing.
	Tracing bool

	// LogLevel is one of "", "debug", "info", "warn", "error".
	// Empty disables logging.
	LogLevel string

	// ShortcodePrefix namespaces shortcode tags inside the registry.
	ShortcodePrefix string
}

// Defaults returns the settings used when nothing is configured.
func Defaults() Settings {
	return Settings{
		DefaultPriority:     10,
		DefaultAcceptedArgs: 1,
		ShortcodePrefix:     "shortcode:",
	}
}

// Validate checks the settings for values the registry cannot use.
func (s Settings) Validate() error {
	if s.DefaultAcceptedArgs < 0 {
		return fmt.Errorf("%w: default_accepted_args must be >= 0, got %d", ErrInvalidSettings, s.DefaultAcceptedArgs)
	}
	if s.ShortcodePrefix == "" {
		return fmt.Errorf("%w: shortcode_prefix cannot be empty", ErrInvalidSettings)
	}
	if _, _, err := parseLevel(s.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the slog level for LogLevel. The bool is false when logging
// is disabled or the level is not recognised.
func (s Settings) Level() (slog.Level, bool) {
	level, enabled, err := parseLevel(s.LogLevel)
	if err != nil {
		return 0, false
	}
	return level, enabled
}

func parseLevel(name string) (slog.Level, bool, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return 0, false, nil
	case "debug":
		return slog.LevelDebug, true, nil
	case "info":
		return slog.LevelInfo, true, nil
	case "warn", "warning":
		return slog.LevelWarn, true, nil
	case "error":
		return slog.LevelError, true, nil
	default:
		return 0, false, fmt.Errorf("%w: unknown log_level %q", ErrInvalidSettings, name)
	}
}

// FromMap builds Settings from decoded YAML or JSON data.
// Keys absent from m keep their Defaults() value.
func FromMap(m map[string]any) (Settings, error) {
	s := Defaults()
	v := values(m)

	var err error
	if s.DefaultPriority, err = v.intValue("default_priority", s.DefaultPriority); err != nil {
		return Settings{}, err
	}
	if s.DefaultAcceptedArgs, err = v.intValue("default_accepted_args", s.DefaultAcceptedArgs); err != nil {
		return Settings{}, err
	}
	if s.Metrics, err = v.boolValue("metrics", s.Metrics); err != nil {
		return Settings{}, err
	}
	if s.Tracing, err = v.boolValue("tracing", s.Tracing); err != nil {
		return Settings{}, err
	}
	if s.LogLevel, err = v.stringValue("log_level", s.LogLevel); err != nil {
		return Settings{}, err
	}
	if s.ShortcodePrefix, err = v.stringValue("shortcode_prefix", s.ShortcodePrefix); err != nil {
		return Settings{}, err
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// values extracts typed settings from a decoded document.
type values map[string]any

// intValue accepts int, int64, and float64 without a fractional part.
func (v values) intValue(key string, defaultVal int) (int, error) {
	raw, ok := v[key]
	if !ok {
		return defaultVal, nil
	}
	switch val := raw.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		// JSON numbers decode as float64
		if val == float64(int(val)) {
			return int(val), nil
		}
	}
	return 0, fmt.Errorf("%w: %s must be an integer, got %v", ErrInvalidSettings, key, raw)
}

func (v values) boolValue(key string, defaultVal bool) (bool, error) {
	raw, ok := v[key]
	if !ok {
		return defaultVal, nil
	}
	if b, ok := raw.(bool); ok {
		return b, nil
	}
	return false, fmt.Errorf("%w: %s must be a boolean, got %v", ErrInvalidSettings, key, raw)
}

func (v values) stringValue(key, defaultVal string) (string, error) {
	raw, ok := v[key]
	if !ok {
		return defaultVal, nil
	}
	if s, ok := raw.(string); ok {
		return s, nil
	}
	return "", fmt.Errorf("%w: %s must be a string, got %v", ErrInvalidSettings, key, raw)
}
