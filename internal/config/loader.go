package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Config captures environment driven configuration values for the calendar
// tooling.
type Config struct {
	// Timezone is the IANA location used to anchor dates and slot times.
	Timezone *time.Location
	// StorePath is the iCalendar file the CLI round-trips state through.
	StorePath string
	// LogLevel is the minimum level emitted by the root logger.
	LogLevel slog.Level
	// LogFormat selects the root handler, "text" or "json".
	LogFormat string
	// DefaultReminderKind is applied when a reminder is added without one.
	DefaultReminderKind string
}

// Load parses configuration values from the current process environment.
//
// Optional fields fall back to sensible defaults; invalid values are
// collected and reported together.
func Load() (Config, error) {
	cfg := Config{
		Timezone:            time.UTC,
		StorePath:           "calendar.ics",
		LogLevel:            slog.LevelInfo,
		LogFormat:           "text",
		DefaultReminderKind: "email",
	}

	invalid := make([]string, 0, 2)

	if name := strings.TrimSpace(os.Getenv("CALENDAR_TIMEZONE")); name != "" {
		loc, err := time.LoadLocation(name)
		if err != nil {
			invalid = append(invalid, "CALENDAR_TIMEZONE")
		} else {
			cfg.Timezone = loc
		}
	}

	if path := strings.TrimSpace(os.Getenv("CALENDAR_FILE")); path != "" {
		cfg.StorePath = path
	}

	if level := strings.TrimSpace(os.Getenv("CALENDAR_LOG_LEVEL")); level != "" {
		switch strings.ToLower(level) {
		case "debug":
			cfg.LogLevel = slog.LevelDebug
		case "info":
			cfg.LogLevel = slog.LevelInfo
		case "warn":
			cfg.LogLevel = slog.LevelWarn
		case "error":
			cfg.LogLevel = slog.LevelError
		default:
			invalid = append(invalid, "CALENDAR_LOG_LEVEL")
		}
	}

	if format := strings.TrimSpace(os.Getenv("CALENDAR_LOG_FORMAT")); format != "" {
		switch strings.ToLower(format) {
		case "text", "json":
			cfg.LogFormat = strings.ToLower(format)
		default:
			invalid = append(invalid, "CALENDAR_LOG_FORMAT")
		}
	}

	if kind := strings.TrimSpace(os.Getenv("CALENDAR_DEFAULT_REMINDER_KIND")); kind != "" {
		switch strings.ToLower(kind) {
		case "email", "system":
			cfg.DefaultReminderKind = strings.ToLower(kind)
		default:
			invalid = append(invalid, "CALENDAR_DEFAULT_REMINDER_KIND")
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variable values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
