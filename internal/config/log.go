package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// LogConfig controls structured logging.
type LogConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	// Default: "info"
	Level string `mapstructure:"level"`

	// Format is "text" or "json".
	// Default: "text"
	Format string `mapstructure:"format"`
}

func (c LogConfig) level() (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(c.Level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Level)
}

func (c LogConfig) format() (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(c.Format)); f {
	case "", "text":
		return "text", nil
	case "json":
		return "json", nil
	}
	return "", fmt.Errorf("log.format %q is not one of text, json", c.Format)
}

// NewLogger builds a logger writing to w. Invalid settings fall back to
// info level text output; [Config.Validate] reports them.
func (c LogConfig) NewLogger(w io.Writer) *slog.Logger {
	level, err := c.level()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if f, _ := c.format(); f == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
