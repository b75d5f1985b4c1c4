package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Environment variables read by FromEnv.
const (
	EnvLevel  = "HTTPMOCK_LOG_LEVEL"
	EnvFormat = "HTTPMOCK_LOG_FORMAT"
)

// Level is a slog level. The engine logs installs at info, matches at debug
// and unmatched requests at warn.
type Level = slog.Level

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Format selects the slog handler.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Config describes an engine logger.
type Config struct {
	Level  Level
	Format Format
	// Output defaults to os.Stderr.
	Output io.Writer
}

// New builds a logger from cfg.
func New(cfg Config) *slog.Logger {
	w := cfg.Output
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}
	if cfg.Format == FormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// FromEnv builds a logger writing to w from HTTPMOCK_LOG_LEVEL and
// HTTPMOCK_LOG_FORMAT. With neither variable set it returns Nop.
func FromEnv(w io.Writer) *slog.Logger {
	level, hasLevel := os.LookupEnv(EnvLevel)
	format, hasFormat := os.LookupEnv(EnvFormat)
	if !hasLevel && !hasFormat {
		return Nop()
	}
	return New(Config{Level: ParseLevel(level), Format: ParseFormat(format), Output: w})
}

// Nop is the engine's default logger. It drops every record.
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps "debug", "info", "warn"/"warning" and "error", in any case,
// to a Level. Anything else is info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	}
	return LevelInfo
}

// ParseFormat returns FormatJSON for "json" in any case and FormatText otherwise.
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), string(FormatJSON)) {
		return FormatJSON
	}
	return FormatText
}
