// Package logging builds zerolog loggers and carries them through contexts.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// LogFileName is the active log file inside the log directory.
const LogFileName = "slickdir.log"

// Config holds logging configuration
type Config struct {
	Level      zerolog.Level
	Format     string // "json" or "console"
	TimeFormat string
}

// FileConfig controls the optional rotating file sink.
type FileConfig struct {
	Enabled       bool
	LogDir        string
	MaxSizeMB     int
	MaxBackups    int
	MaxAgeDays    int
	Compress      bool
	WriteToStderr bool
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Level:      zerolog.InfoLevel,
		Format:     "console",
		TimeFormat: time.RFC3339,
	}
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

func consoleOrJSON(out io.Writer, cfg Config) io.Writer {
	if cfg.Format == "console" {
		return zerolog.ConsoleWriter{Out: out, TimeFormat: cfg.TimeFormat}
	}
	return out
}

// New creates a new zerolog logger writing to stderr.
func New(cfg Config) zerolog.Logger {
	return zerolog.New(consoleOrJSON(os.Stderr, cfg)).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()
}

// NewFromConfigValues creates a stderr logger from raw level and format strings.
func NewFromConfigValues(level, format string) zerolog.Logger {
	cfg := DefaultConfig()
	cfg.Level = ParseLevel(level)
	if format == "json" || format == "console" {
		cfg.Format = format
	}
	return New(cfg)
}

// NewFromEnv creates a logger based on environment variables
// SLICKDIR_LOG_LEVEL: trace, debug, info, warn, error (default: info)
// SLICKDIR_LOG_FORMAT: json, console (default: console)
func NewFromEnv() zerolog.Logger {
	level := os.Getenv("SLICKDIR_LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	return NewFromConfigValues(level, os.Getenv("SLICKDIR_LOG_FORMAT"))
}

// NewWithFile creates a logger that writes to a rotating file and optionally
// to stderr. The file sink always uses JSON so it stays machine-readable.
// The returned cleanup closes the file.
func NewWithFile(cfg Config, fileCfg FileConfig) (zerolog.Logger, func(), error) {
	var writers []io.Writer
	cleanup := func() {}

	if fileCfg.WriteToStderr || !fileCfg.Enabled || fileCfg.LogDir == "" {
		writers = append(writers, consoleOrJSON(os.Stderr, cfg))
	}

	var fileErr error
	if fileCfg.Enabled && fileCfg.LogDir != "" {
		rotator, err := NewLogRotator(fileCfg.LogDir, LogFileName, fileCfg.MaxSizeMB, fileCfg.MaxBackups, fileCfg.MaxAgeDays, fileCfg.Compress)
		if err != nil {
			fileErr = err
			if !fileCfg.WriteToStderr {
				writers = append(writers, consoleOrJSON(os.Stderr, cfg))
			}
		} else {
			writers = append(writers, rotator)
			cleanup = func() { _ = rotator.Close() }
		}
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()

	return logger, cleanup, fileErr
}
