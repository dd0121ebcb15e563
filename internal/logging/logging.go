// Package logging builds the leveled stderr logger.
package logging

import (
	"io"

	"github.com/charmbracelet/log"

	"ltodo/internal/config"
)

// Prefix is prepended to every log line.
const Prefix = "ltodo"

// New creates a logger writing to w configured from cfg.
// --debug forces debug level; --quiet raises the level to error.
func New(w io.Writer, cfg *config.Config) *log.Logger {
	level := ParseLevel(cfg.Log.Level)
	if cfg.Quiet {
		level = log.ErrorLevel
	}
	if cfg.Debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       ParseFormatter(cfg.Log.Format),
		ReportTimestamp: cfg.Debug,
		Prefix:          Prefix,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// ParseLevel parses a level name, defaulting to info.
func ParseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// ParseFormatter parses a formatter name, defaulting to text.
func ParseFormatter(format string) log.Formatter {
	switch format {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
