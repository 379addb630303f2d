// Package logging provides the structured zerolog setup shared by the CLI
// and the calculation engine. Loggers travel through context.Context so that
// library code never touches a global logger directly.
package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config controls logger construction.
type Config struct {
	// Level is a zerolog level name ("trace".."panic"). Invalid values fall
	// back to "info".
	Level string
	// Format is "console" or "json". Invalid values fall back to "console".
	Format string
	// Output selects the destination: "stderr", "stdout", or "file".
	Output string
	// File is the log file path, used when Output is "file".
	File string
	// Caller adds the caller field to every event.
	Caller bool
}

// Output destination names accepted in Config.Output.
const (
	OutputStderr = "stderr"
	OutputStdout = "stdout"
	OutputFile   = "file"
)

// Format names accepted in Config.Format.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// New builds a zerolog.Logger from cfg. When file output is requested and the
// file cannot be opened, New falls back to stderr so log events are never
// dropped silently; the returned cleanup func closes the file handle if one
// was opened and is always safe to call.
func New(cfg Config) (zerolog.Logger, func(), error) {
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	var w io.Writer
	cleanup := func() {}

	switch cfg.Output {
	case OutputFile:
		f, openErr := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if openErr != nil {
			w = os.Stderr
		} else {
			w = f
			cleanup = func() { _ = f.Close() }
		}
	case OutputStdout:
		w = os.Stdout
	default:
		w = os.Stderr
	}

	if cfg.Format != FormatJSON {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	logCtx := zerolog.New(w).Level(lvl).With().Timestamp()
	if cfg.Caller {
		logCtx = logCtx.Caller()
	}

	return logCtx.Logger(), cleanup, nil
}

// ComponentLogger returns a child logger tagged with the component name.
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// FromContext returns the logger stored in ctx, or a disabled logger when
// none is present. Library packages use this instead of a package global so
// tests run silent by default.
func FromContext(ctx context.Context) zerolog.Logger {
	if logger := zerolog.Ctx(ctx); logger != nil && logger.GetLevel() != zerolog.Disabled {
		return *logger
	}
	return zerolog.Nop()
}

// WithContext stores logger in ctx for retrieval via FromContext.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}
