// Package logging configures the zerolog logger used for verbose output.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is a wrapper around zerolog.Logger
type Logger struct {
	zerolog.Logger
}

// Options contains options for creating a logger
type Options struct {
	// Verbosity is the number of -v flags: 0 logs warnings, 1 info, 2+ debug.
	Verbosity int

	// Format is "pretty" (default) or "json".
	Format string

	// Output defaults to os.Stderr.
	Output io.Writer

	// NoColor disables colors in the pretty format.
	NoColor bool
}

// New creates a new logger with the given options
func New(opts Options) *Logger {
	var output io.Writer = os.Stderr
	if opts.Output != nil {
		output = opts.Output
	}

	if opts.Format != "json" {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.TimeOnly,
			NoColor:    opts.NoColor,
		}
	}

	logger := zerolog.New(output).
		Level(LevelForVerbosity(opts.Verbosity)).
		With().
		Timestamp().
		Logger()

	return &Logger{Logger: logger}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// LevelForVerbosity maps the -v count to a log level.
func LevelForVerbosity(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	default:
		return zerolog.DebugLevel
	}
}

// WithComponent returns a logger with a component field
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger: l.Logger.With().Str("component", component).Logger(),
	}
}
