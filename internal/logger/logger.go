// Package logger wraps zerolog behind the small surface the rest of the
// tool needs. Diagnostics go to stderr so build output on stdout stays
// machine-consumable.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options describes logger configuration supplied at creation time.
type Options struct {
	// Level is a zerolog level name ("debug", "info", ...). Empty means
	// info.
	Level string
	// HumanReadable switches from JSON lines to the console format.
	HumanReadable bool
	// Writer overrides the destination. Nil means stderr.
	Writer io.Writer
}

// Logger wraps zerolog with the conventions used across the tool.
type Logger struct {
	base zerolog.Logger
}

// New creates a configured Logger.
func New(opts Options) (*Logger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}

	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, err
		}
		level = parsed
	}

	var output io.Writer = writer
	if opts.HumanReadable {
		console := zerolog.NewConsoleWriter()
		console.Out = writer
		console.TimeFormat = time.RFC3339
		output = console
	}

	base := zerolog.New(output).Level(level).With().Timestamp().Logger()
	return &Logger{base: base}, nil
}

// Nop returns a logger that discards everything. Useful as a default in
// components whose callers may not care about diagnostics.
func Nop() *Logger {
	return &Logger{base: zerolog.Nop()}
}

// WithNode returns a derived logger that stamps every entry with the node
// it concerns.
func (l *Logger) WithNode(id int, title string) *Logger {
	if l == nil {
		return nil
	}
	derived := Logger{base: l.base.With().Int("node_id", id).Str("node", title).Logger()}
	return &derived
}

// WithField returns a derived logger that always writes the given field.
func (l *Logger) WithField(key string, value any) *Logger {
	if l == nil {
		return nil
	}
	derived := Logger{base: l.base.With().Interface(key, value).Logger()}
	return &derived
}

// Debug writes a debug-level entry if enabled.
func (l *Logger) Debug(msg string) {
	if l == nil {
		return
	}
	l.base.Debug().Msg(msg)
}

// Debugf writes a formatted debug-level entry if enabled.
func (l *Logger) Debugf(format string, args ...any) {
	if l == nil {
		return
	}
	l.base.Debug().Msgf(format, args...)
}

// Info writes an informational entry.
func (l *Logger) Info(msg string) {
	if l == nil {
		return
	}
	l.base.Info().Msg(msg)
}

// Infof writes a formatted informational entry.
func (l *Logger) Infof(format string, args ...any) {
	if l == nil {
		return
	}
	l.base.Info().Msgf(format, args...)
}

// Warn writes a warning entry.
func (l *Logger) Warn(msg string) {
	if l == nil {
		return
	}
	l.base.Warn().Msg(msg)
}

// Error writes an error entry carrying err as context.
func (l *Logger) Error(err error, msg string) {
	if l == nil {
		return
	}
	event := l.base.Error()
	if err != nil {
		event = event.Err(err)
	}
	event.Msg(msg)
}

// Levels lists the accepted level names for flag help text.
func Levels() []string {
	return []string{"trace", "debug", "info", "warn", "error", "fatal", "panic"}
}
