// Package logger builds the zerolog loggers used by the command line and carries them in
// contexts.
package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type contextKey struct{}

// New creates a console logger writing to w at the given level ("debug", "info", "warn", ...).
// An empty level means "warn"; an unknown one is an error.
func New(w io.Writer, level string) (zerolog.Logger, error) {
	lvl := zerolog.WarnLevel
	if level != "" {
		var err error
		if lvl, err = zerolog.ParseLevel(level); err != nil {
			return zerolog.Nop(), err
		}
	}
	output := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	return zerolog.New(output).Level(lvl).With().Timestamp().Logger(), nil
}

// Default is the logger used when none is configured: warnings and errors on stderr.
func Default() zerolog.Logger {
	log, _ := New(os.Stderr, "")
	return log
}

// WithContext adds the logger to the context.
func WithContext(ctx context.Context, log zerolog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, log)
}

// FromContext retrieves the logger from the context or returns Default.
func FromContext(ctx context.Context) zerolog.Logger {
	if log, ok := ctx.Value(contextKey{}).(zerolog.Logger); ok {
		return log
	}
	return Default()
}
