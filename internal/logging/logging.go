// Package logging implements a small structured logger for the analyser and
// registry, modeled on go.abhg.dev/log/silog: a thin wrapper around log/slog
// adding printf-style methods and a Nop logger for tests, grounded on
// git-spice's internal mirror of that package (internal/silog/log.go in the
// retrieved abhinav-git-spice example).
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Level is a logging level, ordered the same way log/slog orders them.
type Level = slog.Level

// Supported levels.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Logger provides structured and printf-style logging for the command
// manager and the analyser.
type Logger struct {
	sl  *slog.Logger
	lvl *slog.LevelVar
}

// Options configures a new Logger.
type Options struct {
	// Level is the minimum level that will be logged. Defaults to LevelInfo.
	Level Level
	// Writer receives formatted log lines. Defaults to os.Stderr.
	Writer io.Writer
}

// New builds a Logger writing text-formatted records to opts.Writer.
func New(opts Options) *Logger {
	if opts.Writer == nil {
		opts.Writer = os.Stderr
	}
	lvl := &slog.LevelVar{}
	lvl.Set(opts.Level)
	handler := slog.NewTextHandler(opts.Writer, &slog.HandlerOptions{Level: lvl})
	return &Logger{sl: slog.New(handler), lvl: lvl}
}

// Nop returns a logger that discards everything, the default for components
// that are not given an explicit Logger.
func Nop() *Logger {
	lvl := &slog.LevelVar{}
	lvl.Set(LevelError + 1)
	return &Logger{sl: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: lvl})), lvl: lvl}
}

// SetLevel adjusts the minimum level logged from now on.
func (l *Logger) SetLevel(lvl Level) {
	l.lvl.Set(lvl)
}

// Debug logs a structured debug-level record.
func (l *Logger) Debug(msg string, args ...any) { l.sl.Debug(msg, args...) }

// Info logs a structured info-level record.
func (l *Logger) Info(msg string, args ...any) { l.sl.Info(msg, args...) }

// Warn logs a structured warn-level record.
func (l *Logger) Warn(msg string, args ...any) { l.sl.Warn(msg, args...) }

// Error logs a structured error-level record.
func (l *Logger) Error(msg string, args ...any) { l.sl.Error(msg, args...) }

// Debugf logs a printf-style debug-level record.
func (l *Logger) Debugf(format string, args ...any) { l.sl.Debug(fmt.Sprintf(format, args...)) }

// Infof logs a printf-style info-level record.
func (l *Logger) Infof(format string, args ...any) { l.sl.Info(fmt.Sprintf(format, args...)) }

// Warnf logs a printf-style warn-level record.
func (l *Logger) Warnf(format string, args ...any) { l.sl.Warn(fmt.Sprintf(format, args...)) }

// Errorf logs a printf-style error-level record.
func (l *Logger) Errorf(format string, args ...any) { l.sl.Error(fmt.Sprintf(format, args...)) }

// With returns a child logger with the given structured fields attached to
// every subsequent record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{sl: l.sl.With(args...), lvl: l.lvl}
}

// Enabled reports whether lvl would currently be logged; useful to skip
// building an expensive message.
func (l *Logger) Enabled(lvl Level) bool {
	return l.sl.Enabled(context.Background(), lvl)
}
