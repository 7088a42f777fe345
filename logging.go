package dialect

import "github.com/reeflective/dialect/internal/logging"

// Logger is the structured logger accepted by Manager/Analyser construction.
type Logger = logging.Logger

// LoggerOptions configures a new Logger.
type LoggerOptions = logging.Options

// NewLogger builds a Logger writing to opts.Writer at opts.Level.
func NewLogger(opts LoggerOptions) *Logger {
	return logging.New(opts)
}

// NopLogger discards everything - the default when no Logger is supplied.
func NopLogger() *Logger {
	return logging.Nop()
}
