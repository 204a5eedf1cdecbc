package logger

import (
	"sync/atomic"

	"github.com/kbukum/catlog/category"
	"github.com/kbukum/catlog/record"
)

var defaultLogger atomic.Pointer[Logger]

// Default returns the process-wide Logger, creating it from DefaultConfig
// on first use. LOG_LEVEL and NO_COLOR are honored.
func Default() *Logger {
	if l := defaultLogger.Load(); l != nil {
		return l
	}
	l := MustNew(fromEnv())
	if defaultLogger.CompareAndSwap(nil, l) {
		return l
	}
	return defaultLogger.Load()
}

// SetDefault replaces the process-wide Logger. A nil l resets it so the
// next Default call builds a fresh one.
func SetDefault(l *Logger) { defaultLogger.Store(l) }

// For returns the default logger's handle for c.
func For(c category.Category) *CategoryLogger { return Default().Category(c) }

// Debug logs on the default logger's info category.
func Debug(msg string, data ...any) {
	Default().log(1, category.Info, record.Debug, msg, nil, data)
}

// Info logs on the default logger's info category.
func Info(msg string, data ...any) {
	Default().log(1, category.Info, record.Info, msg, nil, data)
}

// Warn logs on the default logger's warning category.
func Warn(msg string, data ...any) {
	Default().log(1, category.Warning, record.Warn, msg, nil, data)
}

// Error logs on the default logger's error category. See ErrorOrData for
// how arg and data are bound.
func Error(msg string, arg ErrorOrData, data ...any) {
	Default().log(1, category.Error, record.Error, msg, arg, data)
}

// Success logs at INFO on the default logger's success category.
func Success(msg string, data ...any) {
	Default().log(1, category.Success, record.Info, msg, nil, data)
}
