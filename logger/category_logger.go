package logger

import (
	"github.com/kbukum/catlog/category"
	"github.com/kbukum/catlog/record"
)

// CategoryLogger logs on one category of its Logger. Handles are created
// once per category and shared, so holding one is free.
//
//	api := log.Category(category.API)
//	api.Debug("ping")
//	api.Error("timeout", logger.Err(err), logger.Fields("endpoint", "/x"))
type CategoryLogger struct {
	logger   *Logger
	category category.Category
}

// Category returns the category this handle logs on.
func (c *CategoryLogger) Category() category.Category { return c.category }

// Logger returns the dispatcher behind this handle.
func (c *CategoryLogger) Logger() *Logger { return c.logger }

// Enabled reports whether records of severity sev would be emitted.
func (c *CategoryLogger) Enabled(sev record.Severity) bool { return c.logger.Enabled(sev) }

// Debug logs a debug message. Several data arguments are kept as a slice.
func (c *CategoryLogger) Debug(msg string, data ...any) {
	c.logger.log(1, c.category, record.Debug, msg, nil, data)
}

// Info logs an info message.
func (c *CategoryLogger) Info(msg string, data ...any) {
	c.logger.log(1, c.category, record.Info, msg, nil, data)
}

// Warn logs a warning message.
func (c *CategoryLogger) Warn(msg string, data ...any) {
	c.logger.log(1, c.category, record.Warn, msg, nil, data)
}

// Error logs an error message. arg is either Err(e), which attaches e and
// leaves data as the payload, or Data(d), which makes d the payload.
func (c *CategoryLogger) Error(msg string, arg ErrorOrData, data ...any) {
	c.logger.log(1, c.category, record.Error, msg, arg, data)
}

// Log logs at an explicit severity with the same binding rules as Error.
// Severity None is dropped.
func (c *CategoryLogger) Log(sev record.Severity, msg string, arg ErrorOrData, data ...any) {
	if sev == record.None || !sev.Valid() {
		return
	}
	c.logger.log(1, c.category, sev, msg, arg, data)
}
