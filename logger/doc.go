// Package logger is the catlog dispatcher: category-scoped, level-filtered
// logging with a console sink and pluggable transports.
//
// A Logger owns the configuration (minimum severity, console toggles,
// static context) and an ordered list of transports. Every accepted call
// builds one immutable record.Record, renders it on the console (stderr
// for WARN and ERROR, stdout otherwise) and hands the same record to each
// transport in registration order. Calls below the floor return before any
// work is done. Logging never fails the caller: transport errors and
// panics are reported on stderr and swallowed.
//
// # Configuration
//
//	min_level: "info"
//	enable_console: true
//	enable_timestamps: true
//	enable_colors: false
//	static_context:
//	  app: "checkout"
//
// # Usage
//
//	log, err := logger.New(cfg)
//	api := log.Category(category.API)
//	api.Info("request sent", logger.Fields("endpoint", "/orders"))
//	api.Error("request failed", logger.Err(err), logger.Fields("endpoint", "/orders"))
//	api.Error("bad payload", logger.Data(body))
//
// The package-level functions and For use a lazily created default
// Logger; SetDefault replaces it.
package logger
