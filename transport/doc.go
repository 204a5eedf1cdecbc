// Package transport provides ready-made log sinks and wrappers.
//
// Every type here has a Write(record.Record) error method and so satisfies
// logger.Transport without importing the logger package:
//
//	log := logger.MustNew(logger.DefaultConfig())
//	file, _ := os.OpenFile("app.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
//	log.AddTransport(transport.NewAsync(transport.NewWriter(file, format.KindJSON)))
//	defer log.Close()
//
// Wrappers compose: Async hands records to a goroutine, Retry re-attempts a
// failing sink with exponential backoff and Breaker stops calling a sink
// that keeps failing.
package transport
