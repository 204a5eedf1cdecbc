package transport

import "github.com/kbukum/catlog/record"

// Func adapts a plain function to a transport. Func values are not
// comparable, so keep the handle returned by AddTransport to remove one.
type Func func(rec record.Record) error

// Write calls f(rec).
func (f Func) Write(rec record.Record) error { return f(rec) }
