package transport

import (
	"io"

	"github.com/kbukum/catlog/record"
)

// Sink is what the wrappers in this package deliver to. It has the same
// method set as logger.Transport.
type Sink interface {
	Write(rec record.Record) error
}

func closeSink(s Sink) error {
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
