package transport

import (
	"io"
	"sync"

	"github.com/kbukum/catlog/format"
	"github.com/kbukum/catlog/record"
)

// Writer renders records with one of the format renderers and writes one
// line per record to an io.Writer. Writes are serialized.
type Writer struct {
	mu   sync.Mutex
	w    io.Writer
	kind format.Kind
	opts format.Options
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithFormatOptions sets the console rendering options. They only matter
// for format.KindConsole.
func WithFormatOptions(opts format.Options) WriterOption {
	return func(w *Writer) { w.opts = opts }
}

// NewWriter creates a Writer that renders records as kind.
func NewWriter(w io.Writer, kind format.Kind, opts ...WriterOption) *Writer {
	tw := &Writer{w: w, kind: kind}
	for _, opt := range opts {
		opt(tw)
	}
	return tw
}

// Write renders rec and writes it followed by a newline.
func (w *Writer) Write(rec record.Record) error {
	line := format.Render(w.kind, rec, w.opts) + "\n"
	w.mu.Lock()
	defer w.mu.Unlock()
	_, err := io.WriteString(w.w, line)
	return err
}

// Close closes the underlying writer if it is an io.Closer.
func (w *Writer) Close() error {
	if c, ok := w.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
