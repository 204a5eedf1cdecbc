package logger

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/catlog/category"
	"github.com/kbukum/catlog/format"
	"github.com/kbukum/catlog/record"
)

// Logger filters, renders and fans out log records. It is the dispatcher
// behind every CategoryLogger it hands out.
//
// All methods are safe for concurrent use. The severity gate is a single
// atomic load, so calls below the configured floor cost nothing beyond
// the call itself.
type Logger struct {
	minSeverity atomic.Int32
	console     atomic.Bool
	timestamps  atomic.Bool
	colors      atomic.Bool
	static      atomic.Pointer[map[string]any]

	outMu  sync.Mutex
	stdout io.Writer
	stderr io.Writer

	transports registry
	handles    map[category.Category]*CategoryLogger

	now   func() time.Time
	newID func() string
}

// Option configures a Logger at construction.
type Option func(*Logger)

// WithStdout sets the console stream for DEBUG and INFO records.
func WithStdout(w io.Writer) Option {
	return func(l *Logger) { l.stdout = w }
}

// WithStderr sets the console stream for WARN and ERROR records and for
// transport failure reports.
func WithStderr(w io.Writer) Option {
	return func(l *Logger) { l.stderr = w }
}

// WithClock sets the clock used to timestamp records.
func WithClock(now func() time.Time) Option {
	return func(l *Logger) { l.now = now }
}

// WithIDGenerator sets the function that assigns record IDs.
func WithIDGenerator(f func() string) Option {
	return func(l *Logger) { l.newID = f }
}

// WithTransports registers transports in the given order.
func WithTransports(ts ...Transport) Option {
	return func(l *Logger) {
		for _, t := range ts {
			l.transports.add(t)
		}
	}
}

// New creates a Logger from cfg.
func New(cfg Config, opts ...Option) (*Logger, error) {
	cfg = cfg.clone()
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l := &Logger{
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		now:     time.Now,
		newID:   uuid.NewString,
		handles: make(map[category.Category]*CategoryLogger, len(category.All())),
	}
	for _, c := range category.All() {
		l.handles[c] = &CategoryLogger{logger: l, category: c}
	}
	l.SetMinSeverity(cfg.Severity())
	l.console.Store(cfg.EnableConsole)
	l.timestamps.Store(cfg.EnableTimestamps)
	l.colors.Store(cfg.EnableColors)
	l.SetStaticContext(cfg.StaticContext)

	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// MustNew is like New but panics on an invalid configuration.
func MustNew(cfg Config, opts ...Option) *Logger {
	l, err := New(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return l
}

// Category returns the logger handle for c. It panics if c is not a
// declared category.
func (l *Logger) Category(c category.Category) *CategoryLogger {
	h, ok := l.handles[c]
	if !ok {
		panic(fmt.Sprintf("logger: unknown category %d", uint8(c)))
	}
	return h
}

// Enabled reports whether records of severity sev pass the current floor.
func (l *Logger) Enabled(sev record.Severity) bool {
	return int32(sev) >= l.minSeverity.Load()
}

// MinSeverity returns the current floor.
func (l *Logger) MinSeverity() record.Severity {
	return record.Severity(l.minSeverity.Load())
}

// SetMinSeverity replaces the floor for all subsequent calls. record.None
// suppresses everything.
func (l *Logger) SetMinSeverity(sev record.Severity) {
	if !sev.Valid() {
		return
	}
	l.minSeverity.Store(int32(sev))
}

// SetConsoleEnabled toggles the built-in console sink.
func (l *Logger) SetConsoleEnabled(enabled bool) { l.console.Store(enabled) }

// SetTimestamps toggles the timestamp prefix of console lines.
func (l *Logger) SetTimestamps(enabled bool) { l.timestamps.Store(enabled) }

// SetColors toggles ANSI colors on console lines.
func (l *Logger) SetColors(enabled bool) { l.colors.Store(enabled) }

// SetStaticContext replaces the key-value map merged into every record's
// data. The map is copied.
func (l *Logger) SetStaticContext(ctx map[string]any) {
	if len(ctx) == 0 {
		l.static.Store(nil)
		return
	}
	cp := maps.Clone(ctx)
	l.static.Store(&cp)
}

// AddTransport appends t to the fan-out list and returns a function that
// unregisters it. Registering the same transport twice is a no-op.
func (l *Logger) AddTransport(t Transport) (remove func()) {
	return l.transports.add(t)
}

// RemoveTransport unregisters t and reports whether it was registered.
// Transports of non-comparable types (TransportFunc) can only be removed
// through the function returned by AddTransport.
func (l *Logger) RemoveTransport(t Transport) bool {
	return l.transports.remove(t)
}

// Transports returns the registered transports in registration order.
func (l *Logger) Transports() []Transport {
	regs := l.transports.snapshot()
	out := make([]Transport, len(regs))
	for i, reg := range regs {
		out[i] = reg.t
	}
	return out
}

// Close closes every registered transport that implements io.Closer. The
// transports stay registered.
func (l *Logger) Close() error {
	var errs []error
	for _, reg := range l.transports.snapshot() {
		if c, ok := reg.t.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close %T: %w", reg.t, err))
			}
		}
	}
	return errors.Join(errs...)
}

// Debug logs on the generic info category.
func (l *Logger) Debug(msg string, data ...any) {
	l.log(1, category.Info, record.Debug, msg, nil, data)
}

// Info logs on the generic info category.
func (l *Logger) Info(msg string, data ...any) {
	l.log(1, category.Info, record.Info, msg, nil, data)
}

// Warn logs on the generic warning category.
func (l *Logger) Warn(msg string, data ...any) {
	l.log(1, category.Warning, record.Warn, msg, nil, data)
}

// Error logs on the generic error category. See ErrorOrData for how arg
// and data are bound.
func (l *Logger) Error(msg string, arg ErrorOrData, data ...any) {
	l.log(1, category.Error, record.Error, msg, arg, data)
}

// Success logs at INFO on the generic success category.
func (l *Logger) Success(msg string, data ...any) {
	l.log(1, category.Success, record.Info, msg, nil, data)
}

// log is the single entry point behind every public logging method. depth
// is the number of frames between log and the user's call site.
func (l *Logger) log(depth int, c category.Category, sev record.Severity, msg string, arg ErrorOrData, data []any) {
	if !l.Enabled(sev) {
		return
	}
	payload, err := bind(arg, data)
	if static := l.static.Load(); static != nil {
		payload = mergeStatic(*static, payload)
	}
	rec := record.New(record.Fields{
		ID:       l.newID(),
		Time:     l.now(),
		Category: c,
		Severity: sev,
		Message:  msg,
		Data:     payload,
		Error:    record.ErrorInfoFrom(err, depth+1),
	})
	l.dispatch(rec)
}

func (l *Logger) dispatch(rec record.Record) {
	if l.console.Load() {
		l.writeConsole(rec)
	}
	for _, reg := range l.transports.snapshot() {
		l.deliver(reg.t, rec)
	}
}

func (l *Logger) writeConsole(rec record.Record) {
	line := format.Console(rec, format.Options{
		Timestamps: l.timestamps.Load(),
		Colors:     l.colors.Load(),
	})
	w := l.stdout
	if rec.Severity() >= record.Warn {
		w = l.stderr
	}
	l.outMu.Lock()
	defer l.outMu.Unlock()
	_, _ = io.WriteString(w, line+"\n")
}

// deliver hands rec to one transport. Errors and panics stay inside.
func (l *Logger) deliver(t Transport, rec record.Record) {
	defer func() {
		if r := recover(); r != nil {
			l.reportFailure(t, fmt.Errorf("panic: %v", r))
		}
	}()
	if err := t.Write(rec); err != nil {
		l.reportFailure(t, err)
	}
}

func (l *Logger) reportFailure(t Transport, err error) {
	defer func() { _ = recover() }()
	l.outMu.Lock()
	defer l.outMu.Unlock()
	_, _ = fmt.Fprintf(l.stderr, "[catlog] transport %T failed: %v\n", t, err)
}
