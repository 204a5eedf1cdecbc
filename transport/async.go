package transport

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kbukum/catlog/record"
)

const (
	defaultBufferSize   = 1024
	defaultDrainTimeout = 5 * time.Second
)

// ErrClosed is returned by Write after Close.
var ErrClosed = errors.New("transport: closed")

// AsyncOption configures an Async wrapper.
type AsyncOption func(*Async)

// WithBufferSize sets the channel buffer capacity. Default: 1024.
func WithBufferSize(n int) AsyncOption {
	return func(a *Async) { a.bufSize = n }
}

// WithOnError sets the callback invoked when the inner sink fails. The
// default prints the error to stderr.
func WithOnError(f func(error)) AsyncOption {
	return func(a *Async) { a.errFunc = f }
}

// WithDropOnFull makes Write drop the record instead of blocking when the
// buffer is full. Dropped records are counted.
func WithDropOnFull() AsyncOption {
	return func(a *Async) { a.dropOnFull = true }
}

// WithDrainTimeout bounds how long Close waits for buffered records.
// Default: 5s.
func WithDrainTimeout(d time.Duration) AsyncOption {
	return func(a *Async) { a.drainTimeout = d }
}

// Async moves delivery off the logging goroutine. Write puts the record on
// a buffered channel and a background goroutine drains it into the inner
// sink. Inner errors go to the error callback, not to the caller.
type Async struct {
	inner        Sink
	ch           chan record.Record
	done         chan struct{}
	quit         chan struct{}
	errFunc      func(error)
	bufSize      int
	dropOnFull   bool
	drainTimeout time.Duration
	dropped      atomic.Uint64

	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
	closeErr  error
}

// NewAsync wraps inner. The drain goroutine starts immediately.
func NewAsync(inner Sink, opts ...AsyncOption) *Async {
	a := &Async{
		inner:        inner,
		bufSize:      defaultBufferSize,
		drainTimeout: defaultDrainTimeout,
		errFunc: func(err error) {
			fmt.Fprintf(os.Stderr, "[catlog] async transport: %v\n", err)
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.bufSize < 0 {
		a.bufSize = 0
	}
	a.ch = make(chan record.Record, a.bufSize)
	a.done = make(chan struct{})
	a.quit = make(chan struct{})
	go a.drain()
	return a
}

// Write queues rec. It blocks while the buffer is full unless
// WithDropOnFull was given; a blocked Write returns ErrClosed once Close
// starts.
func (a *Async) Write(rec record.Record) error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return ErrClosed
	}
	if a.dropOnFull {
		select {
		case a.ch <- rec:
		default:
			a.dropped.Add(1)
		}
		return nil
	}
	select {
	case a.ch <- rec:
		return nil
	case <-a.quit:
		return ErrClosed
	}
}

// Dropped returns the number of records lost to a full buffer.
func (a *Async) Dropped() uint64 { return a.dropped.Load() }

// Close stops accepting records, waits up to the drain timeout for the
// buffer to empty and then closes the inner sink. If the timeout expires
// the inner sink is closed later, once its pending Write returns.
func (a *Async) Close() error {
	a.closeOnce.Do(func() {
		close(a.quit)
		a.mu.Lock()
		a.closed = true
		close(a.ch)
		a.mu.Unlock()

		timer := time.NewTimer(a.drainTimeout)
		defer timer.Stop()
		select {
		case <-a.done:
			a.closeErr = closeSink(a.inner)
		case <-timer.C:
			a.closeErr = fmt.Errorf("transport: drain timed out after %s", a.drainTimeout)
			go func() {
				<-a.done
				if err := closeSink(a.inner); err != nil {
					a.errFunc(err)
				}
			}()
		}
	})
	return a.closeErr
}

func (a *Async) drain() {
	defer close(a.done)
	for rec := range a.ch {
		if err := a.deliver(rec); err != nil {
			a.errFunc(err)
		}
	}
}

func (a *Async) deliver(rec record.Record) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %T: %v", a.inner, r)
		}
	}()
	return a.inner.Write(rec)
}
