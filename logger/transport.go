package logger

import (
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/kbukum/catlog/record"
)

// Transport receives every record that passes the severity filter.
//
// Write runs synchronously on the logging goroutine, so implementations
// must be fast or hand the record off (see transport.Async). A returned
// error or a panic is reported on the console fallback and never reaches
// the caller of the log call.
type Transport interface {
	Write(rec record.Record) error
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(rec record.Record) error

// Write calls f(rec).
func (f TransportFunc) Write(rec record.Record) error { return f(rec) }

type registration struct {
	id uint64
	t  Transport
}

// registry is an ordered, copy-on-write collection of transports. Readers
// load one snapshot and never observe a partial update.
type registry struct {
	mu     sync.Mutex
	nextID uint64
	list   atomic.Pointer[[]registration]
}

func (r *registry) snapshot() []registration {
	if p := r.list.Load(); p != nil {
		return *p
	}
	return nil
}

// add appends t and returns a function that removes exactly this
// registration. Adding a transport that is already registered is a no-op.
func (r *registry) add(t Transport) (remove func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.snapshot()
	for _, reg := range current {
		if sameTransport(reg.t, t) {
			id := reg.id
			return func() { r.removeID(id) }
		}
	}

	r.nextID++
	id := r.nextID
	next := make([]registration, len(current), len(current)+1)
	copy(next, current)
	next = append(next, registration{id: id, t: t})
	r.list.Store(&next)
	return func() { r.removeID(id) }
}

func (r *registry) remove(t Transport) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filterLocked(func(reg registration) bool { return sameTransport(reg.t, t) })
}

func (r *registry) removeID(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filterLocked(func(reg registration) bool { return reg.id == id })
}

// filterLocked drops the first registration matching drop.
func (r *registry) filterLocked(drop func(registration) bool) bool {
	current := r.snapshot()
	for i, reg := range current {
		if !drop(reg) {
			continue
		}
		next := make([]registration, 0, len(current)-1)
		next = append(next, current[:i]...)
		next = append(next, current[i+1:]...)
		r.list.Store(&next)
		return true
	}
	return false
}

// sameTransport compares two transports without panicking on
// non-comparable dynamic types such as TransportFunc.
func sameTransport(a, b Transport) (same bool) {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || ta == nil || !ta.Comparable() {
		return false
	}
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}
