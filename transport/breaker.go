package transport

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/kbukum/catlog/record"
)

// State represents the circuit breaker state.
type State int

const (
	// StateClosed lets records through.
	StateClosed State = iota
	// StateOpen drops every record.
	StateOpen
	// StateHalfOpen lets a few records through to probe recovery.
	StateHalfOpen
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// BreakerConfig configures a Breaker.
type BreakerConfig struct {
	// Name identifies the breaker in OnStateChange.
	Name string
	// MaxFailures is the number of consecutive failures that opens the circuit.
	MaxFailures int
	// Timeout is how long the circuit stays open before probing.
	Timeout time.Duration
	// HalfOpenMaxCalls is the number of probe records allowed while half-open.
	HalfOpenMaxCalls int
	// OnStateChange is called when state changes.
	OnStateChange func(name string, from, to State)
}

// DefaultBreakerConfig returns sensible defaults.
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:             name,
		MaxFailures:      5,
		Timeout:          30 * time.Second,
		HalfOpenMaxCalls: 1,
	}
}

// Breaker stops calling a sink that keeps failing. While the circuit is
// open, records are counted as dropped and Write returns nil, so a dead
// sink does not flood the failure report.
//
// States:
//   - Closed: records reach the inner sink
//   - Open: records are dropped until Timeout elapses
//   - Half-Open: HalfOpenMaxCalls probes decide whether to close again
type Breaker struct {
	inner   Sink
	config  BreakerConfig
	now     func() time.Time
	dropped atomic.Uint64

	mu              sync.Mutex
	state           State
	failures        int
	successes       int
	lastFailureTime time.Time
	halfOpenCalls   int
}

// NewBreaker wraps inner.
func NewBreaker(inner Sink, config BreakerConfig) *Breaker {
	if config.MaxFailures <= 0 {
		config.MaxFailures = 5
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if config.HalfOpenMaxCalls <= 0 {
		config.HalfOpenMaxCalls = 1
	}
	return &Breaker{
		inner:  inner,
		config: config,
		now:    time.Now,
		state:  StateClosed,
	}
}

func (b *Breaker) Write(rec record.Record) error {
	if !b.allow() {
		b.dropped.Add(1)
		return nil
	}
	err := b.inner.Write(rec)
	b.recordResult(err)
	return err
}

// State returns the current state.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.currentState()
}

// Dropped returns the number of records dropped while the circuit was open.
func (b *Breaker) Dropped() uint64 { return b.dropped.Load() }

// Reset closes the circuit and clears the counters.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.toState(StateClosed)
	b.failures = 0
}

// Close closes the inner sink.
func (b *Breaker) Close() error { return closeSink(b.inner) }

func (b *Breaker) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.currentState() {
	case StateClosed:
		return true
	case StateHalfOpen:
		if b.halfOpenCalls < b.config.HalfOpenMaxCalls {
			b.halfOpenCalls++
			return true
		}
		return false
	default:
		return false
	}
}

func (b *Breaker) recordResult(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err == nil {
		switch b.currentState() {
		case StateClosed:
			b.failures = 0
		case StateHalfOpen:
			b.successes++
			if b.successes >= b.config.HalfOpenMaxCalls {
				b.toState(StateClosed)
			}
		}
		return
	}

	b.failures++
	b.lastFailureTime = b.now()
	switch b.currentState() {
	case StateClosed:
		if b.failures >= b.config.MaxFailures {
			b.toState(StateOpen)
		}
	case StateHalfOpen:
		b.toState(StateOpen)
	}
}

// currentState handles the open to half-open transition. Callers hold mu.
func (b *Breaker) currentState() State {
	if b.state == StateOpen && b.now().Sub(b.lastFailureTime) >= b.config.Timeout {
		b.toState(StateHalfOpen)
	}
	return b.state
}

func (b *Breaker) toState(to State) {
	if b.state == to {
		return
	}
	from := b.state
	b.state = to

	b.halfOpenCalls = 0
	b.successes = 0
	if to == StateClosed {
		b.failures = 0
	}

	if b.config.OnStateChange != nil {
		b.config.OnStateChange(b.config.Name, from, to)
	}
}
