package transport

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/kbukum/catlog/record"
)

// RetryConfig configures retry behavior.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (including the first).
	MaxAttempts int
	// InitialBackoff is the initial delay between retries.
	InitialBackoff time.Duration
	// MaxBackoff is the maximum delay between retries.
	MaxBackoff time.Duration
	// BackoffFactor is the multiplier for exponential backoff.
	BackoffFactor float64
	// Jitter adds randomness to backoff (0.0 to 1.0).
	Jitter float64
	// RetryIf determines if an error should be retried. Nil retries all.
	RetryIf func(error) bool
	// OnRetry is called before each retry.
	OnRetry func(attempt int, err error, backoff time.Duration)
}

// DefaultRetryConfig returns sensible defaults.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: 50 * time.Millisecond,
		MaxBackoff:     2 * time.Second,
		BackoffFactor:  2.0,
		Jitter:         0.1,
	}
}

// Retry re-attempts a failing Write on the inner sink with exponential
// backoff. It sleeps on the calling goroutine, so put it behind Async when
// the logging path must not stall.
type Retry struct {
	inner  Sink
	cfg    RetryConfig
	ctx    context.Context
	cancel context.CancelFunc
}

// NewRetry wraps inner. Zero fields of cfg take their defaults.
func NewRetry(inner Sink, cfg RetryConfig) *Retry {
	def := DefaultRetryConfig()
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = def.InitialBackoff
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = def.MaxBackoff
	}
	if cfg.BackoffFactor <= 0 {
		cfg.BackoffFactor = def.BackoffFactor
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Retry{inner: inner, cfg: cfg, ctx: ctx, cancel: cancel}
}

// Write delivers rec, retrying until it succeeds, the attempts run out or
// Close is called. The last error is returned.
func (r *Retry) Write(rec record.Record) error {
	var lastErr error
	for attempt := 1; attempt <= r.cfg.MaxAttempts; attempt++ {
		err := r.inner.Write(rec)
		if err == nil {
			return nil
		}
		lastErr = err

		if r.cfg.RetryIf != nil && !r.cfg.RetryIf(err) {
			return err
		}
		if attempt == r.cfg.MaxAttempts {
			break
		}

		backoff := calculateBackoff(attempt, r.cfg)
		if r.cfg.OnRetry != nil {
			r.cfg.OnRetry(attempt, err, backoff)
		}

		timer := time.NewTimer(backoff)
		select {
		case <-r.ctx.Done():
			timer.Stop()
			return fmt.Errorf("transport: retry aborted: %w", lastErr)
		case <-timer.C:
		}
	}
	return fmt.Errorf("transport: giving up after %d attempts: %w", r.cfg.MaxAttempts, lastErr)
}

// Close aborts pending backoffs and closes the inner sink.
func (r *Retry) Close() error {
	r.cancel()
	return closeSink(r.inner)
}

// calculateBackoff returns initial * factor^(attempt-1), jittered and
// capped at MaxBackoff.
func calculateBackoff(attempt int, cfg RetryConfig) time.Duration {
	backoff := float64(cfg.InitialBackoff) * math.Pow(cfg.BackoffFactor, float64(attempt-1))

	if cfg.Jitter > 0 {
		spread := backoff * cfg.Jitter
		backoff += (rand.Float64()*2 - 1) * spread
	}
	if backoff > float64(cfg.MaxBackoff) {
		backoff = float64(cfg.MaxBackoff)
	}
	if backoff < 0 {
		backoff = float64(cfg.InitialBackoff)
	}
	return time.Duration(backoff)
}
