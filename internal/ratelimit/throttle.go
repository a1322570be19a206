// Package ratelimit throttles outbound calls to the company registry.
package ratelimit

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"
)

const (
	// DefaultMaxConcurrent is the default number of concurrent enrichment calls
	DefaultMaxConcurrent = 5
	// DefaultJitter is the upper bound of the random stagger before each call
	DefaultJitter = 50 * time.Millisecond
)

// Throttle bounds concurrent calls with a semaphore, spaces call starts by
// minDelay and staggers each start by a random jitter in [0, maxJitter).
type Throttle struct {
	semaphore     chan struct{}
	maxConcurrent int
	minDelay      time.Duration
	maxJitter     time.Duration
	lastRequest   time.Time
	mu            sync.Mutex
}

// NewThrottle creates a Throttle. Non-positive maxConcurrent falls back to DefaultMaxConcurrent.
func NewThrottle(maxConcurrent int, minDelay, maxJitter time.Duration) *Throttle {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}
	return &Throttle{
		semaphore:     make(chan struct{}, maxConcurrent),
		maxConcurrent: maxConcurrent,
		minDelay:      minDelay,
		maxJitter:     maxJitter,
	}
}

// Acquire blocks until a slot is free and the pacing delays have elapsed,
// or the context is cancelled. The returned release func MUST be called.
func (t *Throttle) Acquire(ctx context.Context) (release func(), err error) {
	select {
	case t.semaphore <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	wait := t.reserve()
	if t.maxJitter > 0 {
		wait += rand.N(t.maxJitter)
	}

	if wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			<-t.semaphore
			return nil, ctx.Err()
		}
	}

	return func() {
		<-t.semaphore
	}, nil
}

// reserve books the next start slot and returns how long the caller must wait for it
func (t *Throttle) reserve() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	if t.minDelay <= 0 {
		t.lastRequest = now
		return 0
	}

	next := t.lastRequest.Add(t.minDelay)
	if next.Before(now) {
		next = now
	}
	t.lastRequest = next
	return next.Sub(now)
}

// CurrentUsage returns the number of slots currently in use
func (t *Throttle) CurrentUsage() int {
	return len(t.semaphore)
}

// MaxConcurrent returns the maximum concurrent calls allowed
func (t *Throttle) MaxConcurrent() int {
	return t.maxConcurrent
}
