package core

// limiter.go bounds how many parses decode at once. Inputs are fully
// materialized in memory, so the limit caps peak memory at roughly
// maxConcurrent times the maximum input size.
//
// A full limiter makes callers wait up to maxWait, after which they get
// ErrTooManyParses. WaitForDrain supports graceful shutdown.

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// ErrTooManyParses is returned when no slot frees up within the wait time.
var ErrTooManyParses = errors.New("too many concurrent parses, please try again later")

// DefaultMaxConcurrentParses is used when a non-positive limit is given.
const DefaultMaxConcurrentParses = 8

// DefaultMaxWaitTime is used when a non-positive wait is given.
const DefaultMaxWaitTime = 10 * time.Second

// ParseLimiter is a counting semaphore for parse requests.
type ParseLimiter struct {
	slots   chan struct{}
	maxWait time.Duration
	active  atomic.Int64
}

// NewParseLimiter allows at most maxConcurrent parses at a time.
func NewParseLimiter(maxConcurrent int, maxWait time.Duration) *ParseLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentParses
	}
	if maxWait <= 0 {
		maxWait = DefaultMaxWaitTime
	}
	return &ParseLimiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
	}
}

// Acquire takes a slot, waiting at most maxWait. The caller must Release
// after a nil return.
func (l *ParseLimiter) Acquire(ctx context.Context) error {
	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		l.active.Add(1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrTooManyParses
	}
}

// TryAcquire takes a slot only if one is free right now.
func (l *ParseLimiter) TryAcquire() bool {
	select {
	case l.slots <- struct{}{}:
		l.active.Add(1)
		return true
	default:
		return false
	}
}

// Release frees a slot taken by Acquire or TryAcquire.
func (l *ParseLimiter) Release() {
	l.active.Add(-1)
	<-l.slots
}

// ActiveCount returns the number of parses holding a slot.
func (l *ParseLimiter) ActiveCount() int {
	return int(l.active.Load())
}

// MaxConcurrent returns the slot count.
func (l *ParseLimiter) MaxConcurrent() int {
	return cap(l.slots)
}

// WaitForDrain blocks until no parse holds a slot or ctx ends.
func (l *ParseLimiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if l.ActiveCount() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// ParseLimiterStatus is a snapshot of limiter usage.
type ParseLimiterStatus struct {
	Active        int `json:"active"`
	Available     int `json:"available"`
	MaxConcurrent int `json:"max_concurrent"`
}

// Status returns the current limiter usage.
func (l *ParseLimiter) Status() ParseLimiterStatus {
	return ParseLimiterStatus{
		Active:        l.ActiveCount(),
		Available:     cap(l.slots) - len(l.slots),
		MaxConcurrent: cap(l.slots),
	}
}
