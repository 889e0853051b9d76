// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"sync"
	"time"
)

// Limiter spaces calls at least Interval apart. The zero Interval disables
// waiting. A Limiter is safe for concurrent use.
type Limiter struct {
	Interval time.Duration

	mu   sync.Mutex
	last time.Time
	now  func() time.Time
}

// NewLimiter returns a limiter enforcing interval between calls.
func NewLimiter(interval time.Duration) *Limiter {
	return &Limiter{Interval: interval, now: time.Now}
}

// Wait blocks until the next call is allowed or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.now == nil {
		l.now = time.Now
	}
	if l.Interval > 0 && !l.last.IsZero() {
		if wait := l.Interval - l.now().Sub(l.last); wait > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
	}
	l.last = l.now()
	return nil
}
