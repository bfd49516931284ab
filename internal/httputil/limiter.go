// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"sync"
	"time"
)

// Limiter spaces requests so that at most n requests per second are issued.
// E-utilities allows 10 requests/second with an API key and 3 without;
// callers construct one Limiter per client and Wait before each request.
type Limiter struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

// NewLimiter returns a Limiter that allows perSecond requests per second.
// A non-positive perSecond disables pacing.
func NewLimiter(perSecond int) *Limiter {
	l := &Limiter{}
	if perSecond > 0 {
		l.interval = time.Second / time.Duration(perSecond)
	}
	return l
}

// Wait blocks until the next request may be issued or the context is
// cancelled. The first call never blocks.
func (l *Limiter) Wait(ctx context.Context) error {
	if l.interval == 0 {
		return nil
	}

	l.mu.Lock()
	now := time.Now()
	var sleep time.Duration
	if !l.last.IsZero() {
		if elapsed := now.Sub(l.last); elapsed < l.interval {
			sleep = l.interval - elapsed
		}
	}
	l.last = now.Add(sleep)
	l.mu.Unlock()

	if sleep == 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(sleep):
		return nil
	}
}
