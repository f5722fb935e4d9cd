package ratelimit

import (
	"math"
	"sync"
	"time"
)

// clientState tracks one client's remaining allowance and when it was
// last topped up. Rates are not stored; each Allow call supplies them,
// so config changes apply to existing clients immediately.
type clientState struct {
	allowance float64
	last      time.Time
}

// Limiter is an in-memory per-client rate limiter for the chat routes.
// A client may spend up to burst requests at once; the allowance then
// recovers at rpm requests per minute, never exceeding burst.
type Limiter struct {
	now     func() time.Time
	mu      sync.Mutex
	clients map[string]*clientState
}

func New() *Limiter {
	return &Limiter{
		now:     func() time.Time { return time.Now().UTC() },
		clients: make(map[string]*clientState),
	}
}

// Allow reports whether the client may proceed, and how many seconds to
// wait if not. A non-positive burst falls back to rpm (no burst headroom
// beyond the per-minute budget).
func (l *Limiter) Allow(clientKey string, rpm, burst int) (bool, int) {
	if rpm <= 0 || clientKey == "" {
		return false, 60
	}
	if burst <= 0 {
		burst = rpm
	}
	perSecond := float64(rpm) / 60.0
	limit := float64(burst)

	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.clients[clientKey]
	if !ok {
		c = &clientState{allowance: limit, last: now}
		l.clients[clientKey] = c
	} else {
		recovered := now.Sub(c.last).Seconds() * perSecond
		c.allowance = math.Min(limit, c.allowance+recovered)
		c.last = now
	}

	if c.allowance >= 1 {
		c.allowance--
		return true, 0
	}

	wait := int(math.Ceil((1 - c.allowance) / perSecond))
	if wait < 1 {
		wait = 1
	}
	return false, wait
}
