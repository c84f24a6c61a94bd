package enrichment

import (
	"sync"
	"time"

	"github.com/nacora/cargo-analytics/internal/pkg/logger"
)

type breakerState int

const (
	breakerClosed breakerState = iota
	breakerOpen
	breakerHalfOpen
)

// Breaker trips after consecutive upstream failures and rejects lookups
// for a cooldown period. After the cooldown one probe request is let
// through; its outcome closes or re-opens the circuit.
type Breaker struct {
	mu        sync.Mutex
	state     breakerState
	failures  int
	threshold int
	cooldown  time.Duration
	openedAt  time.Time
	now       func() time.Time
}

// NewBreaker creates a breaker that opens after threshold consecutive
// failures and stays open for cooldown.
func NewBreaker(threshold int, cooldown time.Duration) *Breaker {
	if threshold <= 0 {
		threshold = 3
	}
	return &Breaker{
		threshold: threshold,
		cooldown:  cooldown,
		now:       time.Now,
	}
}

// Allow reports whether a request may proceed. While open it returns
// false until the cooldown elapses, then transitions to half-open and
// admits a single probe.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case breakerClosed:
		return true
	case breakerOpen:
		if b.now().Sub(b.openedAt) < b.cooldown {
			return false
		}
		b.state = breakerHalfOpen
		return true
	default: // half-open, probe already in flight
		return false
	}
}

// Success records a successful upstream call and closes the circuit.
func (b *Breaker) Success() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != breakerClosed {
		logger.Info("enrichment: circuit closed after successful probe")
	}
	b.state = breakerClosed
	b.failures = 0
}

// Failure records a failed upstream call. A failure while half-open
// re-opens the circuit immediately.
func (b *Breaker) Failure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == breakerHalfOpen {
		b.state = breakerOpen
		b.openedAt = b.now()
		logger.Warn("enrichment: probe failed, circuit re-opened", "cooldown", b.cooldown)
		return
	}

	b.failures++
	if b.failures >= b.threshold && b.state == breakerClosed {
		b.state = breakerOpen
		b.openedAt = b.now()
		logger.Warn("enrichment: circuit opened",
			"failures", b.failures, "cooldown", b.cooldown)
	}
}
