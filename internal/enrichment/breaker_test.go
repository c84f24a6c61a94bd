package enrichment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBreakerOpensAfterThreshold(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	b := NewBreaker(3, 15*time.Minute)
	b.now = func() time.Time { return now }

	assert.True(t, b.Allow())
	b.Failure()
	b.Failure()
	assert.True(t, b.Allow(), "still closed below the threshold")

	b.Failure()
	assert.False(t, b.Allow(), "third consecutive failure opens the circuit")
}

func TestBreakerHalfOpenProbe(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	b := NewBreaker(1, 15*time.Minute)
	b.now = func() time.Time { return now }

	b.Failure()
	assert.False(t, b.Allow())

	// After the cooldown exactly one probe gets through.
	now = now.Add(15 * time.Minute)
	assert.True(t, b.Allow())
	assert.False(t, b.Allow(), "second caller waits for the probe outcome")

	// A failed probe re-opens for a full cooldown.
	b.Failure()
	assert.False(t, b.Allow())
	now = now.Add(14 * time.Minute)
	assert.False(t, b.Allow())
	now = now.Add(time.Minute)
	assert.True(t, b.Allow())

	// A successful probe closes the circuit for everyone.
	b.Success()
	assert.True(t, b.Allow())
	assert.True(t, b.Allow())
}

func TestBreakerSuccessResetsFailureCount(t *testing.T) {
	b := NewBreaker(2, time.Minute)
	b.Failure()
	b.Success()
	b.Failure()
	assert.True(t, b.Allow(), "non-consecutive failures do not accumulate")
}
