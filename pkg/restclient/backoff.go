package restclient

import (
	"math/rand/v2"
	"time"
)

// Backoff picks the pause after a failed attempt. attempt starts at 1.
type Backoff interface {
	Delay(attempt int) time.Duration
}

// ExponentialBackoff doubles from Base up to Max. Jitter spreads each delay
// by up to that fraction in either direction.
type ExponentialBackoff struct {
	Base   time.Duration
	Max    time.Duration
	Jitter float64
}

func (b ExponentialBackoff) Delay(attempt int) time.Duration {
	if attempt < 1 {
		return 0
	}
	base, ceil := b.Base, b.Max
	if base <= 0 {
		base = time.Second
	}
	if ceil <= 0 {
		ceil = 30 * time.Second
	}

	d := base
	for i := 1; i < attempt && d < ceil; i++ {
		d *= 2
	}
	if b.Jitter > 0 {
		d = time.Duration(float64(d) * (1 + b.Jitter*(2*rand.Float64()-1)))
	}
	return min(d, ceil)
}

// FixedBackoff pauses for Interval after every failure.
type FixedBackoff struct {
	Interval time.Duration
}

func (b FixedBackoff) Delay(attempt int) time.Duration {
	if attempt < 1 {
		return 0
	}
	return b.Interval
}

// DefaultBackoff waits 1s, 2s, 4s and so on, capped at one minute.
func DefaultBackoff() Backoff {
	return ExponentialBackoff{Base: time.Second, Max: time.Minute}
}
