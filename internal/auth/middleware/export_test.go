package middleware

import "time"

// SetNowForTest swaps the limiter's clock for deterministic window tests.
func (l *UserRateLimiter) SetNowForTest(now func() time.Time) {
	l.now = now
}
