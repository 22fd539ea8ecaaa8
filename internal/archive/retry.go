package archive

import "time"

// BackoffPolicy yields the wait before re-attempting a URL after a
// transient failure: 2^attempt base units, attempt 0-indexed. Unlike a
// jittered policy the schedule is deterministic, so interrupted runs
// re-attempt on a predictable cadence.
type BackoffPolicy struct {
	base time.Duration
}

// NewBackoffPolicy builds a policy with the given base unit. A zero base
// defaults to one second.
func NewBackoffPolicy(base time.Duration) *BackoffPolicy {
	if base <= 0 {
		base = time.Second
	}
	return &BackoffPolicy{base: base}
}

// Backoff returns the wait duration after failed attempt number attempt.
func (p *BackoffPolicy) Backoff(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	return p.base << uint(attempt)
}
