package scheduler

import "time"

// RetryPolicy bounds delivery attempts for a single firing. Attempts beyond
// the first are spaced by a fixed backoff.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
}

// DefaultRetryPolicy is the initial attempt plus one retry five seconds later.
var DefaultRetryPolicy = RetryPolicy{
	MaxAttempts: 2,
	Backoff:     5 * time.Second,
}
