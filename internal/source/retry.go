package source

import (
	"context"
	"time"
)

// RetryPolicy bounds attempts against a flaky external resource. The
// normal operation runs up to Attempts times with Delay between failures;
// when all attempts fail and a forced variant is given, it runs once as
// the final, precondition-bypassing fallback.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
}

// DefaultRetry mirrors the portal's observed flakiness: four tries half a
// second apart.
var DefaultRetry = RetryPolicy{Attempts: 4, Delay: 500 * time.Millisecond}

// Do runs op until it succeeds or attempts are exhausted, then runs forced
// (when non-nil) as a last resort. Returns the final error.
func (p RetryPolicy) Do(ctx context.Context, op func() error, forced func() error) error {
	attempts := p.Attempts
	if attempts <= 0 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		if err = op(); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.Delay):
		}
	}
	if forced != nil {
		if ferr := forced(); ferr == nil {
			return nil
		}
	}
	return err
}
