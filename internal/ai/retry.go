package ai

import (
	"context"
	"errors"
	"time"
)

// Retry defaults. The cooldown slightly exceeds the provider's
// one-minute quota window.
const (
	defaultAttempts = 3
	defaultCooldown = 62 * time.Second
	defaultBackoff  = 2 * time.Second
)

// SleepFunc suspends the caller for the duration or until the context
// is canceled. Injectable so retries are testable without wall-clock
// waits.
type SleepFunc func(ctx context.Context, d time.Duration) error

func contextSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RetryPolicy retries an operation a bounded number of times. A rate
// limit waits the full cooldown; any other failure gets a short fixed
// backoff. Exhausting attempts surfaces the last error.
type RetryPolicy struct {
	attempts int
	cooldown time.Duration
	backoff  time.Duration
	sleep    SleepFunc
}

// RetryOption is custom configuration of RetryPolicy.
type RetryOption func(p *RetryPolicy)

// NewRetryPolicy returns a RetryPolicy with provider defaults.
func NewRetryPolicy(ops ...RetryOption) RetryPolicy {
	pol := RetryPolicy{
		attempts: defaultAttempts,
		cooldown: defaultCooldown,
		backoff:  defaultBackoff,
		sleep:    contextSleep,
	}

	for _, op := range ops {
		op(&pol)
	}

	return pol
}

// WithAttempts sets the retry budget.
func WithAttempts(attempts int) RetryOption {
	return func(p *RetryPolicy) {
		p.attempts = attempts
	}
}

// WithSleep sets a custom sleep function.
func WithSleep(sleep SleepFunc) RetryOption {
	return func(p *RetryPolicy) {
		p.sleep = sleep
	}
}

// WithDelays sets the rate-limit cooldown and the transient backoff.
func WithDelays(cooldown, backoff time.Duration) RetryOption {
	return func(p *RetryPolicy) {
		p.cooldown = cooldown
		p.backoff = backoff
	}
}

// Do runs fn until it succeeds or the retry budget is spent.
func (p RetryPolicy) Do(ctx context.Context, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt < p.attempts; attempt++ {
		if attempt > 0 {
			delay := p.backoff
			if errors.Is(lastErr, ErrRateLimited) {
				delay = p.cooldown
			}
			if err := p.sleep(ctx, delay); err != nil {
				return err
			}
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
	}

	return lastErr
}
