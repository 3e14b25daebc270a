package poll

import (
	"context"
	"time"
)

// Sleeper blocks for d, returning early with the context's error when ctx is
// done first.
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepContext is the default [Sleeper].
func SleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type pollConfig struct {
	sleep   Sleeper
	maxWait time.Duration
}

// Option configures a poller at construction.
type Option func(*pollConfig)

// WithSleeper replaces the wait between attempts. Tests use it to run poll
// loops without real delays.
func WithSleeper(s Sleeper) Option {
	return func(cfg *pollConfig) {
		if s != nil {
			cfg.sleep = s
		}
	}
}

// WithMaxWait caps how long a [BuildPoller] waits for the first status.
// Zero, the default, waits indefinitely. Other pollers ignore it.
func WithMaxWait(d time.Duration) Option {
	return func(cfg *pollConfig) {
		cfg.maxWait = d
	}
}

func newPollConfig(opts []Option) pollConfig {
	cfg := pollConfig{sleep: SleepContext}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
