package poll

import (
	"fmt"
	"time"
)

// Budget bounds a poll loop: attempts are made while Timeout is positive, and
// each unsuccessful attempt costs one Interval.
type Budget struct {
	Timeout  time.Duration
	Interval time.Duration
}

// Validate reports a *ConfigError when the budget cannot drive a poll loop.
// An interval equal to the timeout is allowed and yields a single attempt.
func (b Budget) Validate() error {
	if b.Interval <= 0 {
		return &ConfigError{Reason: fmt.Sprintf("interval must be positive, got %s", b.Interval)}
	}
	if b.Interval > b.Timeout {
		return &ConfigError{Reason: fmt.Sprintf("interval %s should be less than or equal to timeout %s", b.Interval, b.Timeout)}
	}
	return nil
}

// Attempts is the number of tries the budget allows when every try fails.
func (b Budget) Attempts() int {
	if b.Validate() != nil {
		return 0
	}
	n := b.Timeout / b.Interval
	if b.Timeout%b.Interval != 0 {
		n++
	}
	return int(n)
}
