package poll

import (
	"fmt"
	"time"
)

// ConfigError reports a budget or interval that cannot drive a poll loop. It
// is returned before any network call is made.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "invalid poll configuration: " + e.Reason
}

// NotFoundError means no deployment for the commit showed up within the
// resolution budget.
type NotFoundError struct {
	SHA string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no deployment found for the latest commit %s", e.SHA)
}

// BuildFailedError is returned when the build check is enabled and the newest
// deployment status is not a success.
type BuildFailedError struct {
	State       string
	Environment string
}

func (e *BuildFailedError) Error() string {
	return fmt.Sprintf("build of %s finished with state %q", e.Environment, e.State)
}

// TimeoutError means the endpoint never answered with an accepted status code
// within its budget.
type TimeoutError struct {
	URL      string
	Accepted ResponseCodes
	Timeout  time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("none of the accepted responses %s were returned by %s within %s", e.Accepted, e.URL, e.Timeout)
}

// BuildWaitTimeoutError is returned by a [BuildPoller] configured with
// [WithMaxWait] when no status was published in time.
type BuildWaitTimeoutError struct {
	URL     string
	MaxWait time.Duration
}

func (e *BuildWaitTimeoutError) Error() string {
	return fmt.Sprintf("no deployment status published at %s within %s", e.URL, e.MaxWait)
}

// TransportError wraps a failed call to the GitHub API. These are never
// retried by the poll loops.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
