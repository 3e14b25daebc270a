package poll

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/reillywatson/reviewappstatus/internal/github"
)

// BuildPoller waits for a deployment to publish its build status.
type BuildPoller struct {
	client  StatusLister
	logger  *zap.Logger
	sleep   Sleeper
	maxWait time.Duration
}

// NewBuildPoller creates a [BuildPoller] backed by client. Without
// [WithMaxWait] it waits for as long as the deployment stays pending.
func NewBuildPoller(client StatusLister, logger *zap.Logger, opts ...Option) *BuildPoller {
	cfg := newPollConfig(opts)
	return &BuildPoller{
		client:  client,
		logger:  logger,
		sleep:   cfg.sleep,
		maxWait: cfg.maxWait,
	}
}

// Poll fetches statusesURL every interval until the feed is non-empty and
// returns its first entry. GitHub lists statuses newest first; that ordering
// is trusted, not checked.
//
// An empty feed means the build is still pending. Poll does not look at the
// returned state; deciding whether it is a success is up to the caller.
func (p *BuildPoller) Poll(ctx context.Context, statusesURL string, interval time.Duration) (github.DeploymentStatus, error) {
	if interval <= 0 {
		return github.DeploymentStatus{}, &ConfigError{Reason: fmt.Sprintf("interval must be positive, got %s", interval)}
	}

	waitCtx := ctx
	if p.maxWait > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, p.maxWait)
		defer cancel()
	}

	for {
		statuses, err := p.client.ListDeploymentStatuses(waitCtx, statusesURL)
		if err != nil {
			if p.waitExpired(ctx, waitCtx) {
				return github.DeploymentStatus{}, &BuildWaitTimeoutError{URL: statusesURL, MaxWait: p.maxWait}
			}
			return github.DeploymentStatus{}, &TransportError{URL: statusesURL, Err: err}
		}

		if len(statuses) > 0 {
			if len(statuses) > 1 {
				p.logger.Info("multiple deployment statuses found, using the first one",
					zap.Int("count", len(statuses)),
					zap.Int64("status_id", statuses[0].ID))
			}
			return statuses[0], nil
		}

		p.logger.Info("build is pending",
			zap.String("statuses_url", statusesURL),
			zap.Duration("retry_in", interval))

		if err := p.sleep(waitCtx, interval); err != nil {
			if p.waitExpired(ctx, waitCtx) {
				return github.DeploymentStatus{}, &BuildWaitTimeoutError{URL: statusesURL, MaxWait: p.maxWait}
			}
			return github.DeploymentStatus{}, err
		}
	}
}

// waitExpired reports whether the optional max wait, and not the caller's
// own context, ended the loop.
func (p *BuildPoller) waitExpired(parent, waitCtx context.Context) bool {
	return p.maxWait > 0 && parent.Err() == nil && waitCtx.Err() != nil
}
