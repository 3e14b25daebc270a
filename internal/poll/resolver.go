package poll

import (
	"context"

	"go.uber.org/zap"
)

// Resolver finds the deployment created for a commit.
type Resolver struct {
	client DeploymentLister
	logger *zap.Logger
	sleep  Sleeper
}

// NewResolver creates a [Resolver] backed by client.
func NewResolver(client DeploymentLister, logger *zap.Logger, opts ...Option) *Resolver {
	cfg := newPollConfig(opts)
	return &Resolver{
		client: client,
		logger: logger,
		sleep:  cfg.sleep,
	}
}

// Resolve polls deploymentsURL until a deployment for sha appears and returns
// its statuses URL. The list is fetched fresh on every attempt and scanned in
// the order the API returns it; the first match wins.
//
// Errors: *ConfigError for an unusable budget, *NotFoundError when the budget
// runs out, *TransportError when the API call fails.
func (r *Resolver) Resolve(ctx context.Context, deploymentsURL, sha string, budget Budget) (string, error) {
	if err := budget.Validate(); err != nil {
		return "", err
	}

	for timeout := budget.Timeout; timeout > 0; timeout -= budget.Interval {
		deployments, err := r.client.ListDeployments(ctx, deploymentsURL)
		if err != nil {
			return "", &TransportError{URL: deploymentsURL, Err: err}
		}

		for _, d := range deployments {
			if d.SHA == sha {
				r.logger.Info("found deployment for commit",
					zap.String("sha", sha),
					zap.String("statuses_url", d.StatusesURL))
				return d.StatusesURL, nil
			}
		}

		r.logger.Info("no deployment found for commit yet",
			zap.String("sha", sha),
			zap.Duration("retry_in", budget.Interval),
			zap.Duration("remaining", max(timeout-budget.Interval, 0)))

		if err := r.sleep(ctx, budget.Interval); err != nil {
			return "", err
		}
	}

	return "", &NotFoundError{SHA: sha}
}
