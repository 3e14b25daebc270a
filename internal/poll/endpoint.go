package poll

import (
	"context"

	"go.uber.org/zap"
)

// EndpointPoller waits for a deployed application to answer with an accepted
// status code.
type EndpointPoller struct {
	prober Prober
	logger *zap.Logger
	sleep  Sleeper
}

// NewEndpointPoller creates an [EndpointPoller] that probes through prober.
func NewEndpointPoller(prober Prober, logger *zap.Logger, opts ...Option) *EndpointPoller {
	cfg := newPollConfig(opts)
	return &EndpointPoller{
		prober: prober,
		logger: logger,
		sleep:  cfg.sleep,
	}
}

// Poll probes url until the response code is in accepted, returning a
// *TimeoutError once the budget is spent. Transport failures (refused
// connections, DNS errors) count as a rejected attempt.
func (p *EndpointPoller) Poll(ctx context.Context, url string, accepted ResponseCodes, budget Budget) error {
	if err := budget.Validate(); err != nil {
		return err
	}

	for timeout := budget.Timeout; timeout > 0; timeout -= budget.Interval {
		code, err := p.prober.Probe(ctx, url)
		if err != nil {
			p.logger.Info("endpoint is not reachable",
				zap.String("url", url),
				zap.Error(err),
				zap.Duration("retry_in", budget.Interval))
		} else {
			p.logger.Info("endpoint responded",
				zap.String("url", url),
				zap.Int("status", code))
			if accepted.Contains(code) {
				return nil
			}
		}

		if err := p.sleep(ctx, budget.Interval); err != nil {
			return err
		}
	}

	return &TimeoutError{URL: url, Accepted: accepted, Timeout: budget.Timeout}
}
