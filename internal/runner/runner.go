// Package runner drives one review app check from event to verdict.
package runner

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/reillywatson/reviewappstatus/internal/config"
	"github.com/reillywatson/reviewappstatus/internal/event"
	"github.com/reillywatson/reviewappstatus/internal/github"
	"github.com/reillywatson/reviewappstatus/internal/poll"
)

// OutputSetter publishes step outputs.
type OutputSetter interface {
	SetOutput(name, value string) error
}

// ErrNoEnvironment is returned when the response check is enabled but the
// deployment status names no environment to build the app URL from.
var ErrNoEnvironment = errors.New("deployment status has no environment")

// Result describes the review app found for the pull request.
type Result struct {
	AppName string
	AppURL  string
	Status  github.DeploymentStatus
}

// Runner runs the configured checks in order: deployment lookup, build
// state, then application response.
type Runner struct {
	cfg      config.Config
	resolver *poll.Resolver
	builds   *poll.BuildPoller
	endpoint *poll.EndpointPoller
	outputs  OutputSetter
	logger   *zap.Logger
	sleep    poll.Sleeper
}

// New wires a Runner from its clients. sleep is used for the fixed delays and
// between poll attempts; nil selects [poll.SleepContext].
func New(cfg config.Config, api github.DeploymentClientInterface, prober poll.Prober, outputs OutputSetter, logger *zap.Logger, sleep poll.Sleeper) *Runner {
	if sleep == nil {
		sleep = poll.SleepContext
	}
	withSleep := poll.WithSleeper(sleep)

	return &Runner{
		cfg:      cfg,
		resolver: poll.NewResolver(api, logger, withSleep),
		builds:   poll.NewBuildPoller(api, logger, withSleep, poll.WithMaxWait(cfg.BuildTimeout.Duration())),
		endpoint: poll.NewEndpointPoller(prober, logger, withSleep),
		outputs:  outputs,
		logger:   logger,
		sleep:    sleep,
	}
}

// Run checks the review app of pr. Budgets are validated before any request
// is made.
func (r *Runner) Run(ctx context.Context, pr event.PullRequest) (Result, error) {
	if err := r.cfg.Validate(); err != nil {
		return Result{}, err
	}

	r.logger.Info("checking review app",
		zap.String("action", pr.Action),
		zap.Int("pull_request", pr.Number),
		zap.String("repository", pr.RepoName),
		zap.String("sha", pr.HeadSHA),
		zap.Strings("checks", checkNames(r.cfg.Checks)),
		zap.Stringer("accepted_responses", r.cfg.Accepted()))

	if err := r.delay(ctx, "build", r.cfg.BuildTimeDelay); err != nil {
		return Result{}, err
	}

	statusesURL, err := r.resolver.Resolve(ctx, pr.DeploymentsURL, pr.HeadSHA, r.cfg.DeploymentsBudget())
	if err != nil {
		return Result{}, err
	}

	status, err := r.builds.Poll(ctx, statusesURL, r.cfg.Interval.Duration())
	if err != nil {
		return Result{}, err
	}

	result := Result{
		AppName: status.Environment,
		AppURL:  AppURL(status.Environment, r.cfg.HostingDomain),
		Status:  status,
	}
	r.logger.Info("build finished",
		zap.String("state", status.State),
		zap.String("environment", status.Environment))

	if r.cfg.Checks.Has(config.CheckBuild) && status.State != github.StateSuccess {
		return result, &poll.BuildFailedError{State: status.State, Environment: status.Environment}
	}

	if r.cfg.Checks.Has(config.CheckResponse) && status.Environment == "" {
		return result, fmt.Errorf("status %d at %s: %w", status.ID, statusesURL, ErrNoEnvironment)
	}

	if err := r.outputs.SetOutput("app_name", result.AppName); err != nil {
		return result, err
	}
	if err := r.outputs.SetOutput("app_url", result.AppURL); err != nil {
		return result, err
	}

	if !r.cfg.Checks.Has(config.CheckResponse) {
		return result, nil
	}

	if err := r.delay(ctx, "load", r.cfg.LoadTimeDelay); err != nil {
		return result, err
	}

	if err := r.endpoint.Poll(ctx, result.AppURL, r.cfg.Accepted(), r.cfg.PublishBudget()); err != nil {
		return result, err
	}

	r.logger.Info("review app is up", zap.String("url", result.AppURL))
	return result, nil
}

func (r *Runner) delay(ctx context.Context, name string, d config.Duration) error {
	if d <= 0 {
		return nil
	}
	r.logger.Info("waiting before next stage",
		zap.String("stage", name),
		zap.Duration("delay", d.Duration()))
	return r.sleep(ctx, d.Duration())
}

// AppURL is the public URL of the review app deployed as environment.
func AppURL(environment, hostingDomain string) string {
	return fmt.Sprintf("https://%s.%s", environment, hostingDomain)
}

func checkNames(checks config.Checks) []string {
	names := make([]string, len(checks))
	for i, c := range checks {
		names[i] = string(c)
	}
	return names
}
