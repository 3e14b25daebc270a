package poll

import (
	"context"

	"github.com/reillywatson/reviewappstatus/internal/github"
)

//go:generate mockgen -source=clients.go -destination=mocks/mock_clients.go -package=mocks

// DeploymentLister fetches the deployment list of a repository.
type DeploymentLister interface {
	ListDeployments(ctx context.Context, deploymentsURL string) ([]github.Deployment, error)
}

// StatusLister fetches the status feed of a deployment.
type StatusLister interface {
	ListDeploymentStatuses(ctx context.Context, statusesURL string) ([]github.DeploymentStatus, error)
}

// Prober issues a single request to an application and reports the status
// code. A transport failure is returned as an error with a zero code.
type Prober interface {
	Probe(ctx context.Context, url string) (int, error)
}
