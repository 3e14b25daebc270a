package github

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v39/github"
	"golang.org/x/oauth2"
)

// DeploymentClientInterface defines the GitHub operations needed to follow a
// review app deployment
type DeploymentClientInterface interface {
	ListDeployments(ctx context.Context, deploymentsURL string) ([]Deployment, error)
	ListDeploymentStatuses(ctx context.Context, statusesURL string) ([]DeploymentStatus, error)
}

type GitHubClient struct {
	client *github.Client
}

// NewGitHubClient creates a client that authenticates with a bearer token
func NewGitHubClient(token string) *GitHubClient {
	ctx := context.Background()
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)

	return NewGitHubClientWithHTTP(tc)
}

// NewGitHubClientWithHTTP creates a client on top of an already configured
// http.Client. Authentication is the caller's responsibility.
func NewGitHubClientWithHTTP(httpClient *http.Client) *GitHubClient {
	return &GitHubClient{
		client: github.NewClient(httpClient),
	}
}

// ListDeployments fetches the deployment list at deploymentsURL. The URL is
// taken verbatim from the event payload, so it is requested as-is rather than
// rebuilt from owner and repo.
func (c *GitHubClient) ListDeployments(ctx context.Context, deploymentsURL string) ([]Deployment, error) {
	var deployments []*github.Deployment
	if err := c.get(ctx, deploymentsURL, &deployments); err != nil {
		return nil, fmt.Errorf("failed to fetch deployments: %w", err)
	}

	result := make([]Deployment, 0, len(deployments))
	for _, d := range deployments {
		result = append(result, Deployment{
			SHA:         d.GetSHA(),
			StatusesURL: d.GetStatusesURL(),
		})
	}

	return result, nil
}

// ListDeploymentStatuses fetches the status feed of a single deployment. The
// API returns newest entries first.
func (c *GitHubClient) ListDeploymentStatuses(ctx context.Context, statusesURL string) ([]DeploymentStatus, error) {
	var statuses []*github.DeploymentStatus
	if err := c.get(ctx, statusesURL, &statuses); err != nil {
		return nil, fmt.Errorf("failed to fetch deployment statuses: %w", err)
	}

	result := make([]DeploymentStatus, 0, len(statuses))
	for _, s := range statuses {
		result = append(result, DeploymentStatus{
			ID:          s.GetID(),
			State:       s.GetState(),
			Environment: s.GetEnvironment(),
		})
	}

	return result, nil
}

// get issues a GET for an absolute API URL and decodes the JSON body into v.
// go-github sets the versioned Accept header and turns non-2xx responses into
// *github.ErrorResponse.
func (c *GitHubClient) get(ctx context.Context, url string, v interface{}) error {
	req, err := c.client.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request for %s: %w", url, err)
	}

	if _, err := c.client.Do(ctx, req, v); err != nil {
		return err
	}

	return nil
}
