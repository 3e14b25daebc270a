// Package event reads the pull_request event payload the workflow was
// triggered with.
package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/go-github/v39/github"
)

// PullRequest holds the parts of a pull_request event the poller needs.
type PullRequest struct {
	Action         string
	Number         int
	RepoName       string
	DeploymentsURL string
	HeadSHA        string
}

// Load reads and parses the event payload at path.
func Load(path string) (PullRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PullRequest{}, fmt.Errorf("failed to read event payload: %w", err)
	}
	return Parse(data)
}

// Parse decodes a pull_request event payload. The deployments URL and the
// head commit are required.
func Parse(data []byte) (PullRequest, error) {
	var ev github.PullRequestEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return PullRequest{}, fmt.Errorf("failed to decode event payload: %w", err)
	}

	pr := PullRequest{
		Action:         ev.GetAction(),
		Number:         ev.GetNumber(),
		RepoName:       ev.GetRepo().GetName(),
		DeploymentsURL: ev.GetRepo().GetDeploymentsURL(),
		HeadSHA:        ev.GetPullRequest().GetHead().GetSHA(),
	}

	if pr.DeploymentsURL == "" {
		return PullRequest{}, errors.New("event payload has no repository.deployments_url")
	}
	if pr.HeadSHA == "" {
		return PullRequest{}, errors.New("event payload has no pull_request.head.sha")
	}

	return pr, nil
}
