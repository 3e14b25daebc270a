package github

// Deployment is the subset of a GitHub deployment record needed to find its
// status feed.
type Deployment struct {
	SHA         string `json:"sha"`
	StatusesURL string `json:"statuses_url"`
}

// DeploymentStatus is a single entry from a deployment's status feed.
type DeploymentStatus struct {
	ID          int64  `json:"id"`
	State       string `json:"state"`
	Environment string `json:"environment"`
}

// StateSuccess is the deployment status state reported for a finished build.
const StateSuccess = "success"
