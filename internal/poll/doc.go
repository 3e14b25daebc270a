// Package poll implements the bounded poll loops that follow a review app
// from commit to live endpoint.
//
// The three stages run strictly in sequence:
//
//   - [Resolver]: commit sha to the deployment's statuses URL
//   - [BuildPoller]: statuses URL to the newest deployment status
//   - [EndpointPoller]: app URL to an accepted HTTP response code
//
// Every stage retries at a fixed interval. Bounded stages take a [Budget] and
// spend one interval of it per unsuccessful attempt.
package poll
