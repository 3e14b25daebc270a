package runner

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/reillywatson/reviewappstatus/internal/config"
	"github.com/reillywatson/reviewappstatus/internal/event"
	"github.com/reillywatson/reviewappstatus/internal/github"
	"github.com/reillywatson/reviewappstatus/internal/poll"
	"github.com/reillywatson/reviewappstatus/internal/poll/mocks"
)

// fakeGitHub serves a deployments list and a status feed that stays empty
// for pendingPolls requests before returning statuses.
type fakeGitHub struct {
	server          *httptest.Server
	sha             string
	pendingPolls    int
	statuses        []map[string]any
	deploymentCalls atomic.Int32
	statusCalls     atomic.Int32
}

func newFakeGitHub(t *testing.T, sha string, pendingPolls int, statuses ...map[string]any) *fakeGitHub {
	t.Helper()
	f := &fakeGitHub{sha: sha, pendingPolls: pendingPolls, statuses: statuses}

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/foo/deployments", func(w http.ResponseWriter, r *http.Request) {
		f.deploymentCalls.Add(1)
		writeJSON(t, w, []map[string]any{
			{"id": 1, "sha": f.sha, "statuses_url": f.server.URL + "/repos/octo/foo/deployments/1/statuses"},
		})
	})
	mux.HandleFunc("/repos/octo/foo/deployments/1/statuses", func(w http.ResponseWriter, r *http.Request) {
		n := int(f.statusCalls.Add(1))
		if n <= f.pendingPolls {
			writeJSON(t, w, []map[string]any{})
			return
		}
		writeJSON(t, w, f.statuses)
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeGitHub) deploymentsURL() string {
	return f.server.URL + "/repos/octo/foo/deployments"
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	assert.NoError(t, json.NewEncoder(w).Encode(v))
}

type recordedOutputs map[string]string

func (o recordedOutputs) SetOutput(name, value string) error {
	o[name] = value
	return nil
}

type fakeSleeper struct {
	waits []time.Duration
}

func (s *fakeSleeper) Sleep(ctx context.Context, d time.Duration) error {
	s.waits = append(s.waits, d)
	return ctx.Err()
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Interval = config.Duration(5 * time.Second)
	cfg.DeploymentsTimeout = config.Duration(20 * time.Second)
	cfg.PublishTimeout = config.Duration(30 * time.Second)
	cfg.AcceptedResponses = config.StatusCodes{200, 302}
	return cfg
}

func pullRequest(f *fakeGitHub) event.PullRequest {
	return event.PullRequest{
		Action:         "opened",
		Number:         17,
		RepoName:       "foo",
		DeploymentsURL: f.deploymentsURL(),
		HeadSHA:        "abc123",
	}
}

func TestRunner_Run_Success(t *testing.T) {
	gh := newFakeGitHub(t, "abc123", 2,
		map[string]any{"id": 2, "state": "success", "environment": "foo-pr-17"},
		map[string]any{"id": 1, "state": "pending", "environment": "foo-pr-17"},
	)

	ctrl := gomock.NewController(t)
	prober := mocks.NewMockProber(ctrl)
	gomock.InOrder(
		prober.EXPECT().Probe(gomock.Any(), "https://foo-pr-17.herokuapp.com").Return(503, nil),
		prober.EXPECT().Probe(gomock.Any(), "https://foo-pr-17.herokuapp.com").Return(200, nil),
	)

	cfg := testConfig()
	cfg.BuildTimeDelay = config.Duration(7 * time.Second)
	cfg.LoadTimeDelay = config.Duration(3 * time.Second)

	outputs := recordedOutputs{}
	sleeper := &fakeSleeper{}
	r := New(cfg, github.NewGitHubClient("test-token"), prober, outputs, zap.NewNop(), sleeper.Sleep)

	result, err := r.Run(context.Background(), pullRequest(gh))
	require.NoError(t, err)

	assert.Equal(t, "foo-pr-17", result.AppName)
	assert.Equal(t, "https://foo-pr-17.herokuapp.com", result.AppURL)
	assert.Equal(t, int64(2), result.Status.ID)
	assert.Equal(t, recordedOutputs{
		"app_name": "foo-pr-17",
		"app_url":  "https://foo-pr-17.herokuapp.com",
	}, outputs)

	assert.Equal(t, int32(1), gh.deploymentCalls.Load())
	assert.Equal(t, int32(3), gh.statusCalls.Load())
	assert.Equal(t, []time.Duration{
		7 * time.Second, // build time
		5 * time.Second, // pending
		5 * time.Second, // pending
		3 * time.Second, // load time
		5 * time.Second, // 503
	}, sleeper.waits)
}

func TestRunner_Run_BuildFailed(t *testing.T) {
	gh := newFakeGitHub(t, "abc123", 0,
		map[string]any{"id": 3, "state": "failure", "environment": "foo-pr-17"},
	)

	ctrl := gomock.NewController(t)
	prober := mocks.NewMockProber(ctrl)

	outputs := recordedOutputs{}
	r := New(testConfig(), github.NewGitHubClient("test-token"), prober, outputs, zap.NewNop(), (&fakeSleeper{}).Sleep)

	result, err := r.Run(context.Background(), pullRequest(gh))

	var buildErr *poll.BuildFailedError
	require.True(t, errors.As(err, &buildErr), "expected *poll.BuildFailedError, got %v", err)
	assert.Equal(t, "failure", buildErr.State)
	assert.Equal(t, "foo-pr-17", result.AppName)
	assert.Empty(t, outputs)
}

func TestRunner_Run_ResponseCheckOnly(t *testing.T) {
	gh := newFakeGitHub(t, "abc123", 0,
		map[string]any{"id": 3, "state": "failure", "environment": "foo-pr-17"},
	)

	ctrl := gomock.NewController(t)
	prober := mocks.NewMockProber(ctrl)
	prober.EXPECT().Probe(gomock.Any(), "https://foo-pr-17.apps.example.com").Return(302, nil)

	cfg := testConfig()
	cfg.Checks = config.Checks{config.CheckResponse}
	cfg.HostingDomain = "apps.example.com"

	outputs := recordedOutputs{}
	r := New(cfg, github.NewGitHubClient("test-token"), prober, outputs, zap.NewNop(), (&fakeSleeper{}).Sleep)

	_, err := r.Run(context.Background(), pullRequest(gh))
	require.NoError(t, err)
	assert.Equal(t, "https://foo-pr-17.apps.example.com", outputs["app_url"])
}

func TestRunner_Run_BuildCheckOnly(t *testing.T) {
	gh := newFakeGitHub(t, "abc123", 0,
		map[string]any{"id": 3, "state": "success", "environment": "foo-pr-17"},
	)

	ctrl := gomock.NewController(t)
	// no expectations: the app must not be probed
	prober := mocks.NewMockProber(ctrl)

	cfg := testConfig()
	cfg.Checks = config.Checks{config.CheckBuild}

	outputs := recordedOutputs{}
	r := New(cfg, github.NewGitHubClient("test-token"), prober, outputs, zap.NewNop(), (&fakeSleeper{}).Sleep)

	_, err := r.Run(context.Background(), pullRequest(gh))
	require.NoError(t, err)
	assert.Equal(t, "foo-pr-17", outputs["app_name"])
}

func TestRunner_Run_EndpointTimeout(t *testing.T) {
	gh := newFakeGitHub(t, "abc123", 0,
		map[string]any{"id": 3, "state": "success", "environment": "foo-pr-17"},
	)

	ctrl := gomock.NewController(t)
	prober := mocks.NewMockProber(ctrl)
	prober.EXPECT().Probe(gomock.Any(), gomock.Any()).Return(503, nil).Times(6)

	r := New(testConfig(), github.NewGitHubClient("test-token"), prober, recordedOutputs{}, zap.NewNop(), (&fakeSleeper{}).Sleep)

	_, err := r.Run(context.Background(), pullRequest(gh))

	var timeoutErr *poll.TimeoutError
	require.True(t, errors.As(err, &timeoutErr), "expected *poll.TimeoutError, got %v", err)
	assert.Contains(t, err.Error(), "[200, 302]")
}

func TestRunner_Run_DeploymentNotFound(t *testing.T) {
	gh := newFakeGitHub(t, "someothersha", 0)

	ctrl := gomock.NewController(t)
	prober := mocks.NewMockProber(ctrl)

	r := New(testConfig(), github.NewGitHubClient("test-token"), prober, recordedOutputs{}, zap.NewNop(), (&fakeSleeper{}).Sleep)

	_, err := r.Run(context.Background(), pullRequest(gh))

	var notFound *poll.NotFoundError
	require.True(t, errors.As(err, &notFound), "expected *poll.NotFoundError, got %v", err)
	assert.Equal(t, int32(4), gh.deploymentCalls.Load())
	assert.Zero(t, gh.statusCalls.Load())
}

func TestRunner_Run_InvalidBudgetMakesNoRequests(t *testing.T) {
	gh := newFakeGitHub(t, "abc123", 0)

	ctrl := gomock.NewController(t)
	prober := mocks.NewMockProber(ctrl)

	cfg := testConfig()
	cfg.PublishTimeout = config.Duration(time.Second)

	r := New(cfg, github.NewGitHubClient("test-token"), prober, recordedOutputs{}, zap.NewNop(), (&fakeSleeper{}).Sleep)

	_, err := r.Run(context.Background(), pullRequest(gh))

	var cfgErr *poll.ConfigError
	require.True(t, errors.As(err, &cfgErr), "expected *poll.ConfigError, got %v", err)
	assert.Zero(t, gh.deploymentCalls.Load())
}

func TestRunner_Run_APIErrorIsFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message": "Bad credentials"}`))
	}))
	defer server.Close()

	ctrl := gomock.NewController(t)
	prober := mocks.NewMockProber(ctrl)

	r := New(testConfig(), github.NewGitHubClient("bad-token"), prober, recordedOutputs{}, zap.NewNop(), (&fakeSleeper{}).Sleep)

	_, err := r.Run(context.Background(), event.PullRequest{
		DeploymentsURL: server.URL + "/repos/octo/foo/deployments",
		HeadSHA:        "abc123",
	})

	var transportErr *poll.TransportError
	require.True(t, errors.As(err, &transportErr), "expected *poll.TransportError, got %v", err)
	assert.Contains(t, err.Error(), "401")
}

func TestRunner_Run_DelaysAreLoggedWithFields(t *testing.T) {
	gh := newFakeGitHub(t, "abc123", 0,
		map[string]any{"id": 3, "state": "success", "environment": "foo-pr-17"},
	)

	ctrl := gomock.NewController(t)
	prober := mocks.NewMockProber(ctrl)
	prober.EXPECT().Probe(gomock.Any(), gomock.Any()).Return(200, nil)

	cfg := testConfig()
	cfg.BuildTimeDelay = config.Duration(7 * time.Second)
	cfg.LoadTimeDelay = config.Duration(3 * time.Second)

	core, logs := observer.New(zap.InfoLevel)
	r := New(cfg, github.NewGitHubClient("test-token"), prober, recordedOutputs{}, zap.New(core), (&fakeSleeper{}).Sleep)

	_, err := r.Run(context.Background(), pullRequest(gh))
	require.NoError(t, err)

	delays := logs.FilterMessage("waiting before next stage").All()
	require.Len(t, delays, 2)
	assert.Equal(t, "build", delays[0].ContextMap()["stage"])
	assert.Equal(t, 7*time.Second, delays[0].ContextMap()["delay"])
	assert.Equal(t, "load", delays[1].ContextMap()["stage"])
	assert.Equal(t, 3*time.Second, delays[1].ContextMap()["delay"])
}

func TestRunner_Run_MissingEnvironment(t *testing.T) {
	testCases := []struct {
		name        string
		checks      config.Checks
		expectError bool
	}{
		{name: "response check fails fast", checks: config.Checks{config.CheckBuild, config.CheckResponse}, expectError: true},
		{name: "build check alone does not need it", checks: config.Checks{config.CheckBuild}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gh := newFakeGitHub(t, "abc123", 0,
				map[string]any{"id": 3, "state": "success", "environment": ""},
			)

			ctrl := gomock.NewController(t)
			// no expectations: the app must not be probed
			prober := mocks.NewMockProber(ctrl)

			cfg := testConfig()
			cfg.Checks = tc.checks

			outputs := recordedOutputs{}
			sleeper := &fakeSleeper{}
			r := New(cfg, github.NewGitHubClient("test-token"), prober, outputs, zap.NewNop(), sleeper.Sleep)

			_, err := r.Run(context.Background(), pullRequest(gh))
			if !tc.expectError {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrNoEnvironment)
			assert.Empty(t, outputs)
			assert.Empty(t, sleeper.waits)
		})
	}
}

func TestAppURL(t *testing.T) {
	assert.Equal(t, "https://foo-pr-17.herokuapp.com", AppURL("foo-pr-17", "herokuapp.com"))
}
