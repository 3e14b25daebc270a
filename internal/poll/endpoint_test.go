package poll_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/reillywatson/reviewappstatus/internal/poll"
	"github.com/reillywatson/reviewappstatus/internal/poll/mocks"
)

const appURL = "https://app-pr-17.herokuapp.com"

func TestEndpointPoller_Poll(t *testing.T) {
	accepted := poll.NewResponseCodes(200, 302)
	refused := errors.New("dial tcp: connection refused")

	type probe struct {
		code int
		err  error
	}

	testCases := []struct {
		name          string
		budget        poll.Budget
		probes        []probe
		expectTimeout bool
	}{
		{
			name:   "accepted on first call",
			budget: poll.Budget{Timeout: 3 * time.Second, Interval: time.Second},
			probes: []probe{{code: 200}},
		},
		{
			name:   "redirect is accepted",
			budget: poll.Budget{Timeout: 3 * time.Second, Interval: time.Second},
			probes: []probe{{code: 302}},
		},
		{
			name:   "unavailable then ok",
			budget: poll.Budget{Timeout: 10 * time.Second, Interval: 5 * time.Second},
			probes: []probe{{code: 503}, {code: 200}},
		},
		{
			name:   "transport failure is retried",
			budget: poll.Budget{Timeout: 10 * time.Second, Interval: 5 * time.Second},
			probes: []probe{{err: refused}, {code: 200}},
		},
		{
			name:          "single attempt budget",
			budget:        poll.Budget{Timeout: 5 * time.Second, Interval: 5 * time.Second},
			probes:        []probe{{code: 503}},
			expectTimeout: true,
		},
		{
			name:          "budget exhausted",
			budget:        poll.Budget{Timeout: 3 * time.Second, Interval: time.Second},
			probes:        []probe{{code: 502}, {err: refused}, {code: 404}},
			expectTimeout: true,
		},
		{
			name:          "partial last interval still gets an attempt",
			budget:        poll.Budget{Timeout: 10 * time.Second, Interval: 3 * time.Second},
			probes:        []probe{{code: 503}, {code: 503}, {code: 503}, {code: 503}},
			expectTimeout: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			prober := mocks.NewMockProber(ctrl)
			calls := make([]any, 0, len(tc.probes))
			for _, p := range tc.probes {
				calls = append(calls, prober.EXPECT().Probe(gomock.Any(), appURL).Return(p.code, p.err))
			}
			gomock.InOrder(calls...)

			logger, logs := newObservedLogger(t)
			sleeper := &fakeSleeper{}
			poller := poll.NewEndpointPoller(prober, logger, poll.WithSleeper(sleeper.Sleep))

			err := poller.Poll(context.Background(), appURL, accepted, tc.budget)
			if !tc.expectTimeout {
				require.NoError(t, err)
				assert.Len(t, sleeper.waits, len(tc.probes)-1)
				return
			}

			var timeoutErr *poll.TimeoutError
			require.True(t, errors.As(err, &timeoutErr), "expected *poll.TimeoutError, got %v", err)
			assert.Contains(t, err.Error(), "[200, 302]")
			assert.Contains(t, err.Error(), appURL)
			assert.Equal(t, tc.budget.Attempts(), len(tc.probes))
			assert.Len(t, sleeper.waits, len(tc.probes))

			observed := logs.FilterMessage("endpoint responded").Len() + logs.FilterMessage("endpoint is not reachable").Len()
			assert.Equal(t, len(tc.probes), observed)
		})
	}
}

func TestEndpointPoller_Poll_InvalidBudget(t *testing.T) {
	ctrl := gomock.NewController(t)
	// no expectations: any probe fails the test
	prober := mocks.NewMockProber(ctrl)

	logger, _ := newObservedLogger(t)
	poller := poll.NewEndpointPoller(prober, logger, poll.WithSleeper((&fakeSleeper{}).Sleep))

	err := poller.Poll(context.Background(), appURL, poll.NewResponseCodes(200),
		poll.Budget{Timeout: 5 * time.Second, Interval: 10 * time.Second})

	var cfgErr *poll.ConfigError
	assert.True(t, errors.As(err, &cfgErr), "expected *poll.ConfigError, got %v", err)
}

func TestEndpointPoller_Poll_LogsObservedStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	prober := mocks.NewMockProber(ctrl)
	prober.EXPECT().Probe(gomock.Any(), appURL).Return(200, nil)

	logger, logs := newObservedLogger(t)
	poller := poll.NewEndpointPoller(prober, logger)

	err := poller.Poll(context.Background(), appURL, poll.NewResponseCodes(200),
		poll.Budget{Timeout: time.Second, Interval: time.Second})
	require.NoError(t, err)

	entries := logs.FilterMessage("endpoint responded").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(200), entries[0].ContextMap()["status"])
}
