package reconcile

import (
	"context"
	"errors"
	"testing"

	"puzzle-leaderboard/core/metrics"
	"puzzle-leaderboard/core/scheduler"
	"puzzle-leaderboard/feature/leaderboard/models"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockReporter struct {
	mock.Mock
}

func (m *mockReporter) Report(ctx context.Context, err error) error {
	return m.Called(ctx, err).Error(0)
}

func newSupervisedEngine(t *testing.T, fetcher Fetcher, reporter scheduler.Reporter) (*Supervised, *metrics.Metrics) {
	t.Helper()
	engine := newTestEngine(newMemStore(), newFakeTransport(), fetcher)
	m := metrics.New()
	sched := scheduler.New(scheduler.Config{}, engine.Task, reporter, m, zap.NewNop())
	return NewSupervised(engine, sched), m
}

func TestSupervised_FailureIsReportedAndCounted(t *testing.T) {
	fetcher := fetcherFunc(func(ctx context.Context) (*models.Snapshot, error) {
		return nil, errors.New("503")
	})
	reporter := new(mockReporter)
	reporter.On("Report", mock.Anything, mock.MatchedBy(func(err error) bool {
		return errors.Is(err, ErrFetch)
	})).Return(nil)

	refresher, m := newSupervisedEngine(t, fetcher, reporter)

	out, err := refresher.Tick(context.Background())
	assert.Nil(t, out)
	assert.ErrorIs(t, err, ErrFetch)
	reporter.AssertNumberOfCalls(t, "Report", 1)

	n, gerr := testutil.GatherAndCount(m.Registry(), "puzzle_leaderboard_tick_errors_total")
	require.NoError(t, gerr)
	assert.Equal(t, 1, n)
}

func TestSupervised_SuccessReturnsOutcome(t *testing.T) {
	fetcher := fetcherFunc(func(ctx context.Context) (*models.Snapshot, error) {
		return models.NewSnapshot(day1, []models.ScoreRecord{{Name: "Alice"}, {Name: "Bob"}}), nil
	})
	reporter := new(mockReporter)

	refresher, m := newSupervisedEngine(t, fetcher, reporter)

	out, err := refresher.Tick(context.Background())
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, ActionCreate, out.Action)
	assert.Equal(t, 2, out.Participants)
	reporter.AssertNotCalled(t, "Report", mock.Anything, mock.Anything)

	n, gerr := testutil.GatherAndCount(m.Registry(), "puzzle_leaderboard_actions_total")
	require.NoError(t, gerr)
	assert.Equal(t, 1, n)
}

func TestOutcomePass(t *testing.T) {
	var nilOutcome *Outcome
	assert.Nil(t, nilOutcome.Pass())

	p := (&Outcome{TickID: "t1", Action: ActionUpdate, Edited: true, Participants: 3}).Pass()
	assert.Equal(t, &metrics.Pass{ID: "t1", Action: "update", Edited: true, Participants: 3}, p)
}

func TestErrorKinds(t *testing.T) {
	assert.Equal(t, "fetch", metrics.ErrorKind(wrap(ErrFetch, errors.New("503"))))
	assert.Equal(t, "transport", metrics.ErrorKind(ErrTransport))
	assert.Equal(t, "store", metrics.ErrorKind(wrap(ErrStore, errors.New("locked"))))
	assert.Equal(t, "invariant", metrics.ErrorKind(ErrInvariant))
}
