package leaderboard_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"puzzle-leaderboard/core/database"
	"puzzle-leaderboard/feature/leaderboard"
	"puzzle-leaderboard/feature/leaderboard/models"
	"puzzle-leaderboard/feature/leaderboard/reconcile"
	"puzzle-leaderboard/feature/leaderboard/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var day = time.Date(2023, 5, 8, 0, 0, 0, 0, time.UTC)

func secs(n int) *time.Duration {
	d := time.Duration(n) * time.Second
	return &d
}

type fetcherFunc func(ctx context.Context) (*models.Snapshot, error)

func (f fetcherFunc) Fetch(ctx context.Context) (*models.Snapshot, error) { return f(ctx) }

type mockRefresher struct {
	mock.Mock
}

func (m *mockRefresher) Tick(ctx context.Context) (*reconcile.Outcome, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).(*reconcile.Outcome)
	return out, args.Error(1)
}

func setupStore(t *testing.T) *store.Store {
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Connect(database.Config{
		Driver: "sqlite",
		Name:   fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	})
	require.NoError(t, err)

	s := store.New(db)
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func setupTestApp(t *testing.T, fetcher reconcile.Fetcher, refresher leaderboard.Refresher) (*fiber.App, *store.Store) {
	s := setupStore(t)
	svc := leaderboard.NewService(s, fetcher, refresher, time.Minute, zap.NewNop())
	feature := leaderboard.NewFeature(svc, time.Hour)

	app := fiber.New()
	require.True(t, feature.IsEnabled())
	require.NoError(t, feature.Load(app))
	return app, s
}

func decodeBoard(t *testing.T, body io.Reader) leaderboard.Board {
	var b leaderboard.Board
	require.NoError(t, json.NewDecoder(body).Decode(&b))
	return b
}

func TestHandleLatest(t *testing.T) {
	app, s := setupTestApp(t, nil, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/leaderboard/latest", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	_, err = s.UpdateScores(context.Background(), []models.ScoreRecord{
		{Date: day, Name: "Bob"},
		{Date: day, Name: "Alice", Time: secs(65)},
	})
	require.NoError(t, err)

	resp, err = app.Test(httptest.NewRequest("GET", "/leaderboard/latest", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	board := decodeBoard(t, resp.Body)
	assert.Equal(t, "2023-05-08", board.Date)
	assert.Equal(t, "Monday, May 8, 2023", board.Title)
	assert.False(t, board.Complete)
	require.Len(t, board.Entries, 2)
	assert.Equal(t, leaderboard.Entry{Rank: 1, Name: "Alice", Time: "01:05", Seconds: ptr(int64(65))}, board.Entries[0])
	assert.Equal(t, "N/A", board.Entries[1].Time)
	assert.Nil(t, board.Entries[1].Seconds)
	assert.Contains(t, board.Message, "Mini results for Monday, May 8, 2023")
}

func ptr[T any](v T) *T { return &v }

func TestHandleByDate(t *testing.T) {
	app, s := setupTestApp(t, nil, nil)
	_, err := s.UpdateScores(context.Background(), []models.ScoreRecord{{Date: day, Name: "Alice", Time: secs(30)}})
	require.NoError(t, err)

	tests := []struct {
		name string
		path string
		want int
	}{
		{"Stored date", "/leaderboard/2023-05-08", fiber.StatusOK},
		{"Unknown date", "/leaderboard/2023-05-09", fiber.StatusNotFound},
		{"Bad date", "/leaderboard/yesterday", fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestHandlePreview(t *testing.T) {
	calls := 0
	fetcher := fetcherFunc(func(ctx context.Context) (*models.Snapshot, error) {
		calls++
		return models.NewSnapshot(day, []models.ScoreRecord{{Name: "Alice", Time: secs(20)}}), nil
	})
	app, s := setupTestApp(t, fetcher, nil)

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/leaderboard/preview", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		board := decodeBoard(t, resp.Body)
		assert.True(t, board.Complete)
	}
	assert.Equal(t, 1, calls)

	// Previews are never persisted.
	latest, err := s.MostRecentDate(context.Background())
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestHandlePreview_FetchError(t *testing.T) {
	fetcher := fetcherFunc(func(ctx context.Context) (*models.Snapshot, error) {
		return nil, fmt.Errorf("%w: 503", reconcile.ErrFetch)
	})
	app, _ := setupTestApp(t, fetcher, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/leaderboard/preview", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestHandleRefresh(t *testing.T) {
	refresher := new(mockRefresher)
	refresher.On("Tick", mock.Anything).Return(&reconcile.Outcome{TickID: "t1", Action: reconcile.ActionCreate, Sent: true}, nil)
	app, _ := setupTestApp(t, nil, refresher)

	resp, err := app.Test(httptest.NewRequest("POST", "/leaderboard/refresh", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out reconcile.Outcome
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, reconcile.ActionCreate, out.Action)
	assert.True(t, out.Sent)

	// One refresh per hour in this setup.
	resp, err = app.Test(httptest.NewRequest("POST", "/leaderboard/refresh", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	refresher.AssertNumberOfCalls(t, "Tick", 1)
}

func TestHandleRefresh_Error(t *testing.T) {
	refresher := new(mockRefresher)
	refresher.On("Tick", mock.Anything).Return(nil, errors.New("discord down"))
	app, _ := setupTestApp(t, nil, refresher)

	resp, err := app.Test(httptest.NewRequest("POST", "/leaderboard/refresh", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestServiceWithoutCollaborators(t *testing.T) {
	svc := leaderboard.NewService(setupStore(t), nil, nil, time.Minute, nil)

	_, err := svc.Preview(context.Background())
	assert.Error(t, err)
	_, err = svc.Refresh(context.Background())
	assert.Error(t, err)

	_, err = svc.Latest(context.Background())
	assert.ErrorIs(t, err, leaderboard.ErrNotFound)
}
