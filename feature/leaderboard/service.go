package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"puzzle-leaderboard/feature/leaderboard/models"
	"puzzle-leaderboard/feature/leaderboard/reconcile"

	"go.uber.org/zap"
)

// ErrNotFound is returned when no results are stored for the requested date.
var ErrNotFound = errors.New("no results stored")

// Reader is the read side of the result store.
type Reader interface {
	MostRecentDate(ctx context.Context) (*time.Time, error)
	Scores(ctx context.Context, date time.Time) ([]models.ScoreRecord, error)
}

// Refresher runs a full reconciliation pass.
type Refresher interface {
	Tick(ctx context.Context) (*reconcile.Outcome, error)
}

// Service answers leaderboard queries.
type Service struct {
	reader    Reader
	fetcher   reconcile.Fetcher
	refresher Refresher
	preview   *previewCache
	logger    *zap.Logger
}

// NewService creates a leaderboard service. fetcher and refresher may be nil, which
// disables previews and manual refreshes.
func NewService(reader Reader, fetcher reconcile.Fetcher, refresher Refresher, previewTTL time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		reader:    reader,
		fetcher:   fetcher,
		refresher: refresher,
		preview:   newPreviewCache(previewTTL),
		logger:    logger,
	}
}

// Latest returns the board for the most recent stored date.
func (s *Service) Latest(ctx context.Context) (*Board, error) {
	date, err := s.reader.MostRecentDate(ctx)
	if err != nil {
		return nil, err
	}
	if date == nil {
		return nil, ErrNotFound
	}
	return s.ByDate(ctx, *date)
}

// ByDate returns the stored board for date.
func (s *Service) ByDate(ctx context.Context, date time.Time) (*Board, error) {
	scores, err := s.reader.Scores(ctx, date)
	if err != nil {
		return nil, err
	}
	if len(scores) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNotFound, models.Day(date).Format(time.DateOnly))
	}
	return NewBoard(date, scores), nil
}

// Preview fetches the live board without storing or posting it.
func (s *Service) Preview(ctx context.Context) (*Board, error) {
	if s.fetcher == nil {
		return nil, errors.New("live preview is not configured")
	}
	snap, err := s.preview.get(ctx, s.fetcher.Fetch)
	if err != nil {
		return nil, err
	}
	return NewBoard(snap.Date(), snap.Scores()), nil
}

// Refresh runs a reconciliation pass immediately.
func (s *Service) Refresh(ctx context.Context) (*reconcile.Outcome, error) {
	if s.refresher == nil {
		return nil, errors.New("manual refresh is not configured")
	}
	out, err := s.refresher.Tick(ctx)
	if err == nil {
		s.preview.invalidate()
	}
	return out, err
}
