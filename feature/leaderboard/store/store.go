package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"puzzle-leaderboard/feature/leaderboard/models"
	"puzzle-leaderboard/feature/leaderboard/reconcile"

	"gorm.io/gorm"
)

var _ reconcile.ResultStore = (*Store)(nil)

// Store is a GORM-backed result store.
type Store struct {
	db *gorm.DB
}

// New creates a Store over db.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the results table.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&models.ResultRow{}); err != nil {
		return fmt.Errorf("%w: migrating results table: %w", reconcile.ErrStore, err)
	}
	return nil
}

// UpdateScores merges scores into the table and returns the previous values of the
// records whose time changed. The whole batch commits or none of it does.
func (s *Store) UpdateScores(ctx context.Context, scores []models.ScoreRecord) ([]models.ScoreRecord, error) {
	var previous []models.ScoreRecord

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, rec := range scores {
			incoming := models.RowFromRecord(rec)

			var stored models.ResultRow
			err := tx.Where("date = ? AND name = ?", incoming.Date, incoming.Name).Take(&stored).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if err := tx.Create(&incoming).Error; err != nil {
					return fmt.Errorf("inserting %s: %w", incoming.Name, err)
				}
				continue
			}
			if err != nil {
				return fmt.Errorf("looking up %s: %w", incoming.Name, err)
			}

			if incoming.Time == nil || models.SameTime(stored.ToRecord().Time, incoming.ToRecord().Time) {
				continue
			}

			previous = append(previous, stored.ToRecord())
			err = tx.Model(&models.ResultRow{}).
				Where("date = ? AND name = ?", incoming.Date, incoming.Name).
				Update("time", *incoming.Time).Error
			if err != nil {
				return fmt.Errorf("updating %s: %w", incoming.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", reconcile.ErrStore, err)
	}
	return previous, nil
}

// MostRecentDate returns the latest date with any stored result, or nil when the table
// is empty.
func (s *Store) MostRecentDate(ctx context.Context) (*time.Time, error) {
	var row models.ResultRow
	err := s.db.WithContext(ctx).Order("date DESC").Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading most recent date: %w", reconcile.ErrStore, err)
	}
	d := models.Day(row.Date)
	return &d, nil
}

// Scores returns the stored results for date, fastest first with unfinished participants
// last.
func (s *Store) Scores(ctx context.Context, date time.Time) ([]models.ScoreRecord, error) {
	var rows []models.ResultRow
	err := s.db.WithContext(ctx).
		Where("date = ?", models.Day(date)).
		Order("time IS NULL, time, name").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: reading scores: %w", reconcile.ErrStore, err)
	}

	out := make([]models.ScoreRecord, len(rows))
	for i, r := range rows {
		out[i] = r.ToRecord()
	}
	return out, nil
}
