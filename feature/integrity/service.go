package integrity

import (
	"context"
	"fmt"

	"puzzle-leaderboard/core/storage"
	"puzzle-leaderboard/feature/integrity/checks"
	"puzzle-leaderboard/feature/leaderboard/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	client storage.Client
	bucket string
	region string
	logger *zap.Logger
	db     *gorm.DB
}

// NewService creates a new integrity service. client may be nil when storage is disabled.
func NewService(client storage.Client, cfg storage.Config, logger *zap.Logger, db *gorm.DB) *Service {
	return &Service{
		client: client,
		bucket: cfg.Bucket,
		region: cfg.Region,
		logger: logger,
		db:     db,
	}
}

// CheckSchema compares the results table with its model.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db, models.ResultRow{})
}

// FixSchema migrates the results table.
func (s *Service) FixSchema(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}
	if err := s.db.WithContext(ctx).AutoMigrate(&models.ResultRow{}); err != nil {
		return fmt.Errorf("failed to migrate results table: %w", err)
	}
	s.logger.Info("Migrated results table")
	return nil
}

// CheckArchive reports on the raw page archive bucket.
func (s *Service) CheckArchive(ctx context.Context) (*checks.ArchiveReport, error) {
	return checks.CheckArchive(ctx, s.client, s.bucket)
}

// FixArchive creates the archive bucket.
func (s *Service) FixArchive(ctx context.Context) error {
	return checks.FixArchive(ctx, s.client, s.bucket, s.region, s.logger)
}
