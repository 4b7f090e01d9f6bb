package checks

import (
	"context"
	"fmt"

	"puzzle-leaderboard/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ArchiveReport describes the raw page archive bucket.
type ArchiveReport struct {
	Bucket  string `json:"bucket"`
	Exists  bool   `json:"exists"`
	Objects int    `json:"objects"`
}

// CheckArchive reports whether the archive bucket exists and how many objects it holds.
func CheckArchive(ctx context.Context, client storage.Client, bucket string) (*ArchiveReport, error) {
	if client == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}

	report := &ArchiveReport{Bucket: bucket, Exists: exists}
	if !exists {
		return report, nil
	}

	for obj := range client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list bucket %s: %w", bucket, obj.Err)
		}
		report.Objects++
	}
	return report, nil
}

// FixArchive creates the archive bucket.
func FixArchive(ctx context.Context, client storage.Client, bucket, region string, logger *zap.Logger) error {
	if client == nil {
		return fmt.Errorf("storage is not configured")
	}
	if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		logger.Error("Failed to create bucket", zap.String("bucket", bucket), zap.Error(err))
		return err
	}
	logger.Info("Created archive bucket", zap.String("bucket", bucket))
	return nil
}
