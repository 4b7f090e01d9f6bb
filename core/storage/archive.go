package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
)

// Archive stores raw documents under time-stamped keys and expires them after a
// retention period.
type Archive struct {
	client    Client
	bucket    string
	retention time.Duration
	now       func() time.Time
}

// NewArchive creates an archive in cfg.Bucket.
func NewArchive(client Client, cfg Config) *Archive {
	return &Archive{
		client:    client,
		bucket:    cfg.Bucket,
		retention: time.Duration(cfg.RetentionDays) * 24 * time.Hour,
		now:       time.Now,
	}
}

// Bucket returns the bucket the archive writes to.
func (a *Archive) Bucket() string {
	return a.bucket
}

// Save uploads data under prefix/<timestamp><ext> and returns the object key.
func (a *Archive) Save(ctx context.Context, prefix, ext, contentType string, data []byte) (string, error) {
	key := path.Join(prefix, a.now().UTC().Format("20060102T150405.000000000Z")+ext)

	_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", key, err)
	}
	return key, nil
}

// Prune removes objects under prefix older than the retention period and returns how
// many were removed. It does nothing when retention is disabled.
func (a *Archive) Prune(ctx context.Context, prefix string) (int, error) {
	if a.retention <= 0 {
		return 0, nil
	}
	cutoff := a.now().Add(-a.retention)

	// Cancelling stops the client's producers when we return before draining.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var stale []minio.ObjectInfo
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return 0, fmt.Errorf("failed to list archive: %w", obj.Err)
		}
		if obj.LastModified.Before(cutoff) {
			stale = append(stale, obj)
		}
	}
	if len(stale) == 0 {
		return 0, nil
	}

	objectsCh := make(chan minio.ObjectInfo, len(stale))
	for _, obj := range stale {
		objectsCh <- obj
	}
	close(objectsCh)

	for rErr := range a.client.RemoveObjects(ctx, a.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		return 0, fmt.Errorf("failed to remove %s: %w", rErr.ObjectName, rErr.Err)
	}
	return len(stale), nil
}
