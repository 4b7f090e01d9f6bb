// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the narrow Client interface so the rest of the
// application can be tested against core/storage/mocks. Both AWS S3 and self-hosted
// MinIO are supported.
//
// # Archive
//
// Archive keeps raw leaderboard pages that failed to parse, keyed by capture time under
// a prefix, so markup changes on the source site can be diagnosed after the fact. Prune
// removes objects older than Config.RetentionDays.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	archive := storage.NewArchive(client, cfg.Storage)
//	key, err := archive.Save(ctx, "pages", ".html", "text/html", body)
package storage
