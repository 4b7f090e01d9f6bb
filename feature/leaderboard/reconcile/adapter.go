package reconcile

import (
	"context"
	"iter"
	"time"

	"puzzle-leaderboard/core/discord"
	"puzzle-leaderboard/feature/leaderboard/models"
)

// ResultStore persists observed scores and reports what changed.
type ResultStore interface {
	// UpdateScores merges scores into the store in a single transaction and returns copies
	// of the previous state of every record whose time changed. New rows are inserted but
	// not reported.
	UpdateScores(ctx context.Context, scores []models.ScoreRecord) ([]models.ScoreRecord, error)

	// MostRecentDate returns the latest date with any stored row, or nil for an empty store.
	MostRecentDate(ctx context.Context) (*time.Time, error)
}

// Fetcher produces a fresh snapshot of the leaderboard page.
type Fetcher interface {
	Fetch(ctx context.Context) (*models.Snapshot, error)
}

// Message is a chat message as seen by the engine.
type Message = discord.Message

var _ Transport = (*discord.Transport)(nil)

// Transport is the chat channel the leaderboard is posted to.
type Transport interface {
	// SelfID returns the identity messages sent by this process are authored with.
	SelfID(ctx context.Context) (string, error)

	// History lazily yields messages posted to channelID after the given time, newest
	// first. Iteration stops at the first error.
	History(ctx context.Context, channelID string, after time.Time) iter.Seq2[Message, error]

	// Send posts a new message.
	Send(ctx context.Context, channelID, content string) (*Message, error)

	// Edit replaces the content of an existing message.
	Edit(ctx context.Context, channelID, messageID, content string) (*Message, error)
}

// RenderFunc renders the leaderboard message for a date.
type RenderFunc func(date time.Time, scores []models.ScoreRecord) string
