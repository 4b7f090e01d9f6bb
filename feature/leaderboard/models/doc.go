// Package models defines the leaderboard data model: the per-participant ScoreRecord,
// the immutable Snapshot produced by a single fetch of the leaderboard page, and the
// ResultRow persisted in the results table.
//
// A ScoreRecord is identified by its (date, name) pair. Dates are calendar dates and are
// always normalized with Day so that comparisons never depend on a time-of-day component.
package models
