// Package store persists leaderboard results with GORM.
//
// Store is the result store behind the reconciliation engine. Each UpdateScores call runs
// in a single transaction and reports the records whose solve time changed, as they were
// before the change. New participants are inserted silently and a missing time never
// overwrites a recorded one, so the table only ever gains information.
package store
