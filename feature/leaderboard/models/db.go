package models

import (
	"time"

	"puzzle-leaderboard/core/utils"
)

// ResultRow represents the 'results' table. Time holds whole seconds and is NULL until the
// participant finishes.
type ResultRow struct {
	Date time.Time `gorm:"column:date;type:date;primaryKey"`
	Name string    `gorm:"column:name;type:varchar(191);primaryKey"`
	Time *int64    `gorm:"column:time"`
}

// TableName overrides the table name.
func (ResultRow) TableName() string {
	return "results"
}

// ToRecord converts the row to a ScoreRecord.
func (r ResultRow) ToRecord() ScoreRecord {
	return ScoreRecord{
		Date: Day(r.Date),
		Name: r.Name,
		Time: utils.DurationPtr(r.Time),
	}
}

// RowFromRecord converts a ScoreRecord to its persisted form.
func RowFromRecord(r ScoreRecord) ResultRow {
	return ResultRow{
		Date: Day(r.Date),
		Name: r.Name,
		Time: utils.SecondsPtr(r.Time),
	}
}
