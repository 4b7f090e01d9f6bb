package leaderboard

import (
	"time"

	"puzzle-leaderboard/core/utils"
	"puzzle-leaderboard/feature/leaderboard/models"
)

// Entry is one ranked row of a board.
type Entry struct {
	Rank    int    `json:"rank"`
	Name    string `json:"name"`
	Time    string `json:"time"`
	Seconds *int64 `json:"seconds"`
}

// Board is a day's leaderboard as returned by the API.
type Board struct {
	Date     string  `json:"date"`
	Title    string  `json:"title"`
	Complete bool    `json:"complete"`
	Entries  []Entry `json:"entries"`
	Message  string  `json:"message"`
}

// NewBoard builds a board from ranked scores.
func NewBoard(date time.Time, scores []models.ScoreRecord) *Board {
	b := &Board{
		Date:     models.Day(date).Format(time.DateOnly),
		Title:    models.FormatDate(date),
		Complete: len(scores) > 0,
		Entries:  make([]Entry, len(scores)),
		Message:  Render(date, scores),
	}
	for i, s := range scores {
		b.Entries[i] = Entry{
			Rank:    i + 1,
			Name:    s.Name,
			Time:    formatTime(s.Time),
			Seconds: utils.SecondsPtr(s.Time),
		}
		if s.Time == nil {
			b.Complete = false
		}
	}
	return b
}
