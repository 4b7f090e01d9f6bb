package models

import (
	"sort"
	"time"
)

// DateLayout is the layout used for the leaderboard date, both on the page and in posted
// messages (e.g. "Monday, May 8, 2023").
const DateLayout = "Monday, January 2, 2006"

// Day normalizes t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a date the way it appears in a posted leaderboard message.
// Message lookup relies on this output being stable for a given date.
func FormatDate(t time.Time) string {
	return Day(t).Format(DateLayout)
}

// ParseDate parses a date in DateLayout.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}

// ScoreRecord is one participant's result for one date.
type ScoreRecord struct {
	Date time.Time      `json:"date"`
	Name string         `json:"name"`
	Time *time.Duration `json:"time,omitempty"` // nil until the participant finishes
}

// Completed reports whether the participant has a solve time.
func (r ScoreRecord) Completed() bool {
	return r.Time != nil
}

// Clone returns a deep copy of the record.
func (r ScoreRecord) Clone() ScoreRecord {
	c := r
	if r.Time != nil {
		t := *r.Time
		c.Time = &t
	}
	return c
}

// SameTime reports whether two optional solve times are equal.
func SameTime(a, b *time.Duration) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Snapshot is one fetched leaderboard page. Build it with NewSnapshot.
type Snapshot struct {
	date   time.Time
	scores []ScoreRecord
}

// NewSnapshot builds an immutable snapshot for date. Records are copied, stamped with the
// snapshot date and ranked ascending by time; records without a time sort last and keep
// their fetch order.
func NewSnapshot(date time.Time, scores []ScoreRecord) *Snapshot {
	day := Day(date)
	ranked := make([]ScoreRecord, len(scores))
	for i, s := range scores {
		ranked[i] = s.Clone()
		ranked[i].Date = day
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i].Time, ranked[j].Time
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})

	return &Snapshot{date: day, scores: ranked}
}

// Date is the day the snapshot represents.
func (s *Snapshot) Date() time.Time {
	return s.date
}

// Scores returns a copy of the ranked scores.
func (s *Snapshot) Scores() []ScoreRecord {
	out := make([]ScoreRecord, len(s.scores))
	for i, r := range s.scores {
		out[i] = r.Clone()
	}
	return out
}

// Len is the number of participants on the board.
func (s *Snapshot) Len() int {
	return len(s.scores)
}

// Complete reports whether every tracked participant has finished. An empty board is
// never complete.
func (s *Snapshot) Complete() bool {
	if len(s.scores) == 0 {
		return false
	}
	for _, r := range s.scores {
		if !r.Completed() {
			return false
		}
	}
	return true
}
