package reconcile

import (
	"time"

	"puzzle-leaderboard/core/metrics"
	"puzzle-leaderboard/feature/leaderboard/models"
)

// DefaultLookback is how far back channel history is scanned for an existing message.
const DefaultLookback = 72 * time.Hour

// ActionType is the decision taken for one snapshot.
type ActionType string

const (
	// ActionNone means nothing visible changed.
	ActionNone ActionType = "none"
	// ActionCreate means a new day started; the day's message is sent, or edited if it
	// already exists.
	ActionCreate ActionType = "create"
	// ActionUpdate means the same day's board changed; the day's message is edited, or
	// sent if it can't be found.
	ActionUpdate ActionType = "update"
)

// Config holds the engine settings.
type Config struct {
	// ChannelID is the channel the leaderboard is posted to.
	ChannelID string
	// Mention is prepended to the completion notification (e.g. "@here" or a role mention).
	Mention string
	// Lookback bounds the history scan. Zero means DefaultLookback.
	Lookback time.Duration
}

// Outcome describes what a reconciliation pass did.
type Outcome struct {
	// TickID correlates the pass with its log lines.
	TickID string `json:"tick_id,omitempty"`

	// Action is the decision taken.
	Action ActionType `json:"action"`

	// Date is the snapshot date.
	Date time.Time `json:"date"`

	// Changed holds the previous state of every record whose time changed.
	Changed []models.ScoreRecord `json:"changed"`

	// MessageID is the message that was sent or edited, empty for ActionNone.
	MessageID string `json:"message_id,omitempty"`

	// Sent is true when a new leaderboard message was posted.
	Sent bool `json:"sent"`

	// Edited is true when an existing leaderboard message was edited.
	Edited bool `json:"edited"`

	// Notified is true when the completion notification was sent.
	Notified bool `json:"notified"`

	// Participants is the number of scores on the snapshot.
	Participants int `json:"participants"`
}

// Pass summarizes the outcome for logging and metrics. It is nil for a nil Outcome.
func (o *Outcome) Pass() *metrics.Pass {
	if o == nil {
		return nil
	}
	return &metrics.Pass{
		ID:       o.TickID,
		Action:   string(o.Action),
		Sent:     o.Sent,
		Edited:   o.Edited,
		Notified: o.Notified,

		Participants: o.Participants,
	}
}
