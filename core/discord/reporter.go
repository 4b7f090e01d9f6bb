package discord

import (
	"context"
	"fmt"
	"unicode/utf8"
)

// maxContent is Discord's message length limit in characters.
const maxContent = 2000

// ErrorReporter posts job failures to an error channel.
type ErrorReporter struct {
	transport *Transport
	channelID string
}

// NewErrorReporter creates a reporter. An empty channelID makes Report a no-op.
func NewErrorReporter(transport *Transport, channelID string) *ErrorReporter {
	return &ErrorReporter{transport: transport, channelID: channelID}
}

// Report posts err to the error channel.
func (r *ErrorReporter) Report(ctx context.Context, err error) error {
	if r.channelID == "" || err == nil {
		return nil
	}
	content := truncate(fmt.Sprintf("⚠️ Leaderboard update failed:\n```\n%v\n```", err), maxContent)
	_, sendErr := r.transport.Send(ctx, r.channelID, content)
	return sendErr
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-1]) + "…"
}
