package discord

import "time"

// Config holds configuration for the Discord bot.
type Config struct {
	// Token is the bot token, without the "Bot " prefix.
	Token string `mapstructure:"token" default:""`
	// ChannelID is the channel the leaderboard is posted to.
	ChannelID string `mapstructure:"channel_id" default:""`
	// ErrorChannelID receives error reports. Empty disables reporting.
	ErrorChannelID string `mapstructure:"error_channel_id" default:""`
	// NotifyMention prefixes the completion notification (e.g. "@here").
	NotifyMention string `mapstructure:"notify_mention" default:"@here"`
	// LookbackHours is how far back channel history is searched for the day's message.
	LookbackHours int `mapstructure:"lookback_hours" default:"72"`
}

// Lookback returns the history window as a duration.
func (c Config) Lookback() time.Duration {
	return time.Duration(c.LookbackHours) * time.Hour
}
