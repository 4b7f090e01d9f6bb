package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "puzzle_leaderboard.sqlite", cfg.Database.Name)
	assert.Equal(t, 120, cfg.Schedule.IntervalSeconds)
	assert.True(t, cfg.Schedule.ContinueOnError)
	assert.Equal(t, "@here", cfg.Discord.NotifyMention)
	assert.Equal(t, 72, cfg.Discord.LookbackHours)
	assert.Equal(t, 5, cfg.Puzzle.MaxRetries)
	assert.Equal(t, "https://www.nytimes.com/puzzles/leaderboards", cfg.Puzzle.URL)
	assert.False(t, cfg.Server.Enabled)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.False(t, cfg.Storage.Enabled)
	assert.Equal(t, "leaderboard-archive", cfg.Storage.Bucket)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("DISCORD_CHANNEL_ID", "123")
	t.Setenv("SCHEDULE_INTERVAL_SECONDS", "60")
	t.Setenv("SCHEDULE_CONTINUE_ON_ERROR", "false")
	t.Setenv("DATABASE_DRIVER", "mysql")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "123", cfg.Discord.ChannelID)
	assert.Equal(t, 60, cfg.Schedule.IntervalSeconds)
	assert.False(t, cfg.Schedule.ContinueOnError)
	assert.Equal(t, "mysql", cfg.Database.Driver)
}

func TestLoadConfig_LegacyEnv(t *testing.T) {
	t.Setenv("NYT_COOKIES", "nyt-s=legacy")
	t.Setenv("DISCORD_BOT_TOKEN", "legacy-token")
	t.Setenv("DISCORD_DTS_CHANNEL_ID", "111")
	t.Setenv("DISCORD_ERR_CHANNEL_ID", "222")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "nyt-s=legacy", cfg.Puzzle.Cookies)
	assert.Equal(t, "legacy-token", cfg.Discord.Token)
	assert.Equal(t, "111", cfg.Discord.ChannelID)
	assert.Equal(t, "222", cfg.Discord.ErrorChannelID)
	assert.NoError(t, cfg.ValidateJob())
}

func TestLoadConfig_CanonicalBeatsLegacy(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "new-token")
	t.Setenv("DISCORD_BOT_TOKEN", "legacy-token")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "new-token", cfg.Discord.Token)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DISCORD_NOTIFY_MENTION=@puzzlers\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("DISCORD_NOTIFY_MENTION") })

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "@puzzlers", cfg.Discord.NotifyMention)
}

func TestValidateJob(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	err = cfg.ValidateJob()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PUZZLE_COOKIES")
	assert.Contains(t, err.Error(), "DISCORD_TOKEN")
	assert.Contains(t, err.Error(), "DISCORD_CHANNEL_ID")
	assert.NotContains(t, err.Error(), "PUZZLE_URL")
}
