// Package config provides configuration management for the leaderboard service.
//
// It utilizes Viper for loading configuration from environment variables and an optional
// .env file. Defaults come from the `default` struct tags of each section.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: optional HTTP API (port, API key, refresh rate limit)
//   - Log: logging level and format
//   - Database: SQLite file or MySQL connection details
//   - Storage: S3/MinIO settings for the raw page archive
//   - Puzzle: leaderboard URL, session cookies, retry policy
//   - Discord: bot token, leaderboard and error channels, mention, history window
//   - Schedule: pass interval and error policy
//
// Every key maps to an environment variable by upper-casing it and replacing dots with
// underscores (discord.channel_id -> DISCORD_CHANNEL_ID). The variable names of the
// first deployment (NYT_COOKIES, DISCORD_BOT_TOKEN, DISCORD_DTS_CHANNEL_ID,
// DISCORD_ERR_CHANNEL_ID) are still honored as fallbacks.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Schedule.Interval())
package config
