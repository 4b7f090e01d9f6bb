package config

import (
	"errors"
	"reflect"
	"strings"

	"puzzle-leaderboard/core/database"
	"puzzle-leaderboard/core/discord"
	"puzzle-leaderboard/core/logger"
	"puzzle-leaderboard/core/puzzle"
	"puzzle-leaderboard/core/scheduler"
	"puzzle-leaderboard/core/server"
	"puzzle-leaderboard/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// Puzzle holds configuration for fetching the leaderboard page.
	Puzzle puzzle.Config `mapstructure:"puzzle"`
	// Discord holds configuration for the chat transport.
	Discord discord.Config `mapstructure:"discord"`
	// Schedule holds configuration for the job loop.
	Schedule scheduler.Config `mapstructure:"schedule"`
}

// legacyEnv maps config keys to environment variable names used by earlier deployments.
var legacyEnv = map[string]string{
	"puzzle.cookies":           "NYT_COOKIES",
	"discord.token":            "DISCORD_BOT_TOKEN",
	"discord.channel_id":       "DISCORD_DTS_CHANNEL_ID",
	"discord.error_channel_id": "DISCORD_ERR_CHANNEL_ID",
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// 2. Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// 3. Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Legacy names are consulted after the canonical one
	for key, legacy := range legacyEnv {
		canonical := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, canonical, legacy); err != nil {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// ValidateJob reports missing settings required to fetch and post the leaderboard.
func (c *Config) ValidateJob() error {
	var errs []error
	if c.Puzzle.URL == "" {
		errs = append(errs, errors.New("PUZZLE_URL is not set"))
	}
	if c.Puzzle.Cookies == "" {
		errs = append(errs, errors.New("PUZZLE_COOKIES (or NYT_COOKIES) is not set"))
	}
	if c.Discord.Token == "" {
		errs = append(errs, errors.New("DISCORD_TOKEN (or DISCORD_BOT_TOKEN) is not set"))
	}
	if c.Discord.ChannelID == "" {
		errs = append(errs, errors.New("DISCORD_CHANNEL_ID (or DISCORD_DTS_CHANNEL_ID) is not set"))
	}
	return errors.Join(errs...)
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
