package server

import "time"

// Config holds configuration for the HTTP server.
type Config struct {
	// Enabled starts the HTTP API alongside the scheduler.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables auth.
	ApiKey string `mapstructure:"api_key" default:""`
	// RefreshPerMinute limits manual refresh requests.
	RefreshPerMinute int `mapstructure:"refresh_per_minute" default:"2"`
	// PreviewCacheSeconds is how long a live preview is reused.
	PreviewCacheSeconds int `mapstructure:"preview_cache_seconds" default:"60"`
}

// PreviewTTL returns the preview cache lifetime.
func (c Config) PreviewTTL() time.Duration {
	if c.PreviewCacheSeconds <= 0 {
		return 0
	}
	return time.Duration(c.PreviewCacheSeconds) * time.Second
}

// RefreshInterval returns the minimum spacing between manual refreshes.
func (c Config) RefreshInterval() time.Duration {
	if c.RefreshPerMinute <= 0 {
		return time.Minute
	}
	return time.Minute / time.Duration(c.RefreshPerMinute)
}
