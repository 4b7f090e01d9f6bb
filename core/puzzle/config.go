package puzzle

// Config holds configuration for the leaderboard page source.
type Config struct {
	// URL is the leaderboard page.
	URL string `mapstructure:"url" default:"https://www.nytimes.com/puzzles/leaderboards"`
	// Cookies is the raw Cookie header of an authenticated session.
	Cookies string `mapstructure:"cookies" default:""`
	// TimeoutSeconds bounds each HTTP attempt.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// MaxRetries is how many times a transient failure is retried.
	MaxRetries int `mapstructure:"max_retries" default:"5"`
	// UserAgent is sent with every request.
	UserAgent string `mapstructure:"user_agent" default:"puzzle-leaderboard/1.0"`
}
