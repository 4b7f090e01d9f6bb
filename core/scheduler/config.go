package scheduler

import "time"

// Config holds configuration for the job loop.
type Config struct {
	// IntervalSeconds is the time between passes.
	IntervalSeconds int `mapstructure:"interval_seconds" default:"120"`
	// ContinueOnError keeps the loop running after a failed pass.
	ContinueOnError bool `mapstructure:"continue_on_error" default:"true"`
}

// Interval returns the pass interval, falling back to two minutes.
func (c Config) Interval() time.Duration {
	if c.IntervalSeconds <= 0 {
		return 120 * time.Second
	}
	return time.Duration(c.IntervalSeconds) * time.Second
}
