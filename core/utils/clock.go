package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatClock renders a solve time as MM:SS using total minutes, so 1h02m03s becomes "62:03".
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// ParseClock parses a "M:SS" solve time as shown on the leaderboard page.
func ParseClock(s string) (time.Duration, error) {
	minStr, secStr, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("invalid solve time %q", s)
	}

	minutes, err := strconv.Atoi(minStr)
	if err != nil || minutes < 0 {
		return 0, fmt.Errorf("invalid minutes in solve time %q", s)
	}
	seconds, err := strconv.Atoi(secStr)
	if err != nil || seconds < 0 || seconds > 59 {
		return 0, fmt.Errorf("invalid seconds in solve time %q", s)
	}

	return time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second, nil
}

// SecondsPtr converts an optional duration to optional whole seconds.
func SecondsPtr(d *time.Duration) *int64 {
	if d == nil {
		return nil
	}
	s := int64(*d / time.Second)
	return &s
}

// DurationPtr converts optional whole seconds to an optional duration.
func DurationPtr(seconds *int64) *time.Duration {
	if seconds == nil {
		return nil
	}
	d := time.Duration(*seconds) * time.Second
	return &d
}
