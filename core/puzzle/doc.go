// Package puzzle defines the configuration of the leaderboard page source.
//
// The settings are read from the PUZZLE_* environment variables (or the legacy
// NYT_COOKIES alias for the session cookie) and consumed by the scraper in
// feature/leaderboard/scrape.
package puzzle
