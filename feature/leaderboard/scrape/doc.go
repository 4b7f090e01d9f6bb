// Package scrape fetches and parses the puzzle leaderboard page.
//
// Client implements the engine's Fetcher: it performs one authenticated GET of the
// leaderboard (the session cookie header is copied verbatim from a logged-in browser),
// retries transient server failures with exponential backoff, and parses the HTML into
// an immutable models.Snapshot.
//
// # Markup
//
// The page is expected to carry the board date in .lbd-type__date and one .lbd-score
// row per participant inside .lbd-board__items. The name is the first text node of
// .lbd-score__name and the solve time ("M:SS") is in .lbd-score__time. A row whose time
// is missing or does not parse is a participant who has not finished yet.
//
// When the page cannot be parsed and an archive is configured, the raw body is saved to
// object storage so the markup change can be inspected later.
package scrape
