// Package leaderboard exposes the stored and live leaderboard.
//
// Render produces the chat message for a day's board and is the single place the
// message format is defined. Service answers read queries against the result store,
// builds live previews (fetched from the site, neither stored nor posted) and triggers
// an out-of-schedule reconciliation pass. Handler maps these onto HTTP routes.
//
// # Routes
//
//	GET  /leaderboard/latest    board for the most recent stored date
//	GET  /leaderboard/preview   live board, cached briefly
//	GET  /leaderboard/:date     board for a date (YYYY-MM-DD)
//	POST /leaderboard/refresh   run one reconciliation pass now (rate limited)
//
// Live previews share one in-flight fetch between concurrent callers and are reused
// until the configured TTL expires.
package leaderboard
