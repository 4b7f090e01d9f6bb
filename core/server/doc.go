// Package server holds the HTTP server configuration.
//
// The HTTP API is optional: the scheduler runs without it. When enabled it exposes
// health and metrics endpoints, read-only views of the stored leaderboard, a live
// preview and a rate-limited manual refresh.
//
// # Configuration
//
// The Config struct defines the HTTP port, the API key, the manual refresh rate and the
// preview cache lifetime.
package server
