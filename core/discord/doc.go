// Package discord implements the chat transport on top of the Discord REST API.
//
// Only REST calls are made (no gateway connection): resolving the bot's own user,
// paging through channel history, sending and editing messages. Every call carries the
// caller's context through discordgo.WithContext, and discordgo's built-in rate limiter
// handles 429 responses.
//
// # History
//
// Transport.History returns a lazy iterator over a channel's messages, newest first.
// Pages of up to 100 messages are requested on demand and iteration stops at the first
// message older than the requested cut-off, so a scan that finds its target early costs
// a single request.
//
// # Error reporting
//
// ErrorReporter posts failures of the scheduled job to a separate channel so operators
// see them without reading logs.
package discord
