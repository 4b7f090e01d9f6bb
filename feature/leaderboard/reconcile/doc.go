// Package reconcile decides, for every freshly fetched leaderboard snapshot, what has to
// happen in the chat channel and drives the collaborators that make it happen.
//
// # Decision
//
// Each pass answers three questions:
//
//  1. Has the day rolled over? The most recent date in the ResultStore is read BEFORE
//     the snapshot is persisted; if it differs from the snapshot date (or the store is
//     empty) the pass is a Create.
//  2. Did any score change? The store reports the previous state of every record whose
//     time changed; a non-empty diff on the same day is an Update.
//  3. Otherwise nothing visible changed and the pass is a no-op.
//
// # Message resolution
//
// Create and Update both resolve the target message the same way: the channel history
// of the last three days is scanned newest-first for a message authored by the bot whose
// content contains the formatted snapshot date. A match is edited in place, otherwise a
// new message is sent. Restarting mid-day therefore edits the existing message instead
// of posting a duplicate. Matching on content is fragile if the date string shows up in
// unrelated bot messages, which is why the completion notification never includes it.
//
// # Completion notification
//
// After a Create or Update, if every participant on the board has a time, a follow-up
// message mentioning the configured audience is sent. There is no de-duplication: the
// notification fires on every pass where the board changed and is complete.
//
// # Usage
//
//	engine := reconcile.NewEngine(reconcile.Config{
//	    ChannelID: cfg.Discord.ChannelID,
//	    Mention:   cfg.Discord.NotifyMention,
//	}, store, transport, fetcher, leaderboard.Render, logger)
//
//	outcome, err := engine.Tick(ctx)
package reconcile
