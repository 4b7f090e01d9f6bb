// Package scheduler runs the reconciliation job on a fixed interval.
//
// Run executes the task once immediately and then on every tick of a time.Ticker. Ticks
// are processed by a single goroutine and each runs to completion before the next is
// read; a tick that fires while one is still running is dropped by the ticker, so passes
// never overlap.
//
// Every failed pass is logged, counted, and handed to a Reporter (the Discord error
// channel in production). A failure to report is logged and otherwise ignored. With
// Config.ContinueOnError the loop keeps going after a failure; without it Run returns
// the first error. RunOnce performs a single pass with the same bookkeeping,
// and Execute does the same for an arbitrary task such as a manually triggered refresh.
package scheduler
