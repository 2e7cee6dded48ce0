package scheduler

// Package scheduler runs the recurring alert evaluation cycle.
// Every interval it:
// - Loads the full alert set from the store
// - Re-evaluates each alert against the quote gateway, fanned out with
//   bounded concurrency and per-alert failure isolation
// - Notifies triggered users by direct message
// - Deletes successfully notified alerts at the end of the cycle
//
// The cycle implementation lives in jobs.go
