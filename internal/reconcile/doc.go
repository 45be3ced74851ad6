// Package reconcile computes the read state the tracker starts from.
//
// Two strategies exist. Local picks the newest session log in the game's data
// folder and applies the summary and display name rules to every line.
// Remote asks PlayFab for the persisted id list first; any failure there
// (no Steam ticket, transport errors, API errors, timeouts) is logged and the
// Local path runs instead. The local path is the terminal fallback, so its
// errors are the only ones BuildInitialState returns.
//
// The remote fetch is two sequential round trips. Each gets its own timeout
// and a bounded exponential retry; PlayFab API errors are not retried. The
// Steam ticket is cancelled once regardless of outcome.
package reconcile
