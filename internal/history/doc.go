// Package history keeps a sqlite journal of when each story log was first
// seen by the tracker, either in a startup reconciliation or live.
package history
