// Package logtail locates and reads the session logs the game writes to its
// user data folder.
//
// # File Selection
//
// The game writes one log per session named
//
//	GTFO.<YYYY>.<MM>.<DD>.<HH>.<mm>.<ss>_<free text>.txt
//
// where the free text usually ends in a role tag (CLIENT, MASTER or
// NETSTATUS). SelectLogFile parses the embedded timestamp of every matching
// name and returns the newest file. Names with impossible dates are skipped
// rather than failing the scan. When no session log is present it falls back
// to Player.log in the same directory, and fails with ErrNoLogSource when that
// is missing too.
//
// IsSessionLog is the looser check used while watching: the prefix and a full
// dotted timestamp anywhere in the name are enough.
//
// # Reading
//
// Scan streams a file line by line through a callback so callers can apply
// pattern rules without holding the whole file in memory. Lines up to 4MB are
// supported.
package logtail
