// Package watcher follows the game's session logs while it runs and reports
// story logs as they are read and expeditions as they are selected.
//
// A Watcher moves through NotWatching → Watching → Failed. Failed is
// terminal; the caller decides whether to start a new Watcher.
//
// On every create or write in the watched directory (non-recursive), a file
// whose name passes logtail.IsSessionLog is reread from the start. Only the
// last display name and the last level selection in that pass are considered:
// a LogRead is emitted when the id is not known yet, a LevelSelected when the
// level differs from the one last emitted. Unreadable files are logged and
// skipped for that round.
//
// Events go out over a channel with a buffer of one, so a slow consumer holds
// up detection rather than losing events.
package watcher
