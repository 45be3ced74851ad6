// Package config loads the tracker's settings.
//
// # Resolution Order
//
//  1. Built-in defaults (Defaults)
//  2. The TOML file at the given path, or ~/.config/logtracker/config.toml
//  3. LOGTRACKER_* environment variables
//
// Command line flags are applied by the caller on top of the result.
//
// A missing config file is not an error. Empty values in the file keep the
// defaults. Paths starting with "~" are expanded to the home directory and
// all paths are made absolute.
//
// # TOML Format
//
//	data_path = "~/Games/GTFO/LocalLow/10 Chambers Collective/GTFO"
//	use_remote = true
//	title_id = "8f9"
//	steam_ticket = "14000000..."
//	remote_timeout = "10s"
//	remote_attempts = 3
//	history_path = "~/.local/share/logtracker/history.db"
//	catalog_path = ""
//
// # Environment
//
//	LOGTRACKER_DATA_PATH, LOGTRACKER_USE_REMOTE, LOGTRACKER_TITLE_ID,
//	LOGTRACKER_STEAM_TICKET, LOGTRACKER_REMOTE_TIMEOUT,
//	LOGTRACKER_REMOTE_ATTEMPTS, LOGTRACKER_HISTORY_PATH,
//	LOGTRACKER_CATALOG_PATH
//
// An empty data path is resolved later from the Steam installation; see
// package steam.
package config
