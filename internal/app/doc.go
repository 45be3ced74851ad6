// Package app is the composition root of the tracker.
//
// # Overview
//
// It wires configuration, the story log catalog, the reconciler, the live
// watcher, the read state store and the discovery journal together. The CLI
// calls one of three entry points:
//
//   - Run: reconcile once, then follow the game's logs until cancelled
//   - Scan: reconcile once, print progress and unread logs, exit
//   - History: print the discovery journal
//
// # Startup
//
//  1. Load config (file, environment, then flags from Options)
//  2. Resolve the game data folder, detecting it through Steam when unset
//  3. Load the catalog (bundled unless catalog_path is set)
//  4. Build the initial read set: PlayFab first when use_remote is set, the
//     newest session log otherwise or on any remote failure
//  5. Record the baseline in the journal (failures only warn)
//
// # Data Flow
//
//	reconcile ──initial set──→ state.Store ──snapshot──→ console
//	                              ↑
//	watcher ──Event (chan, depth 1)──→ follow loop ──→ journal
//
// The follow loop is the only writer of the store after startup; it applies
// events one at a time in the order the watcher detected them.
//
// A watch failure ends Run with an error wrapping ErrWatchFailed; the watcher
// has logged it already. Cancellation ends it cleanly.
package app
