// Package catalog holds the static story log table and the lookups that map
// text found in session logs back to it.
//
// The table is loaded once at startup, either from the YAML dataset compiled
// into the binary or from an override file, and is never mutated afterwards.
// Lookups walk entries in dataset order, so a display name that appears under
// two ids always resolves to the first one.
//
// LevelCode is independent of the table: it decodes the expedition token the
// game writes when a level is selected into the code players see on screen.
package catalog
