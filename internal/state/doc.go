// Package state holds the read state the tracker shows to the player.
//
// # Overview
//
// ReadSet is a plain set of story log ids. Store wraps one ReadSet together
// with the source it was reconciled from and the currently selected level.
//
// The reconciler produces the initial set once; after that the application
// loop folds watcher events into the Store one at a time. Ids are only ever
// added. Readers take a Snapshot, which deep copies the set so it can be used
// without holding the lock.
//
//	reconcile.BuildInitialState ──Reset──→ Store ←──MarkRead/SelectLevel── app loop ←── watcher events
//	                                         │
//	                                         └──Snapshot──→ console / journal
package state
