package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/prowlers/logtracker/internal/history"
	"github.com/prowlers/logtracker/internal/state"
	"github.com/prowlers/logtracker/internal/watcher"
)

// ErrWatchFailed wraps the error that ended a watch session. The watcher has
// already logged it.
var ErrWatchFailed = errors.New("watch failed")

// follow runs the watcher and folds its events into store one at a time.
// h may be nil.
func (rt *tracker) follow(ctx context.Context, w *watcher.Watcher, store *state.Store, h *history.Store) error {
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	for ev := range w.Events() {
		rt.apply(ctx, w.Session(), ev, store, h)
	}
	if err := <-done; err != nil {
		return fmt.Errorf("%w: %w", ErrWatchFailed, err)
	}
	return nil
}

func (rt *tracker) apply(ctx context.Context, session string, ev watcher.Event, store *state.Store, h *history.Store) {
	switch ev.Kind {
	case watcher.LogRead:
		if !store.MarkRead(ev.ID) {
			return
		}
		rt.console.logRead(rt.catalog, ev.ID, store.Snapshot())
		if h != nil {
			// Events already detected are journaled even after cancellation.
			if _, err := h.RecordDiscovery(context.WithoutCancel(ctx), ev.ID, session); err != nil {
				rt.logger.Warn("record discovery failed", "id", ev.ID, "error", err)
			}
		}
	case watcher.LevelSelected:
		if !store.SelectLevel(ev.Level) {
			return
		}
		rt.console.levelSelected(ev.Level)
		rt.console.unread(rt.catalog, store.Snapshot().Read, ev.Level)
	}
}
