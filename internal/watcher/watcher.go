package watcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/oklog/ulid/v2"

	"github.com/prowlers/logtracker/internal/extract"
	"github.com/prowlers/logtracker/internal/logtail"
	"github.com/prowlers/logtracker/internal/state"
)

// State is the lifecycle of a watch session.
type State int

const (
	NotWatching State = iota
	Watching
	Failed
)

func (s State) String() string {
	switch s {
	case Watching:
		return "watching"
	case Failed:
		return "failed"
	default:
		return "not watching"
	}
}

// ErrClosed reports that the OS watch stopped delivering events.
var ErrClosed = errors.New("file watch closed")

// Options configure a Watcher.
type Options struct {
	Dir      string
	Resolver extract.Resolver
	Rules    *extract.Rules
	// Known seeds the ids that never produce a LogRead event.
	Known  state.ReadSet
	Logger *slog.Logger
}

// Watcher reports story logs read and levels selected while the game runs.
type Watcher struct {
	dir      string
	resolver extract.Resolver
	rules    *extract.Rules
	logger   *slog.Logger
	session  string

	events chan Event
	ready  chan struct{}

	known     state.ReadSet
	lastLevel string

	mu    sync.Mutex
	state State
	err   error
}

// New builds a Watcher for opts.Dir. Call Run to start it.
func New(opts Options) *Watcher {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	rules := opts.Rules
	if rules == nil {
		rules = extract.NewRules()
	}
	session := ulid.Make().String()
	return &Watcher{
		dir:      opts.Dir,
		resolver: opts.Resolver,
		rules:    rules,
		logger:   logger.With("session", session),
		session:  session,
		events:   make(chan Event, 1),
		ready:    make(chan struct{}),
		known:    opts.Known.Clone(),
	}
}

// Events delivers detected events in order. It is closed when Run returns.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Ready is closed once the directory watch is established.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Session identifies this watch session.
func (w *Watcher) Session() string {
	return w.session
}

// State returns the current lifecycle state and the failure, if any.
func (w *Watcher) State() (State, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state, w.err
}

func (w *Watcher) setState(s State, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state = s
	w.err = err
}

// Run watches the directory until ctx is cancelled or the watch fails. A
// failure is terminal: it is logged once and returned. Cancellation returns
// nil.
func (w *Watcher) Run(ctx context.Context) error {
	if s, _ := w.State(); s != NotWatching {
		return fmt.Errorf("watcher already %s", s)
	}
	defer close(w.events)

	fsw, err := fsnotify.NewWatcher()
	if err == nil {
		err = fsw.Add(w.dir)
		if err != nil {
			_ = fsw.Close()
		}
	}
	if err != nil {
		return w.fail(fmt.Errorf("watch %q: %w", w.dir, err))
	}
	defer func() { _ = fsw.Close() }()

	w.setState(Watching, nil)
	close(w.ready)
	w.logger.Info("watching for changes", "dir", w.dir)

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("watch cancelled", "dir", w.dir)
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return w.fail(fmt.Errorf("watch %q: %w", w.dir, ErrClosed))
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if err := w.handle(ctx, ev.Name); err != nil {
				return nil
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return w.fail(fmt.Errorf("watch %q: %w", w.dir, ErrClosed))
			}
			w.logger.Warn("failed to read file change", "error", err)
		}
	}
}

func (w *Watcher) fail(err error) error {
	w.setState(Failed, err)
	w.logger.Error("unable to watch for changes", "dir", w.dir, "error", err)
	return err
}

// handle rescans one changed file and emits what is new. It only returns an
// error when ctx is cancelled while sending.
func (w *Watcher) handle(ctx context.Context, path string) error {
	for _, ev := range w.scan(path) {
		select {
		case w.events <- ev:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// scan rereads path from the start and returns events for the last id and
// level found, skipping ids already known and a repeated level.
func (w *Watcher) scan(path string) []Event {
	name := filepath.Base(path)
	if !logtail.IsSessionLog(name) || w.resolver == nil {
		return nil
	}

	s := w.rules.NewLatestScan(w.resolver)
	if err := logtail.Scan(path, s.Line); err != nil {
		w.logger.Warn("failed to scan changed log", "file", name, "error", err)
		return nil
	}
	latest := s.Result()

	var out []Event
	if latest.HasID && w.known.Add(latest.ID) {
		out = append(out, Event{Kind: LogRead, ID: latest.ID, File: path})
	}
	if latest.Level != "" && latest.Level != w.lastLevel {
		w.lastLevel = latest.Level
		out = append(out, Event{Kind: LevelSelected, Level: latest.Level, File: path})
	}
	return out
}
