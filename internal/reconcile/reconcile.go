package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/prowlers/logtracker/internal/catalog"
	"github.com/prowlers/logtracker/internal/extract"
	"github.com/prowlers/logtracker/internal/logtail"
	"github.com/prowlers/logtracker/internal/state"
)

// Strategy selects where the initial read state comes from.
type Strategy int

const (
	// Local parses the newest session log only.
	Local Strategy = iota
	// Remote asks PlayFab first and falls back to Local on failure.
	Remote
)

// StrategyFor maps the use-remote setting to a Strategy.
func StrategyFor(useRemote bool) Strategy {
	if useRemote {
		return Remote
	}
	return Local
}

func (s Strategy) String() string {
	if s == Remote {
		return "remote"
	}
	return "local"
}

// RemoteSource fetches the authoritative read ids.
type RemoteSource interface {
	FetchReadIDs(ctx context.Context) (state.ReadSet, error)
}

// Result is the initial read state and where it came from.
type Result struct {
	Read    state.ReadSet
	Source  state.Source
	LogFile string
}

// Reconciler builds the initial read state.
type Reconciler struct {
	Resolver extract.Resolver
	Rules    *extract.Rules
	Remote   RemoteSource
	Logger   *slog.Logger
}

// BuildInitialState runs the chosen strategy. Remote failures always degrade
// to the local path; only a local failure is returned.
func (r *Reconciler) BuildInitialState(ctx context.Context, dir string, strategy Strategy) (Result, error) {
	logger := loggerOrDefault(r.Logger)

	if strategy == Remote {
		read, err := r.fetchRemote(ctx)
		if err == nil {
			return Result{Read: read, Source: state.SourceRemote}, nil
		}
		logger.Warn("unable to read log data from playfab, falling back to log files", "error", err)
	}
	return r.Local(dir)
}

func (r *Reconciler) fetchRemote(ctx context.Context) (state.ReadSet, error) {
	if r.Remote == nil {
		return nil, fmt.Errorf("%w: remote source not configured", ErrRemoteFetch)
	}
	return r.Remote.FetchReadIDs(ctx)
}

// Local selects the newest session log in dir and collects every read id in it.
func (r *Reconciler) Local(dir string) (Result, error) {
	logger := loggerOrDefault(r.Logger)
	logger.Debug("reading log ids from user data folder", "dir", dir)

	path, err := logtail.SelectLogFile(dir)
	if err != nil {
		return Result{}, err
	}

	rules := r.Rules
	if rules == nil {
		rules = extract.NewRules()
	}
	var resolver extract.Resolver = catalog.New(nil)
	if r.Resolver != nil {
		resolver = r.Resolver
	}
	scan := rules.NewHistoryScan(resolver)
	if err := logtail.Scan(path, scan.Line); err != nil {
		return Result{}, fmt.Errorf("scan %q: %w", path, err)
	}

	read := state.NewReadSet(scan.IDs()...)
	name := filepath.Base(path)
	logger.Info("read logs from session log", "file", name, "kind", logtail.SessionKind(name), "count", read.Len())
	return Result{Read: read, Source: state.SourceLocal, LogFile: path}, nil
}
