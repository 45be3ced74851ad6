package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prowlers/logtracker/internal/catalog"
	"github.com/prowlers/logtracker/internal/config"
	"github.com/prowlers/logtracker/internal/extract"
	"github.com/prowlers/logtracker/internal/history"
	"github.com/prowlers/logtracker/internal/playfab"
	"github.com/prowlers/logtracker/internal/reconcile"
	"github.com/prowlers/logtracker/internal/state"
	"github.com/prowlers/logtracker/internal/steam"
	"github.com/prowlers/logtracker/internal/watcher"
)

// Options configure the tracker. Zero values defer to the config file.
type Options struct {
	ConfigPath string
	DataPath   string
	UseRemote  *bool
	NoHistory  bool
	Out        io.Writer
	Logger     *slog.Logger
}

type tracker struct {
	cfg     config.Config
	catalog *catalog.Catalog
	rules   *extract.Rules
	console *console
	logger  *slog.Logger
}

func setup(opts Options) (*tracker, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.DataPath != "" {
		cfg.DataPath = opts.DataPath
	}
	if opts.UseRemote != nil {
		cfg.UseRemote = *opts.UseRemote
	}
	if cfg.DataPath == "" {
		path, err := steam.DefaultDataPath()
		if err != nil {
			return nil, fmt.Errorf("find game data path: %w", err)
		}
		cfg.DataPath = path
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	logger.Info("total logs", "count", cat.Len())

	return &tracker{
		cfg:     cfg,
		catalog: cat,
		rules:   extract.NewRules(),
		console: newConsole(out),
		logger:  logger,
	}, nil
}

func (rt *tracker) reconciler() (*reconcile.Reconciler, error) {
	r := &reconcile.Reconciler{
		Resolver: rt.catalog,
		Rules:    rt.rules,
		Logger:   rt.logger,
	}
	if !rt.cfg.UseRemote {
		return r, nil
	}
	client, err := playfab.NewClient(rt.cfg.TitleID)
	if err != nil {
		return nil, fmt.Errorf("init playfab client: %w", err)
	}
	r.Remote = &reconcile.RemoteFetcher{
		Tickets:  &steam.HexTicketSource{Hex: rt.cfg.SteamTicket},
		API:      client,
		Timeout:  rt.cfg.RemoteTimeout,
		Attempts: rt.cfg.RemoteAttempts,
		Logger:   rt.logger,
	}
	return r, nil
}

func (rt *tracker) initialState(ctx context.Context, store *state.Store) error {
	r, err := rt.reconciler()
	if err != nil {
		return err
	}
	res, err := r.BuildInitialState(ctx, rt.cfg.DataPath, reconcile.StrategyFor(rt.cfg.UseRemote))
	if err != nil {
		return fmt.Errorf("read initial state: %w", err)
	}
	store.Reset(res.Read, res.Source, res.LogFile)
	return nil
}

func (rt *tracker) openHistory(opts Options) *history.Store {
	if opts.NoHistory {
		return nil
	}
	h, err := history.Open(rt.cfg.HistoryPath)
	if err != nil {
		rt.logger.Warn("discovery journal unavailable", "path", rt.cfg.HistoryPath, "error", err)
		return nil
	}
	return h
}

// Scan reconciles once, prints the progress summary and unread logs, and
// records the result in the journal.
func Scan(ctx context.Context, opts Options) error {
	rt, err := setup(opts)
	if err != nil {
		return err
	}
	store := &state.Store{}
	if err := rt.initialState(ctx, store); err != nil {
		return err
	}
	snap := store.Snapshot()

	if h := rt.openHistory(opts); h != nil {
		defer h.Close()
		rt.recordBaseline(ctx, h, snap)
	}

	rt.console.summary(rt.catalog, snap)
	rt.console.unread(rt.catalog, snap.Read, "")
	return nil
}

// Run reconciles once and then follows the game's logs until ctx is
// cancelled or the watch fails.
func Run(ctx context.Context, opts Options) error {
	rt, err := setup(opts)
	if err != nil {
		return err
	}
	store := &state.Store{}
	if err := rt.initialState(ctx, store); err != nil {
		return err
	}
	snap := store.Snapshot()
	rt.console.summary(rt.catalog, snap)

	h := rt.openHistory(opts)
	if h != nil {
		defer h.Close()
		rt.recordBaseline(ctx, h, snap)
	}

	w := watcher.New(watcher.Options{
		Dir:      rt.cfg.DataPath,
		Resolver: rt.catalog,
		Rules:    rt.rules,
		Known:    snap.Read,
		Logger:   rt.logger,
	})
	return rt.follow(ctx, w, store, h)
}

// History prints the discovery journal.
func History(ctx context.Context, opts Options) error {
	rt, err := setup(opts)
	if err != nil {
		return err
	}
	h, err := history.Open(rt.cfg.HistoryPath)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer h.Close()

	list, err := h.List(ctx)
	if err != nil {
		return fmt.Errorf("list journal: %w", err)
	}
	rt.console.discoveries(rt.catalog, list)
	return nil
}

func (rt *tracker) recordBaseline(ctx context.Context, h *history.Store, snap state.Snapshot) {
	added, err := h.RecordBaseline(ctx, snap.Read.IDs(), string(snap.Source))
	if err != nil {
		rt.logger.Warn("record baseline failed", "error", err)
		return
	}
	rt.logger.Debug("recorded baseline", "new", added)
}
