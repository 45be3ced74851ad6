package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/prowlers/logtracker/internal/app"
)

type rootOptions struct {
	configPath string
	dataPath   string
	playfab    bool
	noHistory  bool
	verbose    bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "logtracker",
		Short: "Track which GTFO story logs you have read",
		Long: `Reconstructs the set of story logs you have read from PlayFab or the game's
session logs, then follows the logs while you play and reports new reads and
level changes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
			slog.SetDefault(slog.New(handler))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), opts.appOptions(cmd))
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ~/.config/logtracker/config.toml)")
	flags.StringVar(&opts.dataPath, "data-path", "", "GTFO user data folder (default: detected from Steam)")
	flags.BoolVar(&opts.playfab, "playfab", false, "read progress from PlayFab, falling back to log files")
	flags.BoolVar(&opts.noHistory, "no-history", false, "do not record discoveries in the journal")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(newWatchCommand(opts))
	cmd.AddCommand(newScanCommand(opts))
	cmd.AddCommand(newHistoryCommand(opts))
	return cmd
}

func (o *rootOptions) appOptions(cmd *cobra.Command) app.Options {
	out := app.Options{
		ConfigPath: o.configPath,
		DataPath:   o.dataPath,
		NoHistory:  o.noHistory,
		Out:        cmd.OutOrStdout(),
	}
	if cmd.Root().PersistentFlags().Changed("playfab") {
		useRemote := o.playfab
		out.UseRemote = &useRemote
	}
	return out
}

func newWatchCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Reconcile progress, then follow the game's logs (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), opts.appOptions(cmd))
		},
	}
}

func newScanCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Reconcile progress once and list unread logs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Scan(cmd.Context(), opts.appOptions(cmd))
		},
	}
}

func newHistoryCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show when each log was first discovered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.History(cmd.Context(), opts.appOptions(cmd))
		},
	}
}
