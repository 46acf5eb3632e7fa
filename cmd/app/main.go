package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wichananm65/participant-registry/internal/config"
	"github.com/wichananm65/participant-registry/internal/infrastructure/database"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("participants", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg *config.Config

	root := &cobra.Command{
		Use:           "participants",
		Short:         "Participant registry web app and REST API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return err
			}
			setupLogger(cfg)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), cfg)
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Serve the REST API and the participants page",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return serve(cmd.Context(), cfg)
			},
		},
		&cobra.Command{
			Use:       "migrate [up|down]",
			Short:     "Apply or revert the participants schema",
			Args:      cobra.ExactArgs(1),
			ValidArgs: []string{"up", "down"},
			RunE: func(_ *cobra.Command, args []string) error {
				dir, err := parseDirection(args[0])
				if err != nil {
					return err
				}
				opts, err := dbOptions(cfg)
				if err != nil {
					return err
				}
				return database.Migrate(opts, dir)
			},
		},
	)
	return root
}

func parseDirection(s string) (database.Direction, error) {
	switch strings.ToLower(s) {
	case "up":
		return database.Up, nil
	case "down":
		return database.Down, nil
	}
	return 0, fmt.Errorf("unknown migration direction %q (want up or down)", s)
}

func dbOptions(cfg *config.Config) (database.Options, error) {
	dialect, err := database.ParseDialect(cfg.DB.Driver)
	if err != nil {
		return database.Options{}, err
	}
	return database.Options{
		Dialect:      dialect,
		DSN:          cfg.DB.DSN(),
		MaxOpenConns: cfg.DB.MaxOpenConns,
	}, nil
}

func setupLogger(cfg *config.Config) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if strings.EqualFold(cfg.LogFormat, "json") {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
