package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"StockWatcher/internal/api"
	"StockWatcher/internal/config"
	"StockWatcher/internal/console"
	"StockWatcher/internal/dashboard"
	"StockWatcher/internal/logging"
	"StockWatcher/internal/recorder"
	"StockWatcher/internal/terminal"
	"StockWatcher/internal/view"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgPath string
		apiURL  string
		noColor bool
	)
	cmd := &cobra.Command{
		Use:           "dashboard",
		Short:         "Terminal dashboard for the StockWatcher API",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfgPath == "" {
				cfgPath = "configs/config.yaml"
				if v := os.Getenv("CONFIG_PATH"); v != "" {
					cfgPath = v
				}
			}
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if apiURL != "" {
				cfg.API.BaseURL = apiURL
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("config validation: %w", err)
			}
			return run(cmd.Context(), cfg, noColor)
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", "", "path to config.yaml (default configs/config.yaml or $CONFIG_PATH)")
	cmd.Flags().StringVar(&apiURL, "api-url", "", "override api.base_url")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	return cmd
}

func run(parent context.Context, cfg *config.Config, noColor bool) error {
	logger := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
		File:   cfg.Log.File,
	}, os.Stderr)
	logger.Info().Str("api", cfg.API.BaseURL).Msg("StockWatcher dashboard starting")

	client := api.NewClient(cfg.API.BaseURL, cfg.Proxy, cfg.API.Timeout, logger)
	client.UserAgent = cfg.API.UserAgent

	var (
		rec     recorder.Recorder
		journal recorder.Reader
	)
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			journal = sr
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}
	defer rec.Close()

	in := bufio.NewReader(os.Stdin)
	screen := terminal.NewScreen(os.Stdout, noColor, view.AllRegions()...)
	prompter := terminal.NewPrompter(in, os.Stdout)

	dash, err := dashboard.New(dashboard.Options{
		Backend:         client,
		Surface:         screen,
		Interactor:      prompter,
		Recorder:        rec,
		RefreshSchedule: cfg.Refresh.Schedule,
		Logger:          logger,
	})
	if err != nil {
		return err
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	if err := dash.Start(ctx); err != nil {
		return fmt.Errorf("start dashboard: %w", err)
	}
	defer dash.Stop()

	loop := console.NewLoop(dash, screen, journal, in, os.Stdout, logger)
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		logger.Info().Msg("shutdown signal received, stopping")
	case err := <-done:
		if err != nil && ctx.Err() == nil {
			logger.Error().Err(err).Msg("console stopped")
		}
	}
	cancel()
	logger.Info().Msg("StockWatcher dashboard stopped")
	return nil
}
