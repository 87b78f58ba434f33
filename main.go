package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"playstore-dashboard/config"
	"playstore-dashboard/server"
	"playstore-dashboard/services"
	"playstore-dashboard/snapshot"
	"playstore-dashboard/storage"
	"playstore-dashboard/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()
	logger.SetLevel(utils.ParseLevel(cfg.LogLevel))

	if err := newRootCmd(cfg, logger).Execute(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config, logger *utils.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "playstore-dashboard",
		Short:         "Clean the Play Store apps dataset and serve a dashboard over it",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), cfg, logger)
		},
	}

	root.PersistentFlags().StringVar(&cfg.DataPath, "data", cfg.DataPath, "path to the apps CSV file")
	root.PersistentFlags().BoolVar(&cfg.StrictParse, "strict", cfg.StrictParse, "abort on unparsable Installs/Price instead of excluding the row")
	root.PersistentFlags().Float64Var(&cfg.PriceCeiling, "price-ceiling", cfg.PriceCeiling, "drop apps priced at or above this value")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), cfg, logger)
		},
	}
	serve.Flags().StringVar(&cfg.HTTPAddr, "addr", cfg.HTTPAddr, "listen address")
	serve.Flags().IntVar(&cfg.SampleSize, "sample", cfg.SampleSize, "rows shown in the home page samples")
	root.Flags().AddFlagSet(serve.Flags())

	report := &cobra.Command{
		Use:   "report",
		Short: "Print the insight report to the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := loadDataset(cfg, logger)
			if err != nil {
				return err
			}
			services.NewInsightService(logger).Print(cmd.OutOrStdout(), ds.Report)
			return nil
		},
	}

	snap := &cobra.Command{
		Use:   "snapshot",
		Short: "Render every dashboard page to PNG with headless Chrome",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSnapshot(cmd.Context(), cfg, logger)
		},
	}
	snap.Flags().StringVar(&cfg.SnapshotDir, "out", cfg.SnapshotDir, "directory for the PNG files")
	snap.Flags().StringVar(&cfg.ChromeBin, "chrome", cfg.ChromeBin, "Chrome/Chromium binary")

	root.AddCommand(serve, report, snap)
	return root
}

// loadDataset runs the pipeline once. Any error here is fatal for the process.
func loadDataset(cfg *config.Config, logger *utils.Logger) (*services.Dataset, error) {
	policy := services.ParseExclude
	if cfg.StrictParse {
		policy = services.ParseStrict
	}
	logger.Info("Loading %s (parse policy: %s, price ceiling: %.2f)", cfg.DataPath, policy, cfg.PriceCeiling)

	ds, err := services.NewPipeline(logger, policy, cfg.PriceCeiling).Run(storage.NewCSVReader(cfg.DataPath))
	if err != nil {
		var dle *storage.DataLoadError
		if errors.As(err, &dle) {
			return nil, fmt.Errorf("dataset unavailable, refusing to start: %w", err)
		}
		return nil, err
	}
	return ds, nil
}

func runServe(ctx context.Context, cfg *config.Config, logger *utils.Logger) error {
	ds, err := loadDataset(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Config{Dataset: ds, Logger: logger, Addr: cfg.HTTPAddr, SampleSize: cfg.SampleSize})
	return srv.Serve(ctx)
}

func runSnapshot(ctx context.Context, cfg *config.Config, logger *utils.Logger) error {
	ds, err := loadDataset(cfg, logger)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	srv := server.New(server.Config{Dataset: ds, Logger: logger, SampleSize: cfg.SampleSize})
	eg, egctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return srv.ServeListener(egctx, ln)
	})

	shots := snapshot.New(snapshot.Config{
		OutputDir:      cfg.SnapshotDir,
		ChromeBin:      cfg.ChromeBin,
		MaxConcurrency: cfg.MaxConcurrency,
		RateLimitMs:    cfg.RateLimitMs,
		MaxRetries:     cfg.MaxRetries,
	}, logger)

	files, capErr := shots.Capture(egctx, "http://"+ln.Addr().String(), snapshot.DefaultTargets)
	cancel()
	if err := eg.Wait(); err != nil {
		logger.Warn("[snapshot] Server stopped with error: %v", err)
	}
	if capErr != nil {
		return capErr
	}

	logger.Info("Done. %d snapshots written to %s", len(files), cfg.SnapshotDir)
	return nil
}
