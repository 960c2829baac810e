package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/spf13/cobra"

	"github.com/Ramsey-B/alloy/config"
	"github.com/Ramsey-B/alloy/internal/app"
	"github.com/Ramsey-B/alloy/pkg/logging"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "alloy",
		Short:         "Materials reference service",
		Long:          "Serves the materials reference dataset over HTTP, seeding an empty store on first start.",
		Version:       fmt.Sprintf("%s (commit %s)", Version, GitCommit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd(), newMigrateCmd(), newSeedCmd())
	return root
}

// run loads configuration, starts the infrastructure and calls fn. The
// infrastructure is stopped when fn returns.
func run(cmd *cobra.Command, fn func(ctx context.Context, a *app.App, logger ectologger.Logger) error) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return err
	}

	logger, err := logging.New(cfg.AppName, cfg.LogLevel, cfg.PrettyLogs)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.New(cfg, logger, Version)
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.Stop(stopCtx); err != nil {
			logger.WithError(err).Error("failed to stop cleanly")
		}
	}()

	if err := a.Start(ctx); err != nil {
		logger.WithError(err).Error("failed to start infrastructure")
		return err
	}

	if err := fn(ctx, a, logger); err != nil {
		logger.WithError(err).Error(cmd.Name() + " failed")
		return err
	}
	return nil
}
