// path: commands.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kevinke3/loket/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	serveAddr  string
	serveStore string
	seedForce  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if serveAddr != "" {
			cfg.Addr = serveAddr
		}
		if serveStore != "" {
			cfg.Store = serveStore
			if err := cfg.Validate(); err != nil {
				return err
			}
		}
		return runServer(cmd.Context())
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the sample records into the configured store",
	Long: `Writes the sample missing and found person records into every collection
that does not exist yet. With --force both collections are overwritten.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := database.Open(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer store.Close(context.Background())

		seeded, err := database.Seed(ctx, store, seedForce, logger)
		if err != nil {
			return err
		}
		if len(seeded) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "nothing to seed; collections already exist")
			return nil
		}
		for _, c := range seeded {
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %s\n", c)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides LOKET_ADDR)")
	serveCmd.Flags().StringVar(&serveStore, "store", "", "store backend: file, mongo, sqlite, memory (overrides LOKET_STORE)")
	seedCmd.Flags().BoolVar(&seedForce, "force", false, "overwrite existing collections")
}

func runServer(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := database.Open(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			logger.Warn("store close failed", zap.Error(err))
		}
	}()

	if cfg.Seed {
		if _, err := database.Seed(ctx, store, false, logger); err != nil {
			return fmt.Errorf("seed store: %w", err)
		}
	}

	app, err := newApp(cfg, store, logger)
	if err != nil {
		return err
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr), zap.String("store", cfg.Store))
		errc <- app.Listen(cfg.Addr)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		return app.ShutdownWithTimeout(10 * time.Second)
	}
}
