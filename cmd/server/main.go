package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/brightstage/eventdeck/internal/config"
	"github.com/brightstage/eventdeck/internal/eventdeck"
	"github.com/brightstage/eventdeck/internal/server"
	"github.com/brightstage/eventdeck/internal/statesync"
	"github.com/brightstage/eventdeck/internal/store"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- Storage ---
	st, err := store.Open(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("opening data dir: %w", err)
	}
	if err := st.EnsureDefaults(ctx, logger); err != nil {
		return fmt.Errorf("seeding defaults: %w", err)
	}
	logger.Info("opened data dir", "dir", cfg.DataDir)

	loc, err := time.LoadLocation(cfg.EventTimezone)
	if err != nil {
		return fmt.Errorf("loading event timezone %q: %w", cfg.EventTimezone, err)
	}

	// --- Domain ---
	ctrl := eventdeck.NewController(st, st)
	msgr := eventdeck.NewMessenger(st)
	syncer := statesync.New(cfg.ExternalStateAPI, logger)
	sessions := server.NewSessionStore()

	advancer := eventdeck.NewAutoAdvancer(ctrl, st, st, logger, loc, func(ctx context.Context) {
		if snap, err := st.State(ctx); err == nil {
			syncer.PushLater(snap)
		}
	})

	statesync.NotifyStartup(ctx, logger, cfg.StartupWebhookURL)

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, server.Deps{
		Logger:      logger,
		Store:       st,
		Control:     ctrl,
		Messages:    msgr,
		Sessions:    sessions,
		Sync:        syncer,
		SPADir:      cfg.SPADir,
		CORSOrigins: cfg.CORSOrigins,
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		return advancer.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}
