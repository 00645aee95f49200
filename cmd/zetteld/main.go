// Command zetteld serves the knowledge base over HTTP.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zettelhaus/zettel/internal/platform"
	"github.com/zettelhaus/zettel/internal/server"
	"github.com/zettelhaus/zettel/pkg/agents"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "zetteld: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := server.LoadConfig()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	opts := []platform.Option{platform.WithLogger(logger)}
	if cfg.APIKey != "" {
		var llmOpts []agents.LLMOption
		if cfg.Model != "" {
			llmOpts = append(llmOpts, agents.WithModel(cfg.Model))
		}
		opts = append(opts, platform.WithCompleter(agents.NewLLMClient(cfg.APIKey, llmOpts...)))
	} else {
		logger.Info("no model API key configured, agents disabled")
	}

	app, err := platform.New(cfg.DataDir, opts...)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.WatchStore {
		if err := app.Store.Watch(ctx, nil); err != nil {
			return err
		}
	}

	srv := server.New(app, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen(cfg.Addr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
