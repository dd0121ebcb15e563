// Package main is the entry point for the ltodo CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"ltodo/internal/cli"
	"ltodo/internal/commands"
	"ltodo/internal/config"
	"ltodo/internal/logging"
	"ltodo/internal/storage"
	"ltodo/internal/store"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create store factory
	factory := func(ctx context.Context, cfg *config.Config) (*store.Store, error) {
		st, err := storage.Open(ctx, cfg)
		if err != nil {
			return nil, err
		}
		s := store.New(st,
			store.WithKey(cfg.Storage.Key),
			store.WithLogger(logging.New(os.Stderr, cfg)),
		)
		s.Load(ctx)
		return s, nil
	}

	// Create dispatcher
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	// Run and exit with code
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}
