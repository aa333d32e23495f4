package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/levenlabs/go-lflag"

	"github.com/raterudder/solarcheck/pkg/economics"
	"github.com/raterudder/solarcheck/pkg/log"
	"github.com/raterudder/solarcheck/pkg/server"
	"github.com/raterudder/solarcheck/pkg/simulator"
	"github.com/raterudder/solarcheck/pkg/storage"
	"github.com/raterudder/solarcheck/pkg/yield"
)

func main() {
	// a .env file is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env file", slog.Any("error", err))
	}

	// init packages
	y := yield.Configured()
	s := storage.Configured()
	d := economics.Configured()
	sim := simulator.Configured(y, s, d)

	// init server
	srv := server.Configured(sim, s, d)

	// parse flags
	lflag.Configure()

	// lflag automatically sets llog's level, but we need to set the slog level
	if err := log.Configure(); err != nil {
		panic(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// If initialization inside lflag.Do failed, we wouldn't be here (panic).
	defer func() {
		if err := s.Close(); err != nil {
			log.Ctx(ctx).ErrorContext(ctx, "failed to close storage", slog.Any("error", err))
		}
	}()

	// Run will block until context is canceled or error happens
	if err := srv.Run(ctx); err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "server failed", slog.Any("error", err))
		os.Exit(1)
	}
	log.Ctx(ctx).InfoContext(ctx, "server exited cleanly")
}
