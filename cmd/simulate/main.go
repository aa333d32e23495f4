package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/levenlabs/go-lflag"
	"gopkg.in/yaml.v3"

	"github.com/raterudder/solarcheck/pkg/economics"
	"github.com/raterudder/solarcheck/pkg/log"
	"github.com/raterudder/solarcheck/pkg/simulator"
	"github.com/raterudder/solarcheck/pkg/storage"
	"github.com/raterudder/solarcheck/pkg/types"
	"github.com/raterudder/solarcheck/pkg/yield"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env file", slog.Any("error", err))
	}

	scenario := lflag.RequiredString("scenario", "Path to the YAML scenario to simulate")
	persist := lflag.Bool("persist", false, "Store the simulation through the configured storage provider")

	y := yield.Configured()
	s := storage.ConfiguredWithDefault("memory")
	d := economics.Configured()
	sim := simulator.Configured(y, nil, d)

	lflag.Configure()
	if err := log.Configure(); err != nil {
		panic(err)
	}

	ctx := context.Background()
	defer s.Close()

	req, err := readScenario(*scenario)
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to read scenario", slog.String("path", *scenario), slog.Any("error", err))
		os.Exit(1)
	}

	result, err := sim.Run(ctx, req)
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "simulation failed", slog.Any("error", err))
		os.Exit(1)
	}

	if *persist {
		if err := s.InsertSimulation(ctx, result); err != nil {
			log.Ctx(ctx).ErrorContext(ctx, "failed to store simulation", slog.Any("error", err))
			os.Exit(1)
		}
		log.Ctx(ctx).InfoContext(ctx, "stored simulation", slog.String("id", result.ID))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to write simulation", slog.Any("error", err))
		os.Exit(1)
	}
}

func readScenario(path string) (types.SimulationRequest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return types.SimulationRequest{}, err
	}
	var req types.SimulationRequest
	if err := yaml.Unmarshal(b, &req); err != nil {
		return types.SimulationRequest{}, fmt.Errorf("failed to parse scenario: %w", err)
	}
	return req, nil
}
