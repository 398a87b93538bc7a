// Package main is the entry point for dgame.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/samdwyer/dgame/internal/game"
	"github.com/samdwyer/dgame/internal/telemetry"
)

const version = "0.2.0"

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cmd := &cli.Command{
		Name:    "dgame",
		Usage:   "explore a generated dungeon one move at a time",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "seed",
				Usage:   "seed phrase or number for map generation (empty for random)",
				Sources: cli.EnvVars("DGAME_SEED"),
			},
			&cli.StringFlag{
				Name:    "map-size",
				Usage:   "map preset: small, medium or large",
				Value:   "small",
				Sources: cli.EnvVars("DGAME_MAP_SIZE"),
			},
			&cli.StringFlag{
				Name:    "biome",
				Usage:   "tile set to draw the map with",
				Value:   "default",
				Sources: cli.EnvVars("DGAME_BIOME"),
			},
			&cli.IntFlag{
				Name:    "creatures",
				Usage:   "number of critters to spawn",
				Value:   2,
				Sources: cli.EnvVars("DGAME_CREATURES"),
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "where to write logs while the terminal UI is running",
				Value:   "dgame.log",
				Sources: cli.EnvVars("DGAME_LOG_FILE"),
			},
			&cli.IntFlag{
				Name:    "verbosity",
				Aliases: []string{"v"},
				Usage:   "log verbosity",
				Sources: cli.EnvVars("DGAME_VERBOSITY"),
			},
			&cli.BoolFlag{
				Name:    "telemetry",
				Usage:   "export traces over OTLP (configured by OTEL_* variables)",
				Sources: cli.EnvVars("DGAME_TELEMETRY"),
			},
		},
		Action: play,
		Commands: []*cli.Command{
			{
				Name:   "dump",
				Usage:  "generate a map and print it instead of starting the game",
				Action: dump,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatalf("dgame: %v", err)
	}
}

// configFromFlags builds the game configuration from parsed flags.
func configFromFlags(cmd *cli.Command) game.Config {
	cfg := game.DefaultConfig()
	cfg.Seed = game.SeedFromString(cmd.String("seed"))
	cfg.MapSize = cmd.String("map-size")
	cfg.Biome = cmd.String("biome")
	cfg.Creatures = cmd.Int("creatures")
	return cfg
}

// newLogger returns a stdr logger writing to w at the requested verbosity.
func newLogger(cmd *cli.Command, w *os.File) logr.Logger {
	stdr.SetVerbosity(cmd.Int("verbosity"))
	return stdr.New(log.New(w, "", log.LstdFlags)).WithName("dgame")
}

// setupTelemetry starts the OTLP exporter when enabled and returns its shutdown.
func setupTelemetry(ctx context.Context, cmd *cli.Command, logger logr.Logger) func() {
	if !cmd.Bool("telemetry") {
		return func() {}
	}
	shutdown, err := telemetry.Setup(ctx, logger, telemetry.Run{
		MapSize: cmd.String("map-size"),
		Biome:   cmd.String("biome"),
		Seed:    cmd.String("seed"),
	})
	if err != nil {
		logger.Error(err, "telemetry setup failed, running without observability")
		return func() {}
	}
	return func() {
		if err := shutdown(ctx); err != nil {
			logger.Error(err, "shutting down telemetry")
		}
	}
}

// play runs the terminal game. Logs go to a file since tcell owns the terminal.
func play(ctx context.Context, cmd *cli.Command) error {
	logFile, err := os.OpenFile(cmd.String("log-file"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()

	logger := newLogger(cmd, logFile)
	defer setupTelemetry(ctx, cmd, logger)()

	g, err := game.New(configFromFlags(cmd), logger)
	if err != nil {
		return fmt.Errorf("failed to initialize game: %w", err)
	}
	return g.Run(ctx)
}

// dump generates a map and writes it to stdout.
func dump(ctx context.Context, cmd *cli.Command) error {
	logger := newLogger(cmd, os.Stderr)
	defer setupTelemetry(ctx, cmd, logger)()

	g, err := game.NewHeadless(ctx, configFromFlags(cmd), logger)
	if err != nil {
		return err
	}
	return g.WriteMap(os.Stdout)
}
