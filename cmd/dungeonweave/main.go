// Package main is the entry point for DungeonWeave.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/samdwyer/dungeonweave/internal/game"
	"github.com/samdwyer/dungeonweave/internal/gamedata"
	"github.com/samdwyer/dungeonweave/internal/telemetry"
	"github.com/samdwyer/dungeonweave/internal/ui"
	"github.com/samdwyer/dungeonweave/internal/world"
)

func main() {
	// Load .env file for local development
	// This makes HONEYCOMB_DUNGEONWEAVE_API_KEY available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	// Set up OTEL environment variables from our .env variables
	setupOTelEnv()

	cfg, err := game.ConfigFromEnv()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	players := flag.Int("players", cfg.PlayerCount, "number of players, selects the room count tier")
	seed := flag.String("seed", cfg.Seed, "generation seed (default: derived from the clock)")
	view := flag.Bool("view", false, "open the interactive viewer")
	dump := flag.Bool("dump", false, "print the map as text and exit")
	flag.Parse()

	cfg.PlayerCount = *players
	cfg.Seed = *seed
	if cfg.PlayerCount < 0 {
		log.Fatalf("Invalid configuration: negative player count %d", cfg.PlayerCount)
	}
	if cfg.Seed == "" {
		cfg.Seed = strconv.FormatInt(time.Now().UnixNano(), 36)
	}

	ctx := context.Background()
	logger := telemetry.NewLogger(cfg.Verbosity)

	// Initialize telemetry
	shutdown, err := telemetry.Setup(ctx, logger)
	if err != nil {
		logger.Error(err, "telemetry setup failed, continuing without observability")
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				logger.Error(err, "telemetry shutdown failed")
			}
		}()
	}

	registry := gamedata.MustLoadContentRegistry()
	tables := world.ContentTables{
		EncounterTypes: registry.EncounterIDs(),
		GemTypes:       registry.GemIDs(),
		TreasureLevels: registry.TreasureIDs(),
	}
	controller := game.NewController(tables,
		game.WithLogger(logger.WithName("controller")),
		game.WithRearrangeInterval(cfg.RearrangeInterval),
	)

	// The viewer needs a terminal; otherwise fall back to a text dump.
	if *dump || (!*view && !term.IsTerminal(int(os.Stdin.Fd()))) {
		d := controller.GenerateDungeon(ctx, cfg.PlayerCount, cfg.Seed)
		if err := ui.Dump(os.Stdout, d, ui.StdoutOptions(d)); err != nil {
			logger.Error(err, "dump failed")
			os.Exit(1)
		}
		return
	}

	g, err := game.New(cfg, controller, ui.PaletteFromContent(registry.Palette()))
	if err != nil {
		log.Fatalf("Failed to initialize viewer: %v", err)
	}

	if err := g.Run(ctx); err != nil {
		log.Fatalf("Viewer error: %v", err)
	}
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}

	// Always set headers from our API key - the .env file may have an unexpanded
	// variable reference that doesn't work, so we construct it properly here
	apiKey := os.Getenv("HONEYCOMB_DUNGEONWEAVE_API_KEY")
	dataset := os.Getenv("HONEYCOMB_DUNGEONWEAVE_DATASET")
	if dataset == "" {
		dataset = "dungeonweave"
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
