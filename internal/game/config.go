package game

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DefaultRearrangeInterval is the minimum time between two successful
// rearranges.
const DefaultRearrangeInterval = 5 * time.Minute

// Environment variables read by ConfigFromEnv.
const (
	EnvSeed              = "DUNGEON_SEED"
	EnvPlayers           = "DUNGEON_PLAYERS"
	EnvRearrangeInterval = "DUNGEON_REARRANGE_INTERVAL"
	EnvVerbosity         = "DUNGEON_VERBOSITY"
)

// Config holds dungeon and viewer configuration options.
type Config struct {
	// Seed for dungeon generation. An empty seed means one is derived at startup.
	Seed string
	// PlayerCount selects the room count tier.
	PlayerCount int
	// RearrangeInterval is the cooldown between rearranges.
	RearrangeInterval time.Duration
	// Verbosity is the logger's V level.
	Verbosity int
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		PlayerCount:       1,
		RearrangeInterval: DefaultRearrangeInterval,
	}
}

// ConfigFromEnv overlays DUNGEON_* environment variables on DefaultConfig.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v, ok := os.LookupEnv(EnvSeed); ok {
		cfg.Seed = v
	}
	if v, ok := os.LookupEnv(EnvPlayers); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("parse %s: %w", EnvPlayers, err)
		}
		if n < 0 {
			return cfg, fmt.Errorf("parse %s: negative player count %d", EnvPlayers, n)
		}
		cfg.PlayerCount = n
	}
	if v, ok := os.LookupEnv(EnvRearrangeInterval); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("parse %s: %w", EnvRearrangeInterval, err)
		}
		cfg.RearrangeInterval = d
	}
	if v, ok := os.LookupEnv(EnvVerbosity); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("parse %s: %w", EnvVerbosity, err)
		}
		cfg.Verbosity = n
	}
	return cfg, nil
}
