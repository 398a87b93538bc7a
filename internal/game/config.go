package game

import (
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible map generation.
	// A seed of 0 means a random seed will be generated.
	Seed int64
	// MapSize names a preset from generator.json ("small", "medium", "large").
	MapSize string
	// Biome names the tile set from biomes.json.
	Biome string
	// Creatures is how many critters are spawned besides the party.
	Creatures int
}

// DefaultConfig returns the configuration used when no flags are given.
func DefaultConfig() Config {
	return Config{
		MapSize:   "small",
		Biome:     "default",
		Creatures: 2,
	}
}

// SeedFromString turns a seed phrase into a numeric seed. Numeric strings are
// used as-is so seeds can be copied from logs; anything else is hashed. An
// empty phrase yields 0 (random).
func SeedFromString(s string) int64 {
	if s == "" {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	return int64(xxhash.Sum64String(s))
}

// resolveSeed returns the seed to use, drawing one from the clock for 0.
func (c Config) resolveSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}
