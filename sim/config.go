package sim

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the harness parameters. Every field has a working
// default; LoadConfig overlays CACHEEXT_SIM_* environment variables.
type Config struct {
	// Capacity is the simulated cache size in pages.
	Capacity int // default: 512

	// Trials is the number of seeded repetitions per workload.
	Trials int // default: 5

	// Seed is the base RNG seed; trial i replays with Seed+i.
	Seed int64 // default: 1

	// ReclaimBatch caps the victims requested per reclaim pass.
	ReclaimBatch int // default: 32

	// Universe is the number of distinct pages a workload draws from.
	Universe int // default: 16384

	// Length is the number of accesses per generated trace.
	Length int // default: 65536

	// HotRatio is the fraction of looping-workload accesses that land
	// in the working set.
	HotRatio float64 // default: 0.9

	// ZipfSkew is the s parameter of the Zipf access distribution.
	// Values at or below 1 are replaced with the default.
	ZipfSkew float64 // default: 1.2
}

// DefaultConfig returns the built-in parameter set.
func DefaultConfig() Config {
	return Config{
		Capacity:     512,
		Trials:       5,
		Seed:         1,
		ReclaimBatch: 32,
		Universe:     1 << 14,
		Length:       1 << 16,
		HotRatio:     0.9,
		ZipfSkew:     1.2,
	}
}

// LoadConfig reads harness parameters from the environment with
// DefaultConfig fallbacks. A .env file in the working directory is
// consulted first; a missing file is not an error.
func LoadConfig() Config {
	_ = godotenv.Load()
	def := DefaultConfig()
	return Config{
		Capacity:     envIntOr("CACHEEXT_SIM_CAPACITY", def.Capacity),
		Trials:       envIntOr("CACHEEXT_SIM_TRIALS", def.Trials),
		Seed:         envInt64Or("CACHEEXT_SIM_SEED", def.Seed),
		ReclaimBatch: envIntOr("CACHEEXT_SIM_RECLAIM_BATCH", def.ReclaimBatch),
		Universe:     envIntOr("CACHEEXT_SIM_UNIVERSE", def.Universe),
		Length:       envIntOr("CACHEEXT_SIM_LENGTH", def.Length),
		HotRatio:     envFloatOr("CACHEEXT_SIM_HOT_RATIO", def.HotRatio),
		ZipfSkew:     envFloatOr("CACHEEXT_SIM_ZIPF_SKEW", def.ZipfSkew),
	}
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envInt64Or(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
