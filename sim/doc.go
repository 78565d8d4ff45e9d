// Package sim is a deterministic, trace-driven harness for comparing the
// two-segment eviction policy against stock replacement schemes.
//
// The harness replays synthetic page-access traces against a
// fixed-capacity cache and tallies hits. PolicyCache plays the host
// role around a real Policy: it owns residency, asks the policy for
// victims when full, falls back to admission order when the policy
// offers none, and reports every physical eviction back to it. The
// baselines wrap third-party caches behind the same Cache surface so
// one replay loop scores them all.
//
// # Workloads
//
// Workloads returns the standard generator set: a pure sequential scan,
// a looping working set with background noise, a Zipf-skewed
// distribution, uniform random, and a working-set loop with a one-shot
// scan spliced into the middle. Generators are pure functions of the
// configuration and a seed, so a trace replays identically across runs
// and across caches.
//
// # Running
//
//	cfg := sim.LoadConfig()
//	summary, err := sim.RunTrials(cfg, func() (sim.Cache, error) {
//		return sim.NewPolicyCache(cfg)
//	}, sim.Workloads()[1])
//
// RunTrials builds a fresh cache per trial, derives a per-trial seed,
// and aggregates hit rates into a Summary with mean and spread.
//
// # Configuration
//
// LoadConfig reads CACHEEXT_SIM_* environment variables, consulting a
// .env file when one is present. Unset or malformed variables fall back
// to DefaultConfig values.
package sim
