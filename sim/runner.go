package sim

import (
	"fmt"
	"io"
)

// Cache is the surface a simulated cache exposes to the replay loop.
type Cache interface {
	// Name identifies the scheme in results.
	Name() string

	// Touch records one access to page and reports whether it was
	// already resident.
	Touch(page uint64) bool
}

// Result summarizes one trace replay against one cache.
type Result struct {
	Cache    string  `json:"cache"`
	Workload string  `json:"workload"`
	Accesses int     `json:"accesses"`
	Hits     int     `json:"hits"`
	Misses   int     `json:"misses"`
	HitRate  float64 `json:"hit_rate"`
}

// Run replays trace against cache and tallies hits.
func Run(cache Cache, workload string, trace Trace) Result {
	hits := 0
	for _, page := range trace {
		if cache.Touch(page) {
			hits++
		}
	}
	result := Result{
		Cache:    cache.Name(),
		Workload: workload,
		Accesses: len(trace),
		Hits:     hits,
		Misses:   len(trace) - hits,
	}
	if result.Accesses > 0 {
		result.HitRate = float64(hits) / float64(result.Accesses)
	}
	return result
}

// RunTrials replays workload cfg.Trials times, each against a fresh
// cache from newCache with a distinct seed, and aggregates the per-trial
// hit rates. Caches that implement io.Closer are closed after their
// trial.
func RunTrials(cfg Config, newCache func() (Cache, error), workload Workload) (Summary, error) {
	trials := max(cfg.Trials, 1)
	results := make([]Result, 0, trials)
	for trial := 0; trial < trials; trial++ {
		cache, err := newCache()
		if err != nil {
			return Summary{}, fmt.Errorf("sim: trial %d: %w", trial, err)
		}
		trace := workload.Gen(cfg, cfg.Seed+int64(trial))
		results = append(results, Run(cache, workload.Name, trace))
		if closer, ok := cache.(io.Closer); ok {
			_ = closer.Close()
		}
	}
	return Summarize(results), nil
}
