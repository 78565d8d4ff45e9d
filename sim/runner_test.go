package sim

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRun_TalliesHitsAndMisses replays a hand-checked trace against a
// capacity-2 LRU: both pages miss once, then hit.
func TestRun_TalliesHitsAndMisses(t *testing.T) {
	cache, err := NewLRU(2)
	require.NoError(t, err)

	result := Run(cache, "pair_loop", Trace{1, 2, 1, 2})

	assert.Equal(t, "lru", result.Cache)
	assert.Equal(t, "pair_loop", result.Workload)
	assert.Equal(t, 4, result.Accesses)
	assert.Equal(t, 2, result.Hits)
	assert.Equal(t, 2, result.Misses)
	assert.InDelta(t, 0.5, result.HitRate, 1e-9)
}

// TestRun_EmptyTrace verifies a zero-length replay reports a zero rate
// instead of dividing by zero.
func TestRun_EmptyTrace(t *testing.T) {
	cache, err := NewLRU(2)
	require.NoError(t, err)

	result := Run(cache, "empty", nil)

	assert.Zero(t, result.Accesses)
	assert.Zero(t, result.HitRate)
}

// TestRunTrials_AggregatesAcrossSeeds runs three seeded trials and
// checks the summary bookkeeping.
func TestRunTrials_AggregatesAcrossSeeds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Capacity = 16
	cfg.Universe = 64
	cfg.Length = 2000
	cfg.Trials = 3

	summary, err := RunTrials(cfg, func() (Cache, error) {
		return NewLRU(cfg.Capacity)
	}, Workload{Name: "looping_working_set", Gen: LoopingWorkingSet})
	require.NoError(t, err)

	assert.Equal(t, "lru", summary.Cache)
	assert.Equal(t, "looping_working_set", summary.Workload)
	assert.Equal(t, 3, summary.Trials)
	assert.Greater(t, summary.MeanHitRate, 0.0)
	assert.LessOrEqual(t, summary.MeanHitRate, 1.0)
	assert.LessOrEqual(t, summary.MinHitRate, summary.MeanHitRate)
	assert.LessOrEqual(t, summary.MeanHitRate, summary.MaxHitRate)
}

// TestRunTrials_Deterministic verifies that repeated runs of the same
// configuration produce identical summaries.
func TestRunTrials_Deterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Capacity = 16
	cfg.Universe = 64
	cfg.Length = 1000
	cfg.Trials = 2

	newCache := func() (Cache, error) { return NewPolicyCache(cfg) }
	workload := Workload{Name: "zipf", Gen: Zipf}

	first, err := RunTrials(cfg, newCache, workload)
	require.NoError(t, err)
	second, err := RunTrials(cfg, newCache, workload)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// TestRunTrials_ConstructorFailure verifies the error carries the trial
// context and aborts the run.
func TestRunTrials_ConstructorFailure(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Trials = 2

	_, err := RunTrials(cfg, func() (Cache, error) {
		return NewLRU(-1)
	}, Workload{Name: "zipf", Gen: Zipf})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "trial 0")
}

// TestSummarize_Stats checks the aggregation math on hand-picked rates.
func TestSummarize_Stats(t *testing.T) {
	results := []Result{
		{Cache: "lru", Workload: "zipf", HitRate: 0.2},
		{Cache: "lru", Workload: "zipf", HitRate: 0.4},
		{Cache: "lru", Workload: "zipf", HitRate: 0.6},
	}

	summary := Summarize(results)

	assert.Equal(t, "lru", summary.Cache)
	assert.Equal(t, "zipf", summary.Workload)
	assert.Equal(t, 3, summary.Trials)
	assert.InDelta(t, 0.4, summary.MeanHitRate, 1e-9)
	assert.InDelta(t, 0.2, summary.StdDevHitRate, 1e-9)
	assert.InDelta(t, 0.2, summary.MinHitRate, 1e-9)
	assert.InDelta(t, 0.6, summary.MaxHitRate, 1e-9)
}

// TestSummarize_Degenerate covers the empty and single-trial cases.
func TestSummarize_Degenerate(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))

	single := Summarize([]Result{{Cache: "arc", Workload: "zipf", HitRate: 0.3}})
	assert.Equal(t, 1, single.Trials)
	assert.InDelta(t, 0.3, single.MeanHitRate, 1e-9)
	assert.Zero(t, single.StdDevHitRate)
	assert.InDelta(t, 0.3, single.MinHitRate, 1e-9)
	assert.InDelta(t, 0.3, single.MaxHitRate, 1e-9)
}

// TestSummary_JSONRoundTrip pins the wire field names results files use.
func TestSummary_JSONRoundTrip(t *testing.T) {
	summary := Summary{
		Cache:       "cacheext",
		Workload:    "scan_mix",
		Trials:      5,
		MeanHitRate: 0.84,
	}

	raw, err := json.Marshal(summary)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"cache":"cacheext"`)
	assert.Contains(t, string(raw), `"mean_hit_rate":0.84`)

	var decoded Summary
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, summary, decoded)
}
