package sim

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary aggregates hit rates across the trials of one cache and
// workload pair.
type Summary struct {
	Cache         string  `json:"cache"`
	Workload      string  `json:"workload"`
	Trials        int     `json:"trials"`
	MeanHitRate   float64 `json:"mean_hit_rate"`
	StdDevHitRate float64 `json:"std_dev_hit_rate"`
	MinHitRate    float64 `json:"min_hit_rate"`
	MaxHitRate    float64 `json:"max_hit_rate"`
}

// Summarize folds per-trial results into one summary. All results are
// expected to come from the same cache and workload; the labels are
// taken from the first.
func Summarize(results []Result) Summary {
	summary := Summary{Trials: len(results)}
	if len(results) == 0 {
		return summary
	}

	summary.Cache = results[0].Cache
	summary.Workload = results[0].Workload

	rates := make([]float64, len(results))
	for i, result := range results {
		rates[i] = result.HitRate
	}

	summary.MeanHitRate = stat.Mean(rates, nil)
	if len(rates) > 1 {
		summary.StdDevHitRate = stat.StdDev(rates, nil)
	}
	summary.MinHitRate = floats.Min(rates)
	summary.MaxHitRate = floats.Max(rates)
	return summary
}
