package stats

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// DurationSummary describes the distribution of stop segment durations
type DurationSummary struct {
	Count   int     `json:"count"`
	MeanS   float64 `json:"meanS"`
	StdDevS float64 `json:"stdDevS"`
	P50S    float64 `json:"p50S"`
	P90S    float64 `json:"p90S"`
	MaxS    float64 `json:"maxS"`
}

// SummarizeDurations computes distribution statistics over segment durations
// in seconds
func SummarizeDurations(durations []float64) DurationSummary {
	summary := DurationSummary{Count: len(durations)}
	if len(durations) == 0 {
		return summary
	}

	sorted := make([]float64, len(durations))
	copy(sorted, durations)
	sort.Float64s(sorted)

	summary.MeanS = stat.Mean(sorted, nil)
	if len(sorted) > 1 {
		summary.StdDevS = stat.StdDev(sorted, nil)
	}
	summary.P50S = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	summary.P90S = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	summary.MaxS = sorted[len(sorted)-1]
	return summary
}
