package compare

import (
	"errors"
	"fmt"
	"math"

	"perfgate/internal/timing"
)

// Thresholds for the regression verdict. A benchmark only blocks when it
// is both 20% slower relative to baseline and slower by more than 5
// seconds absolute, so tiny benchmarks where 20% is noise never block.
const (
	hardRelativeFactor = 1.2
	hardAbsoluteDelta  = 5.0
	softSlowdownRatio  = 1.1
	speedupRatio       = 0.9

	// MeanFailThreshold fails the run on aggregate drift even when no
	// single benchmark crossed the blocking thresholds.
	MeanFailThreshold = 1.06
)

var (
	// ErrNoBenchmarks means both reduced sequences were empty, so no
	// mean can be computed.
	ErrNoBenchmarks = errors.New("no benchmarks to compare")

	// ErrRegression means at least one benchmark crossed the blocking
	// per-benchmark thresholds.
	ErrRegression = errors.New("benchmark regression exceeds blocking threshold")

	// ErrAggregateRegression means the mean relative duration crossed
	// MeanFailThreshold.
	ErrAggregateRegression = errors.New("aggregate slowdown exceeds blocking threshold")
)

// ZeroBaselineError reports a baseline timing that would make the
// relative duration undefined. Baseline timings must be strictly
// positive.
type ZeroBaselineError struct {
	Index int
	Value float64
}

func (e *ZeroBaselineError) Error() string {
	return fmt.Sprintf("benchmark %d: baseline time %g is not positive, relative duration is undefined", e.Index, e.Value)
}

// Record is the comparison of one benchmark: its baseline and latest
// reduced times and the relative duration latest/baseline.
type Record struct {
	Index    int     `json:"index"`
	Baseline float64 `json:"baseline"`
	Latest   float64 `json:"latest"`
	Ratio    float64 `json:"relative_duration"`
}

// Aggregate summarizes one whole comparison run. Min and Max start at
// 1.0, so a run where every benchmark slowed down still reports a Min
// of 1.0 (and vice versa for Max).
type Aggregate struct {
	Count         int     `json:"count"`
	TotalBaseline float64 `json:"total_baseline"`
	TotalLatest   float64 `json:"total_latest"`
	Mean          float64 `json:"mean_relative_duration"`
	Min           float64 `json:"min_relative_duration"`
	Max           float64 `json:"max_relative_duration"`
	Errors        int     `json:"errors"`
}

// Compare walks the two reduced sequences in lockstep and produces one
// Record per benchmark. The sequences must be the same length and every
// baseline time must be strictly positive.
func Compare(baseline, latest timing.Sequence) ([]Record, error) {
	if len(baseline) != len(latest) {
		return nil, &timing.LengthMismatchError{LenA: len(baseline), LenB: len(latest)}
	}

	records := make([]Record, 0, len(baseline))
	for i := range baseline {
		if baseline[i] <= 0 {
			return nil, &ZeroBaselineError{Index: i, Value: baseline[i]}
		}
		records = append(records, Record{
			Index:    i,
			Baseline: baseline[i],
			Latest:   latest[i],
			Ratio:    latest[i] / baseline[i],
		})
	}
	return records, nil
}

// Fold reduces the records and their findings into one Aggregate.
// Returns ErrNoBenchmarks for an empty run.
func Fold(records []Record, findings []Finding) (Aggregate, error) {
	if len(records) == 0 {
		return Aggregate{}, ErrNoBenchmarks
	}

	agg := Aggregate{Min: 1.0, Max: 1.0}
	totalRatio := 0.0
	for _, r := range records {
		agg.Count++
		agg.TotalBaseline += r.Baseline
		agg.TotalLatest += r.Latest
		totalRatio += r.Ratio
		agg.Min = math.Min(agg.Min, r.Ratio)
		agg.Max = math.Max(agg.Max, r.Ratio)
	}
	agg.Mean = totalRatio / float64(agg.Count)

	for _, f := range findings {
		if f.Kind == KindHardRegression {
			agg.Errors++
		}
	}
	return agg, nil
}

// MeanPhrase renders the mean relative duration as a percentage phrase,
// e.g. "4.2% slower" or "1.3% faster".
func MeanPhrase(mean float64) string {
	perc := 100 * (mean - 1)
	if perc > 0 {
		return fmt.Sprintf("%.1f%% slower", perc)
	}
	return fmt.Sprintf("%.1f%% faster", -perc)
}

// Verdict returns the failure for this run, if any. Per-benchmark
// regressions and aggregate drift are independent triggers: a run with
// no blocking benchmark still fails when the mean crosses the
// threshold.
func Verdict(agg Aggregate) error {
	if agg.Errors > 0 {
		return fmt.Errorf("%w: %d benchmark(s) over threshold", ErrRegression, agg.Errors)
	}
	if agg.Mean >= MeanFailThreshold {
		return fmt.Errorf("%w: mean relative duration %.3fx", ErrAggregateRegression, agg.Mean)
	}
	return nil
}
