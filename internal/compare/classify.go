package compare

import "fmt"

// FindingKind classifies one benchmark comparison.
type FindingKind int

const (
	KindNone FindingKind = iota
	KindHardRegression
	KindSoftSlowdown
	KindSpeedup
)

// Finding is a noteworthy comparison result and its message in the
// format expected by pull request comments.
type Finding struct {
	Kind    FindingKind `json:"kind"`
	Record  Record      `json:"record"`
	Message string      `json:"message"`
}

// classify applies the thresholds to one record. A record that is a
// hard regression is never also reported as a soft slowdown; ratios in
// [0.9, 1.1] are considered noise and produce no finding.
func classify(r Record) Finding {
	perc := 100 * (r.Ratio - 1)

	switch {
	case r.Latest > r.Baseline*hardRelativeFactor && r.Latest-r.Baseline > hardAbsoluteDelta:
		return Finding{
			Kind:    KindHardRegression,
			Record:  r,
			Message: fmt.Sprintf("🚫 Benchmark #%d is too slow: +%.1f%%", r.Index, perc),
		}
	case r.Ratio > softSlowdownRatio:
		return Finding{
			Kind:    KindSoftSlowdown,
			Record:  r,
			Message: fmt.Sprintf("⚠️Potential non-blocking slowdown in benchmark #%d: +%.1f%%", r.Index, perc),
		}
	case r.Ratio < speedupRatio:
		return Finding{
			Kind:    KindSpeedup,
			Record:  r,
			Message: fmt.Sprintf("🔥 Potential speedup in benchmark #%d: %.1f%%", r.Index, perc),
		}
	}
	return Finding{Kind: KindNone, Record: r}
}

// Classify returns the findings for all records, in record order,
// omitting noise-level results.
func Classify(records []Record) []Finding {
	var findings []Finding
	for _, r := range records {
		if f := classify(r); f.Kind != KindNone {
			findings = append(findings, f)
		}
	}
	return findings
}
