// Package report renders comparison results for CI logs and pull
// request comments. The text output is a fixed line format that CI
// jobs grep, so it is deliberately unstyled.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"perfgate/internal/compare"
)

const footer = "Deviations greater than 10% from the baseline are reported. " +
	"See run output for more details."

// Print writes the per-benchmark lines, the aggregate line and the
// totals line.
func Print(w io.Writer, records []compare.Record, agg compare.Aggregate) {
	for _, r := range records {
		fmt.Fprintf(w, "[%d] %.3fx Baseline: %.3f, Latest: %.3f\n",
			r.Index, r.Ratio, r.Baseline, r.Latest)
	}
	fmt.Fprintf(w, "Average: %.3fx, Min: %.3fx, Max: %.3fx\n",
		agg.Mean, agg.Min, agg.Max)
	fmt.Fprintf(w, "Total Baseline: %.3f s, Latest: %.3f s\n",
		agg.TotalBaseline, agg.TotalLatest)
}

// Body assembles the pull request comment from the findings. Returns
// the empty string when there is nothing worth reporting. Otherwise the
// finding messages are followed by a count-and-mean summary and a fixed
// explanatory footer, joined with blank lines.
func Body(findings []compare.Finding, agg compare.Aggregate) string {
	if len(findings) == 0 {
		return ""
	}

	parts := make([]string, 0, len(findings)+2)
	for _, f := range findings {
		parts = append(parts, f.Message)
	}
	parts = append(parts, fmt.Sprintf("%d benchmarks, %s on average.",
		agg.Count, compare.MeanPhrase(agg.Mean)))
	parts = append(parts, footer)

	return strings.Join(parts, "\n\n")
}

// Report is the machine-readable form of one comparison run.
type Report struct {
	Records   []compare.Record  `json:"records"`
	Findings  []compare.Finding `json:"findings,omitempty"`
	Aggregate compare.Aggregate `json:"aggregate"`
}

// WriteJSON writes the full comparison as indented JSON.
func WriteJSON(w io.Writer, records []compare.Record, findings []compare.Finding, agg compare.Aggregate) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Report{Records: records, Findings: findings, Aggregate: agg})
}
