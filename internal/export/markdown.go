// ABOUTME: Markdown rendering of a finished session report
// ABOUTME: Consumed raw by print mode and through glamour by the interactive view

package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mauromedda/prefscale-go/internal/session"
)

// Markdown renders the report as a markdown document: ranking table,
// judgment matrix, and consistency summary.
func Markdown(r *session.Report) string {
	var b strings.Builder

	b.WriteString("# Priority Report\n\n")
	fmt.Fprintf(&b, "Weight method: %s. Overall judgment confidence: %s (avg reliability %.1f).\n\n",
		r.Method, r.Confidence, r.AvgReliability)

	b.WriteString("## Ranking\n\n")
	b.WriteString("| Rank | Alternative | Weight | Reliability | Confidence |\n")
	b.WriteString("|---:|---|---:|---:|---|\n")
	for _, a := range byRank(r.Alternatives) {
		fmt.Fprintf(&b, "| %d | %s | %.4f | %.1f | %s |\n",
			a.Rank, a.Name, a.Weight, a.AvgReliability, a.Confidence)
	}
	b.WriteString("\n")

	b.WriteString("## Judgment matrix\n\n")
	writeMatrixTable(&b, r)

	b.WriteString("## Consistency\n\n")
	fmt.Fprintf(&b, "- lambda-max: %.4f\n", r.Consistency.LambdaMax)
	fmt.Fprintf(&b, "- CI: %.4f\n", r.Consistency.CI)
	fmt.Fprintf(&b, "- CR: %.4f (threshold %.2f)\n", r.Consistency.CR, r.Consistency.Threshold)
	for _, rec := range r.Consistency.Recommendations {
		fmt.Fprintf(&b, "- %s\n", rec)
	}

	return b.String()
}

func writeMatrixTable(b *strings.Builder, r *session.Report) {
	names := make([]string, len(r.Alternatives))
	for i, a := range r.Alternatives {
		names[i] = a.Name
	}

	b.WriteString("| |")
	for _, n := range names {
		fmt.Fprintf(b, " %s |", n)
	}
	b.WriteString("\n|---|")
	for range names {
		b.WriteString("---:|")
	}
	b.WriteString("\n")
	for i, n := range names {
		fmt.Fprintf(b, "| **%s** |", n)
		for j := range names {
			fmt.Fprintf(b, " %.3f |", r.Matrix.At(i, j))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

// byRank returns the alternatives in rank order without mutating the report.
func byRank(alts []session.AlternativeResult) []session.AlternativeResult {
	out := make([]session.AlternativeResult, len(alts))
	copy(out, alts)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out
}
