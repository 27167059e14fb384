// ABOUTME: Output formatters for batch results: text, json, markdown
// ABOUTME: Text is aligned for terminals; markdown matches the report exporter's shape

package print

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// formatter renders analyzed matrices to an output stream.
type formatter interface {
	format(out io.Writer, results []MatrixResult) error
}

func newFormatter(name string) (formatter, error) {
	switch name {
	case "", "text":
		return textFormatter{}, nil
	case "json":
		return jsonFormatter{}, nil
	case "markdown", "md":
		return markdownFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want text, json, or markdown)", name)
	}
}

type textFormatter struct{}

func (textFormatter) format(out io.Writer, results []MatrixResult) error {
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "%s\n%s\n", r.Name, strings.Repeat("=", len(r.Name)))

		nameWidth := 0
		for _, a := range r.Alternatives {
			if len(a) > nameWidth {
				nameWidth = len(a)
			}
		}
		for _, idx := range rankOrder(r) {
			fmt.Fprintf(out, "  %d. %-*s  %.4f\n", r.Ranks[idx], nameWidth, r.Alternatives[idx], r.Weights[idx])
		}

		if r.Consistency.Consistent {
			fmt.Fprintf(out, "  CR %.4f (consistent, threshold %.2f)\n", r.Consistency.CR, r.Consistency.Threshold)
		} else {
			fmt.Fprintf(out, "  CR %.4f exceeds threshold %.2f\n", r.Consistency.CR, r.Consistency.Threshold)
			for _, rec := range r.Consistency.Recommendations {
				fmt.Fprintf(out, "    - %s\n", rec)
			}
		}
	}
	return nil
}

type jsonFormatter struct{}

func (jsonFormatter) format(out io.Writer, results []MatrixResult) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

type markdownFormatter struct{}

func (markdownFormatter) format(out io.Writer, results []MatrixResult) error {
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "## %s\n\n", r.Name)
		fmt.Fprintln(out, "| Rank | Alternative | Weight |")
		fmt.Fprintln(out, "|---:|---|---:|")
		for _, idx := range rankOrder(r) {
			fmt.Fprintf(out, "| %d | %s | %.4f |\n", r.Ranks[idx], r.Alternatives[idx], r.Weights[idx])
		}
		fmt.Fprintf(out, "\nCR %.4f (threshold %.2f)", r.Consistency.CR, r.Consistency.Threshold)
		if !r.Consistency.Consistent {
			fmt.Fprint(out, " (inconsistent)")
		}
		fmt.Fprintln(out)
	}
	return nil
}

// rankOrder returns alternative indexes sorted by rank.
func rankOrder(r MatrixResult) []int {
	order := make([]int, len(r.Alternatives))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return r.Ranks[order[a]] < r.Ranks[order[b]] })
	return order
}
