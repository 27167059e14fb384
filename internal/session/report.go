// ABOUTME: Report assembly from a finished session: weights, ranks, consistency
// ABOUTME: Reliability averages band each alternative's judgment confidence

package session

import (
	"fmt"

	"github.com/mauromedda/prefscale-go/internal/ahp"
)

// Confidence bands an average reliability score.
type Confidence int

const (
	ConfidenceNone Confidence = iota
	ConfidenceLow
	ConfidenceMedium
	ConfidenceHigh
)

// String returns the band name used in reports.
func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return "none"
	}
}

// ConfidenceFor bands an average reliability: 5 and up is high, 3 and up
// medium, anything declared low, nothing none.
func ConfidenceFor(avg float64) Confidence {
	switch {
	case avg >= 5:
		return ConfidenceHigh
	case avg >= 3:
		return ConfidenceMedium
	case avg >= 1:
		return ConfidenceLow
	default:
		return ConfidenceNone
	}
}

// AlternativeResult is one ranked row of the report.
type AlternativeResult struct {
	Name           string
	Weight         float64
	Rank           int
	AvgReliability float64
	Confidence     Confidence
}

// Report summarizes a finished session.
type Report struct {
	Alternatives []AlternativeResult
	Method       ahp.Method
	// Weights under both methods, in alternative order; Alternatives carries
	// the configured method's values.
	EigenWeights     []float64
	GeometricWeights []float64
	Consistency      ahp.Consistency
	Matrix           *ahp.Matrix
	// Reliability is symmetric with a zero diagonal, parallel to the matrix.
	Reliability    [][]float64
	AvgReliability float64
	Confidence     Confidence
}

// Report builds the final report. Every pair must be judged or skipped.
func (s *Session) Report() (*Report, error) {
	if !s.Finished() {
		done, total := s.Progress()
		return nil, fmt.Errorf("report needs all pairs judged: %d of %d done", done, total)
	}

	n := len(s.alternatives)
	m, err := ahp.NewMatrix(n)
	if err != nil {
		return nil, err
	}
	rel := make([][]float64, n)
	for i := range rel {
		rel[i] = make([]float64, n)
	}
	for k, p := range s.pairs {
		r := s.results[k]
		if err := m.Set(p.A, p.B, r.Ratio); err != nil {
			return nil, fmt.Errorf("pair %s: %w", s.Describe(p), err)
		}
		rel[p.A][p.B] = r.Reliability
		rel[p.B][p.A] = r.Reliability
	}

	eigen := m.Weights(ahp.Eigenvector)
	geometric := m.Weights(ahp.GeometricMean)
	weights := eigen
	if s.opts.Method == ahp.GeometricMean {
		weights = geometric
	}
	ranks := ahp.Ranks(weights)
	consistency := ahp.Check(m, weights, s.opts.Threshold)

	report := &Report{
		Method:           s.opts.Method,
		EigenWeights:     eigen,
		GeometricWeights: geometric,
		Consistency:      consistency,
		Matrix:           m,
		Reliability:      rel,
	}

	var total float64
	for i, name := range s.alternatives {
		avg := rowAverage(rel[i], i)
		total += avg
		report.Alternatives = append(report.Alternatives, AlternativeResult{
			Name:           name,
			Weight:         weights[i],
			Rank:           ranks[i],
			AvgReliability: avg,
			Confidence:     ConfidenceFor(avg),
		})
	}
	report.AvgReliability = total / float64(n)
	report.Confidence = ConfidenceFor(report.AvgReliability)
	return report, nil
}

// rowAverage is the mean reliability of one alternative's judgments,
// skipping the diagonal.
func rowAverage(row []float64, diag int) float64 {
	if len(row) <= 1 {
		return 0
	}
	var sum float64
	for j, v := range row {
		if j == diag {
			continue
		}
		sum += v
	}
	return sum / float64(len(row)-1)
}
