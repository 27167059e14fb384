// ABOUTME: Reciprocal pairwise-comparison matrices and priority weight methods
// ABOUTME: Judgments fill the upper triangle; reciprocals and the diagonal are implied

package ahp

import (
	"fmt"
	"math"
	"sort"
)

// Judgment is one pairwise comparison: Value says how strongly alternative
// Row is preferred over alternative Col.
type Judgment struct {
	Row, Col int
	Value    float64
}

// Matrix is a positive reciprocal comparison matrix. The diagonal is fixed at
// 1 and m[j][i] always equals 1/m[i][j].
type Matrix struct {
	n     int
	cells []float64
}

// NewMatrix returns the n-by-n identity-of-preference matrix (all ones).
func NewMatrix(n int) (*Matrix, error) {
	if n < 1 {
		return nil, fmt.Errorf("matrix size %d: need at least one alternative", n)
	}
	m := &Matrix{n: n, cells: make([]float64, n*n)}
	for i := range m.cells {
		m.cells[i] = 1
	}
	return m, nil
}

// Build fills a fresh matrix from upper-triangle judgments. Later judgments
// for the same pair overwrite earlier ones.
func Build(n int, judgments []Judgment) (*Matrix, error) {
	m, err := NewMatrix(n)
	if err != nil {
		return nil, err
	}
	for _, j := range judgments {
		if err := m.Set(j.Row, j.Col, j.Value); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Size returns the number of alternatives.
func (m *Matrix) Size() int {
	return m.n
}

// At returns the preference of alternative i over alternative j.
func (m *Matrix) At(i, j int) float64 {
	return m.cells[i*m.n+j]
}

// Set records that alternative i is preferred value times over alternative j,
// and the reciprocal in the mirrored cell.
func (m *Matrix) Set(i, j int, value float64) error {
	if i < 0 || i >= m.n || j < 0 || j >= m.n {
		return fmt.Errorf("judgment (%d,%d) outside %dx%d matrix", i, j, m.n, m.n)
	}
	if i == j {
		return fmt.Errorf("judgment (%d,%d): the diagonal is fixed at 1", i, j)
	}
	if value <= 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("judgment (%d,%d): ratio %g is not a positive real", i, j, value)
	}
	m.cells[i*m.n+j] = value
	m.cells[j*m.n+i] = 1 / value
	return nil
}

// Method selects how priority weights are derived from the matrix.
type Method int

const (
	// Eigenvector approximates the principal eigenvector by power iteration.
	Eigenvector Method = iota
	// GeometricMean normalizes the geometric means of the rows.
	GeometricMean
)

// String returns the method name used in config files and reports.
func (m Method) String() string {
	if m == GeometricMean {
		return "geometric-mean"
	}
	return "eigenvector"
}

// ParseMethod resolves a weight method from its config name.
func ParseMethod(name string) (Method, error) {
	switch name {
	case "eigenvector", "eigen", "":
		return Eigenvector, nil
	case "geometric-mean", "geometric", "gm":
		return GeometricMean, nil
	default:
		return Eigenvector, fmt.Errorf("unknown weight method %q", name)
	}
}

// Power iteration bounds. Positive reciprocal matrices converge quickly; the
// iteration cap only guards degenerate input.
const (
	powerIterations = 500
	powerTolerance  = 1e-12
)

// Weights returns the normalized priority vector (entries sum to 1).
func (m *Matrix) Weights(method Method) []float64 {
	if method == GeometricMean {
		return m.geometricMeanWeights()
	}
	return m.eigenvectorWeights()
}

// eigenvectorWeights runs power iteration to the principal eigenvector. A
// positive matrix has a simple dominant eigenvalue, so the iteration settles
// on its eigenvector from any positive start.
func (m *Matrix) eigenvectorWeights() []float64 {
	n := m.n
	w := make([]float64, n)
	for i := range w {
		w[i] = 1 / float64(n)
	}

	next := make([]float64, n)
	for range powerIterations {
		var sum float64
		for i := range n {
			var dot float64
			for j := range n {
				dot += m.At(i, j) * w[j]
			}
			next[i] = dot
			sum += dot
		}
		var delta float64
		for i := range n {
			next[i] /= sum
			delta = math.Max(delta, math.Abs(next[i]-w[i]))
		}
		w, next = next, w
		if delta < powerTolerance {
			break
		}
	}
	return w
}

func (m *Matrix) geometricMeanWeights() []float64 {
	n := m.n
	w := make([]float64, n)
	var sum float64
	for i := range n {
		product := 1.0
		for j := range n {
			product *= m.At(i, j)
		}
		w[i] = math.Pow(product, 1/float64(n))
		sum += w[i]
	}
	for i := range w {
		w[i] /= sum
	}
	return w
}

// Ranks maps weights to 1-based ranks, heaviest weight first. Equal weights
// keep their index order.
func Ranks(weights []float64) []int {
	order := make([]int, len(weights))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return weights[order[i]] > weights[order[j]]
	})
	ranks := make([]int, len(weights))
	for pos, idx := range order {
		ranks[idx] = pos + 1
	}
	return ranks
}
