// ABOUTME: Consistency checking for comparison matrices: lambda-max, CI, CR
// ABOUTME: Random-index table and recommendation text for inconsistent judgments

package ahp

import "fmt"

// DefaultThreshold is the customary upper bound on the consistency ratio.
const DefaultThreshold = 0.10

// randomIndex holds the average consistency index of random reciprocal
// matrices, indexed by matrix size (position 0 unused).
var randomIndex = [...]float64{
	0, 0.00, 0.00, 0.58, 0.90, 1.12, 1.24, 1.32, 1.41, 1.45, 1.49, 1.51, 1.48, 1.56, 1.57, 1.59,
}

// fallbackRandomIndex covers matrices larger than the table.
const fallbackRandomIndex = 1.49

// RandomIndex returns the random consistency index for an n-by-n matrix.
func RandomIndex(n int) float64 {
	if n < 1 {
		return 0
	}
	if n < len(randomIndex) {
		return randomIndex[n]
	}
	return fallbackRandomIndex
}

// LambdaMax estimates the principal eigenvalue from a weight vector:
// the mean of (A·w)_i / w_i.
func LambdaMax(m *Matrix, weights []float64) float64 {
	n := m.Size()
	var sum float64
	for i := range n {
		var dot float64
		for j := range n {
			dot += m.At(i, j) * weights[j]
		}
		sum += dot / weights[i]
	}
	return sum / float64(n)
}

// ConsistencyIndex is (lambdaMax - n) / (n - 1); zero for a single
// alternative.
func ConsistencyIndex(lambdaMax float64, n int) float64 {
	if n <= 1 {
		return 0
	}
	return (lambdaMax - float64(n)) / float64(n-1)
}

// ConsistencyRatio is CI over the random index. Matrices of one or two
// alternatives are always consistent.
func ConsistencyRatio(ci float64, n int) float64 {
	if n <= 2 {
		return 0
	}
	ri := RandomIndex(n)
	if ri <= 0 {
		return 0
	}
	return ci / ri
}

// Consistency is the outcome of a consistency check.
type Consistency struct {
	LambdaMax  float64
	CI         float64
	CR         float64
	Threshold  float64
	Consistent bool
	// Recommendations is human-readable advice for the report.
	Recommendations []string
}

// Check evaluates the matrix against a CR threshold; pass 0 for the default.
func Check(m *Matrix, weights []float64, threshold float64) Consistency {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	n := m.Size()
	lambdaMax := LambdaMax(m, weights)
	ci := ConsistencyIndex(lambdaMax, n)
	cr := ConsistencyRatio(ci, n)

	c := Consistency{
		LambdaMax:  lambdaMax,
		CI:         ci,
		CR:         cr,
		Threshold:  threshold,
		Consistent: cr <= threshold,
	}
	if c.Consistent {
		c.Recommendations = []string{
			fmt.Sprintf("judgments are consistent (CR = %.4f, threshold %.2f)", cr, threshold),
		}
	} else {
		c.Recommendations = []string{
			fmt.Sprintf("consistency ratio %.4f exceeds the %.2f threshold", cr, threshold),
			"revisit the pairwise judgments",
			"look for the most contradictory pair and adjust its grade",
		}
	}
	return c
}
