// ABOUTME: Tests for matrix building, weight methods, ranks, and consistency
// ABOUTME: Uses hand-checked matrices with known eigen structure

package ahp

import (
	"math"
	"testing"
)

func TestBuild_ReciprocalStructure(t *testing.T) {
	t.Parallel()

	m, err := Build(3, []Judgment{{0, 1, 3}, {0, 2, 7}, {1, 2, 5}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for i := range 3 {
		if got := m.At(i, i); got != 1 {
			t.Errorf("diagonal (%d,%d) = %g, want 1", i, i, got)
		}
	}
	if got := m.At(1, 0); math.Abs(got-1.0/3) > 1e-12 {
		t.Errorf("mirror (1,0) = %g, want 1/3", got)
	}
	if got := m.At(2, 1); math.Abs(got-0.2) > 1e-12 {
		t.Errorf("mirror (2,1) = %g, want 1/5", got)
	}
}

func TestBuild_RejectsBadJudgments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		n    int
		j    Judgment
	}{
		{"diagonal", 3, Judgment{1, 1, 2}},
		{"row out of range", 3, Judgment{3, 0, 2}},
		{"negative column", 3, Judgment{0, -1, 2}},
		{"zero ratio", 3, Judgment{0, 1, 0}},
		{"negative ratio", 3, Judgment{0, 1, -4}},
		{"nan ratio", 3, Judgment{0, 1, math.NaN()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Build(tt.n, []Judgment{tt.j}); err == nil {
				t.Errorf("Build accepted %+v", tt.j)
			}
		})
	}

	if _, err := NewMatrix(0); err == nil {
		t.Error("NewMatrix(0) succeeded")
	}
}

func TestWeights_ConsistentMatrix(t *testing.T) {
	t.Parallel()

	// w = (4/7, 2/7, 1/7) exactly: every column is a multiple of w.
	m, err := Build(3, []Judgment{{0, 1, 2}, {0, 2, 4}, {1, 2, 2}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := []float64{4.0 / 7, 2.0 / 7, 1.0 / 7}

	for _, method := range []Method{Eigenvector, GeometricMean} {
		got := m.Weights(method)
		for i := range want {
			if math.Abs(got[i]-want[i]) > 1e-9 {
				t.Errorf("%v weight[%d] = %g, want %g", method, i, got[i], want[i])
			}
		}
	}

	cons := Check(m, m.Weights(Eigenvector), 0)
	if math.Abs(cons.LambdaMax-3) > 1e-9 {
		t.Errorf("lambda max = %g, want 3 for a consistent matrix", cons.LambdaMax)
	}
	if math.Abs(cons.CI) > 1e-9 {
		t.Errorf("CI = %g, want 0", cons.CI)
	}
	if !cons.Consistent {
		t.Error("consistent matrix flagged inconsistent")
	}
}

func TestWeights_SumToOne(t *testing.T) {
	t.Parallel()

	m, err := Build(4, []Judgment{
		{0, 1, 3}, {0, 2, 5}, {0, 3, 2},
		{1, 2, 2}, {1, 3, 0.5}, {2, 3, 0.25},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, method := range []Method{Eigenvector, GeometricMean} {
		var sum float64
		for _, w := range m.Weights(method) {
			if w <= 0 {
				t.Errorf("%v produced non-positive weight %g", method, w)
			}
			sum += w
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("%v weights sum to %g, want 1", method, sum)
		}
	}
}

func TestCheck_MildInconsistency(t *testing.T) {
	t.Parallel()

	// Classic near-consistent triple: implied A/C is 15 but judged 7.
	m, err := Build(3, []Judgment{{0, 1, 3}, {0, 2, 7}, {1, 2, 5}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	weights := m.Weights(Eigenvector)
	cons := Check(m, weights, 0)

	if cons.LambdaMax <= 3 || cons.LambdaMax > 3.2 {
		t.Errorf("lambda max = %g, want slightly above 3", cons.LambdaMax)
	}
	if !cons.Consistent {
		t.Errorf("CR = %g, want below the %g threshold", cons.CR, cons.Threshold)
	}
	if cons.CR < 0.01 || cons.CR > 0.10 {
		t.Errorf("CR = %g, want a small but visible ratio", cons.CR)
	}

	if got := Ranks(weights); got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Errorf("ranks = %v, want [1 2 3]", got)
	}
}

func TestCheck_CircularJudgments(t *testing.T) {
	t.Parallel()

	// A beats B, B beats C, C beats A: maximally contradictory.
	m, err := Build(3, []Judgment{{0, 1, 9}, {1, 2, 9}, {0, 2, 1.0 / 9}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	cons := Check(m, m.Weights(Eigenvector), 0)
	if cons.Consistent {
		t.Errorf("circular judgments passed the check (CR = %g)", cons.CR)
	}
	if len(cons.Recommendations) < 2 {
		t.Errorf("recommendations = %v, want revision advice", cons.Recommendations)
	}
}

func TestCheck_SmallMatricesAlwaysConsistent(t *testing.T) {
	t.Parallel()

	m, err := Build(2, []Judgment{{0, 1, 7}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	cons := Check(m, m.Weights(Eigenvector), 0)
	if cons.CR != 0 || !cons.Consistent {
		t.Errorf("2x2 check = %+v, want CR 0", cons)
	}
	if math.Abs(cons.LambdaMax-2) > 1e-9 {
		t.Errorf("2x2 lambda max = %g, want 2", cons.LambdaMax)
	}
}

func TestRandomIndex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n    int
		want float64
	}{
		{1, 0}, {2, 0}, {3, 0.58}, {9, 1.45}, {15, 1.59}, {16, 1.49}, {40, 1.49},
	}
	for _, tt := range tests {
		if got := RandomIndex(tt.n); got != tt.want {
			t.Errorf("RandomIndex(%d) = %g, want %g", tt.n, got, tt.want)
		}
	}
}

func TestRanks_TiesKeepIndexOrder(t *testing.T) {
	t.Parallel()

	if got := Ranks([]float64{0.2, 0.5, 0.3}); got[0] != 3 || got[1] != 1 || got[2] != 2 {
		t.Errorf("Ranks = %v, want [3 1 2]", got)
	}
	if got := Ranks([]float64{0.4, 0.4, 0.2}); got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Errorf("Ranks with tie = %v, want [1 2 3]", got)
	}
}

func TestParseMethod(t *testing.T) {
	t.Parallel()

	if m, err := ParseMethod("geometric-mean"); err != nil || m != GeometricMean {
		t.Errorf("ParseMethod(geometric-mean) = %v, %v", m, err)
	}
	if m, err := ParseMethod(""); err != nil || m != Eigenvector {
		t.Errorf("ParseMethod(empty) = %v, %v, want eigenvector default", m, err)
	}
	if _, err := ParseMethod("harmonic"); err == nil {
		t.Error("ParseMethod(harmonic) succeeded")
	}
}
