// ABOUTME: The five preference scale transformations mapping grades to ratio magnitudes
// ABOUTME: Pure math on real-valued grades in [1,9]; out-of-domain grades are rejected

package scale

import (
	"fmt"
	"math"
	"strings"
)

// Grade domain bounds shared by all transformations.
const (
	GradeMin = 1.0
	GradeMax = 9.0
)

// Type identifies a scale transformation.
type Type int

const (
	// None is the no-preference sentinel; it has no transformation.
	None Type = iota
	Integer
	Balanced
	Power
	MaZheng
	DoneganDoddMcMasters
)

// Types lists the five selectable transformations, in display order.
var Types = []Type{Integer, Balanced, Power, MaZheng, DoneganDoddMcMasters}

// String returns the canonical name of the scale type.
func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case Integer:
		return "integer"
	case Balanced:
		return "balanced"
	case Power:
		return "power"
	case MaZheng:
		return "mazheng"
	case DoneganDoddMcMasters:
		return "donegan"
	default:
		return fmt.Sprintf("scale.Type(%d)", int(t))
	}
}

// Valid reports whether t is one of the five selectable transformations.
func (t Type) Valid() bool {
	return t >= Integer && t <= DoneganDoddMcMasters
}

// Parse resolves a scale type from its name. Accepts canonical names and a
// few common aliases ("ma-zheng", "donegan-dodd-mcmasters", "ddm").
func Parse(name string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "integer", "int", "linear":
		return Integer, nil
	case "balanced":
		return Balanced, nil
	case "power":
		return Power, nil
	case "mazheng", "ma-zheng", "ma_zheng":
		return MaZheng, nil
	case "donegan", "donegan-dodd-mcmasters", "ddm", "dodd":
		return DoneganDoddMcMasters, nil
	case "none", "":
		return None, fmt.Errorf("scale type %q is not selectable", name)
	default:
		return None, fmt.Errorf("unknown scale type %q", name)
	}
}

// InvalidGradeError reports a grade outside the transformation domain, or a
// grade that is not offered by the current gradation pattern.
type InvalidGradeError struct {
	Grade  float64
	Reason string
}

func (e *InvalidGradeError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid grade %g: %s", e.Grade, e.Reason)
	}
	return fmt.Sprintf("invalid grade %g: outside [%g,%g]", e.Grade, GradeMin, GradeMax)
}

// ValidGrade reports whether g lies in the transformation domain.
func ValidGrade(g float64) bool {
	return g >= GradeMin && g <= GradeMax && !math.IsNaN(g)
}

// Transform maps a grade to a preference-ratio magnitude under the given
// scale type. Grade 1 maps to 1 under every type, and every type is strictly
// increasing over the domain.
func Transform(grade float64, t Type) (float64, error) {
	if !ValidGrade(grade) {
		return 0, &InvalidGradeError{Grade: grade}
	}
	switch t {
	case Integer:
		return grade, nil
	case Balanced:
		w := 0.5 + (grade-1)*0.05
		return w / (1 - w), nil
	case Power:
		return math.Pow(9, (grade-1)/8), nil
	case MaZheng:
		return 9 / (9 + 1 - grade), nil
	case DoneganDoddMcMasters:
		return math.Exp(math.Atanh((grade - 1) / 14 * math.Sqrt(3))), nil
	default:
		return 0, fmt.Errorf("scale type %v has no transformation", t)
	}
}

// Midpoints subdivides the band [lo,hi] into n panel midpoints:
// the k-th value is lo + (k-0.5)*(hi-lo)/n. Midpoints falling above the
// grade domain are clamped to GradeMax; callers must keep n small enough
// that clamping never produces duplicates.
func Midpoints(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n)
	for k := range n {
		g := lo + (float64(k)+0.5)*step
		if g > GradeMax {
			g = GradeMax
		}
		if g < GradeMin {
			g = GradeMin
		}
		out[k] = g
	}
	return out
}
