// ABOUTME: Verbal anchors, direction labels, and per-type value tables for the nine grades
// ABOUTME: Presentation-facing catalog data; the math itself lives in Transform

package scale

// Verbal anchors for the nine grades of the comparison scale, indexed by
// integer grade. Index 0 is unused.
var gradeLabels = [10]string{
	"",
	"Equally",
	"Weakly or slightly",
	"Moderately",
	"Moderately plus",
	"Strongly",
	"Strongly plus",
	"Very strongly",
	"Very, very strongly",
	"Extremely",
}

// GradeLabel returns the verbal anchor for the integer grade nearest to g,
// or "" when g is outside the grade domain.
func GradeLabel(g float64) string {
	i := int(g + 0.5)
	if i < 1 || i > 9 {
		return ""
	}
	return gradeLabels[i]
}

// Direction labels for the two ends of the scale and the undecided state.
const (
	LabelLess    = "Less"
	LabelMore    = "More"
	LabelNotSure = "Not sure"
)

// Values returns the transformed magnitudes of the nine integer grades under
// the given type. Returns nil if t has no transformation.
func Values(t Type) []float64 {
	if !t.Valid() {
		return nil
	}
	out := make([]float64, 9)
	for i := range out {
		v, err := Transform(float64(i+1), t)
		if err != nil {
			return nil
		}
		out[i] = v
	}
	return out
}

// Describe returns a short formula description for the scale type, used by
// hint popovers next to the type selector.
func Describe(t Type) string {
	switch t {
	case Integer:
		return "Integer: value = grade (1 to 9)"
	case Balanced:
		return "Balanced: (0.5+(g-1)·0.05) / (0.5-(g-1)·0.05)"
	case Power:
		return "Power: 9^((g-1)/8)"
	case MaZheng:
		return "Ma-Zheng: 9/(9+1-g)"
	case DoneganDoddMcMasters:
		return "Donegan-Dodd-McMasters: exp(atanh((g-1)/14·√3))"
	default:
		return ""
	}
}
