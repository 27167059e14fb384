// ABOUTME: Balance-scale hint data: pan loads and ratio previews for hovers
// ABOUTME: Pure values for the renderer; the cube root keeps extreme pans drawable

package layout

import (
	"math"

	"github.com/mauromedda/prefscale-go/internal/engine"
	"github.com/mauromedda/prefscale-go/internal/scale"
)

// BalanceKind selects what the hint picture shows.
type BalanceKind int

const (
	// BalanceEqual draws level pans with a question mark.
	BalanceEqual BalanceKind = iota
	// BalanceTilt draws one pan heavier than the other.
	BalanceTilt
	// BalanceFormula draws the defining curve of a scale type.
	BalanceFormula
)

// Balance describes one hint picture.
type Balance struct {
	Kind    BalanceKind
	Ratio   float64
	Heavier engine.Object
	// Pan loads, cube-root compressed so a 9:1 preference still fits a
	// small drawing.
	LoadA, LoadB float64
	Formula      scale.Type
}

// BalanceFor maps a preference ratio to a tilted (or level) balance.
func BalanceFor(ratio float64) Balance {
	switch {
	case ratio > 1:
		return Balance{
			Kind:    BalanceTilt,
			Ratio:   ratio,
			Heavier: engine.ObjectA,
			LoadA:   math.Cbrt(ratio),
			LoadB:   1,
		}
	case ratio > 0 && ratio < 1:
		return Balance{
			Kind:    BalanceTilt,
			Ratio:   ratio,
			Heavier: engine.ObjectB,
			LoadA:   1,
			LoadB:   math.Cbrt(1 / ratio),
		}
	default:
		return Balance{Kind: BalanceEqual, Ratio: 1, LoadA: 1, LoadB: 1}
	}
}

// FormulaFor is the hint shown while hovering a scale-type choice.
func FormulaFor(t scale.Type) Balance {
	return Balance{Kind: BalanceFormula, Ratio: 1, Formula: t}
}

// PendingRatio returns the ratio the comparison would settle on right now:
// the transformed pending grade under the chosen direction, 1 before any
// grade is pending.
func PendingRatio(snap engine.Snapshot) float64 {
	if snap.PendingGrade == 0 || snap.Selected == engine.ObjectNone {
		return 1
	}
	m := transformed(snap.PendingGrade, snap.Scale)
	if snap.Selected == engine.ObjectB {
		return 1 / m
	}
	return m
}

// HoverRatio previews the ratio for the box under the cursor. Before a
// direction is chosen the two direction boxes preview the axis midpoint from
// either side; afterwards grade boxes preview their own transformed value and
// the end box previews the standing choice.
func HoverRatio(snap engine.Snapshot, b Box) float64 {
	if b.Kind == BoxDirection {
		if snap.Level == engine.LevelInitial {
			if b.Label == scale.LabelMore {
				return midGrade
			}
			return 1 / midGrade
		}
		return PendingRatio(snap)
	}
	m := transformed(b.Grade, snap.Scale)
	if snap.Selected == engine.ObjectB {
		return 1 / m
	}
	return m
}
