// ABOUTME: Pure layout math for the comparison strip: panel boxes and widths
// ABOUTME: Maps an engine snapshot to drawable boxes; no terminal dependencies

package layout

import (
	"math"

	"github.com/mauromedda/prefscale-go/internal/engine"
	"github.com/mauromedda/prefscale-go/internal/scale"
)

// BoxKind classifies a rendered box in the comparison strip.
type BoxKind int

const (
	// BoxGrade confirms its grade when clicked. At the medium level a grade
	// box may still span a whole collapsed cluster; width tracks coverage,
	// kind tracks what a click does.
	BoxGrade BoxKind = iota
	// BoxCluster expands into finer subdivisions when clicked.
	BoxCluster
	// BoxDirection carries a Less/More label; clicking it picks or flips the
	// favored object.
	BoxDirection
)

// Box is one cell of the comparison strip, in visual left-to-right order.
type Box struct {
	Kind    BoxKind
	Grade   float64 // 0 for direction boxes
	Label   string
	Width   int
	Pending bool
}

// The cardinal grade axis runs from 1.5 to 9.5; grade g owns the unit slot
// centered on it. midGrade is the axis midpoint used for neutral previews.
const (
	axisLo   = 1.5
	axisHi   = 9.5
	midGrade = 5.5
)

// Panels lays out the comparison strip for a snapshot across totalWidth cells.
// Box widths always sum to totalWidth. The direction end box takes a ninth of
// the strip and shows the opposite direction; grade boxes share the rest in
// proportion to the transformed span of the axis each one stands for. With the
// favored object on the A side the strip ascends left to right; on the B side
// it is mirrored.
func Panels(snap engine.Snapshot, totalWidth int) []Box {
	if totalWidth <= 0 {
		return nil
	}

	switch snap.Level {
	case engine.LevelInitial:
		return initialBoxes(totalWidth)
	case engine.LevelCoarse, engine.LevelMedium, engine.LevelFine:
	default:
		return nil
	}

	endWidth := totalWidth / 9
	budget := totalWidth - endWidth

	ws := panelWeights(snap)
	widths := splitWidths(ws, budget)

	boxes := make([]Box, 0, len(snap.Panels)+1)
	for i, p := range snap.Panels {
		kind := BoxGrade
		if p.Kind == engine.PanelGrouped {
			kind = BoxCluster
		}
		boxes = append(boxes, Box{
			Kind:    kind,
			Grade:   p.Grade,
			Label:   scale.GradeLabel(p.Grade),
			Width:   widths[i],
			Pending: pendingMatch(p.Grade, snap.PendingGrade),
		})
	}

	end := Box{Kind: BoxDirection, Width: endWidth, Label: oppositeLabel(snap.Selected)}
	if snap.Selected == engine.ObjectB {
		// Mirror: extreme grades leftmost, direction box on the right.
		reverse(boxes)
		return append(boxes, end)
	}
	return append([]Box{end}, boxes...)
}

// initialBoxes splits the strip between the two direction choices.
func initialBoxes(totalWidth int) []Box {
	half := totalWidth / 2
	return []Box{
		{Kind: BoxDirection, Label: scale.LabelLess, Width: half},
		{Kind: BoxDirection, Label: scale.LabelMore, Width: totalWidth - half},
	}
}

// panelWeights returns one relative weight per snapshot panel, summing to 1.
func panelWeights(snap engine.Snapshot) []float64 {
	n := len(snap.Panels)
	ws := make([]float64, n)

	if snap.Scale == scale.Integer {
		integerWeights(snap, ws)
		return ws
	}

	switch snap.Level {
	case engine.LevelMedium:
		// Medium patterns are measured over the eight unified slots 2..9.
		var sum float64
		for g := 2; g <= 9; g++ {
			sum += transformed(float64(g), snap.Scale)
		}
		for i, p := range snap.Panels {
			var w float64
			for _, slot := range coveredSlots(p.Grade, snap.Branch) {
				w += transformed(slot, snap.Scale)
			}
			ws[i] = w / sum
		}
	default:
		// Coarse and fine panels sit on equal slots; weigh each by the
		// transformed value of its slot midpoint. Coarse slots span the whole
		// axis, fine slots the branch band, and both midpoints are exactly
		// the panel grades.
		var sum float64
		for _, p := range snap.Panels {
			sum += transformed(p.Grade, snap.Scale)
		}
		for i, p := range snap.Panels {
			ws[i] = transformed(p.Grade, snap.Scale) / sum
		}
	}
	return ws
}

// integerWeights fills the uniform splits used by the untransformed scale:
// equal boxes at coarse and fine, equal cluster thirds at medium with the
// expanded cluster's third shared among its members.
func integerWeights(snap engine.Snapshot, ws []float64) {
	if snap.Level != engine.LevelMedium {
		for i := range ws {
			ws[i] = 1 / float64(len(ws))
		}
		return
	}
	members := 0
	for _, p := range snap.Panels {
		if inBranchCluster(p.Grade, snap.Branch) {
			members++
		}
	}
	for i, p := range snap.Panels {
		if inBranchCluster(p.Grade, snap.Branch) {
			ws[i] = 1 / 3.0 / float64(members)
		} else {
			ws[i] = 1 / 3.0
		}
	}
}

// coveredSlots returns the unit slots a medium panel stands for: its own slot
// inside the expanded branch cluster, the whole fixed cluster otherwise.
func coveredSlots(g float64, b engine.Branch) []float64 {
	if inBranchCluster(g, b) {
		return []float64{g}
	}
	return clusterOf(g)
}

// clusterOf returns the fixed three-cluster partition of the nine grades.
func clusterOf(g float64) []float64 {
	switch {
	case g < 4.5:
		return []float64{2, 3, 4}
	case g < 7.5:
		return []float64{5, 6, 7}
	default:
		return []float64{8, 9}
	}
}

func inBranchCluster(g float64, b engine.Branch) bool {
	switch b {
	case engine.BranchWeak:
		return g < 4.5
	case engine.BranchStrong:
		return g >= 4.5 && g < 7.5
	case engine.BranchExtreme:
		return g >= 7.5
	default:
		return false
	}
}

// splitWidths turns relative weights into integer cell widths summing exactly
// to budget, by rounding cumulative positions.
func splitWidths(weights []float64, budget int) []int {
	out := make([]int, len(weights))
	var cum float64
	prev := 0
	for i, w := range weights {
		cum += w
		edge := int(math.Round(cum * float64(budget)))
		out[i] = edge - prev
		prev = edge
	}
	if len(out) > 0 {
		out[len(out)-1] += budget - prev
	}
	return out
}

// transformed returns the scale value of an in-domain grade. The engine only
// produces grades inside [1, 9], so the transform cannot fail here.
func transformed(g float64, t scale.Type) float64 {
	v, err := scale.Transform(g, t)
	if err != nil {
		return g
	}
	return v
}

func oppositeLabel(sel engine.Object) string {
	if sel == engine.ObjectB {
		return scale.LabelMore
	}
	return scale.LabelLess
}

func pendingMatch(g, pending float64) bool {
	return pending != 0 && math.Abs(g-pending) < 1e-6
}

func reverse(boxes []Box) {
	for i, j := 0, len(boxes)-1; i < j; i, j = i+1, j-1 {
		boxes[i], boxes[j] = boxes[j], boxes[i]
	}
}
