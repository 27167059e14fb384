// ABOUTME: Renders the comparison strip: one styled cell per layout box
// ABOUTME: Active panels red, grouped clusters gray, direction ends blue

package interactive

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mauromedda/prefscale-go/internal/engine"
	"github.com/mauromedda/prefscale-go/internal/layout"
	"github.com/mauromedda/prefscale-go/internal/textwidth"
)

var (
	activeStyle    = lipgloss.NewStyle().Background(lipgloss.Color("52")).Foreground(lipgloss.Color("15"))
	groupedStyle   = lipgloss.NewStyle().Background(lipgloss.Color("240")).Foreground(lipgloss.Color("15"))
	directionStyle = lipgloss.NewStyle().Background(lipgloss.Color("17")).Foreground(lipgloss.Color("15"))
	pendingStyle   = lipgloss.NewStyle().Background(lipgloss.Color("88")).Foreground(lipgloss.Color("15")).Bold(true)
	hoverStyle     = lipgloss.NewStyle().Reverse(true).Bold(true)
)

// renderStrip draws the boxes as one row of fixed-width cells.
func renderStrip(snap engine.Snapshot, boxes []layout.Box, hover int) string {
	var b strings.Builder
	for i, box := range boxes {
		if box.Width <= 0 {
			continue
		}
		b.WriteString(styleFor(box, i == hover).Render(cellText(snap, box)))
	}
	return b.String()
}

// cellText fits the box label into the box width. Fine subdivisions show
// their numeric grade: the verbal anchors are too coarse to tell 1.8 from
// 2.4.
func cellText(snap engine.Snapshot, box layout.Box) string {
	label := box.Label
	if box.Kind == layout.BoxGrade && snap.Level == engine.LevelFine {
		label = gradeText(box.Grade)
	}
	if label == "" {
		label = gradeText(box.Grade)
	}
	return textwidth.Center(textwidth.Fit(label, box.Width), box.Width)
}

func gradeText(g float64) string {
	if g == float64(int(g)) {
		return strconv.FormatFloat(g, 'f', 0, 64)
	}
	return strconv.FormatFloat(g, 'f', 1, 64)
}

func styleFor(box layout.Box, hovered bool) lipgloss.Style {
	if hovered {
		return hoverStyle
	}
	if box.Pending {
		return pendingStyle
	}
	switch box.Kind {
	case layout.BoxCluster:
		return groupedStyle
	case layout.BoxDirection:
		return directionStyle
	default:
		return activeStyle
	}
}
