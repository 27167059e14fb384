// ABOUTME: FooterModel renders a one-line status bar for the comparison view
// ABOUTME: Shows pair, progress, scale type, reliability, and key hints

package interactive

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mauromedda/prefscale-go/internal/scale"
	"github.com/mauromedda/prefscale-go/internal/textwidth"
)

var (
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	hintsStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// FooterModel is a leaf view; builders return modified copies.
type FooterModel struct {
	pair        string
	done, total int
	scaleType   scale.Type
	reliability float64
	width       int
}

// NewFooterModel creates an empty FooterModel.
func NewFooterModel() FooterModel {
	return FooterModel{width: 80}
}

// WithPair returns a FooterModel showing the current pair.
func (m FooterModel) WithPair(p string) FooterModel {
	m.pair = p
	return m
}

// WithProgress returns a FooterModel with judged/total counts.
func (m FooterModel) WithProgress(done, total int) FooterModel {
	m.done, m.total = done, total
	return m
}

// WithScale returns a FooterModel showing the active scale type.
func (m FooterModel) WithScale(t scale.Type) FooterModel {
	m.scaleType = t
	return m
}

// WithReliability returns a FooterModel showing the current reliability.
func (m FooterModel) WithReliability(r float64) FooterModel {
	m.reliability = r
	return m
}

// WithWidth returns a FooterModel fitted to the terminal width.
func (m FooterModel) WithWidth(w int) FooterModel {
	m.width = w
	return m
}

// View renders the status line plus a dimmed key-hint line.
func (m FooterModel) View() string {
	status := fmt.Sprintf("%s | pair %d/%d | scale: %s | reliability: %g",
		m.pair, m.done+1, m.total, m.scaleType, m.reliability)
	if m.done >= m.total {
		status = fmt.Sprintf("all %d pairs judged", m.total)
	}

	hints := "←/→ hover · enter select · esc back · s scale · +/- gradations · n no preference · p pairs · q quit"

	var b strings.Builder
	b.WriteString(footerStyle.Render(textwidth.Fit(status, m.width)))
	b.WriteString("\n")
	b.WriteString(hintsStyle.Render(textwidth.Fit(hints, m.width)))
	return b.String()
}
