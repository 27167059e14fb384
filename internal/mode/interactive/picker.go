// ABOUTME: Fuzzy pair picker overlay: jump to any pair to judge it again
// ABOUTME: Filters pair descriptions with sahilm/fuzzy as the user types

package interactive

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/mauromedda/prefscale-go/internal/session"
	"github.com/mauromedda/prefscale-go/internal/textwidth"
)

// pairPickedMsg reports the chosen pair index to the app model.
type pairPickedMsg struct {
	index int
}

// overlayDismissMsg closes the active overlay without a choice.
type overlayDismissMsg struct{}

var (
	pickerTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	pickerSelectedStyle = lipgloss.NewStyle().Reverse(true)
	pickerJudgedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

// PickerModel is the pair selection overlay.
type PickerModel struct {
	entries  []string // "a vs b" per pair, in comparison order
	judged   []bool
	filtered []int // indexes into entries, in match order
	query    string
	cursor   int
	width    int
	height   int
}

// NewPickerModel builds the overlay from the session's pair list.
func NewPickerModel(s *session.Session, width, height int) PickerModel {
	pairs := s.Pairs()
	entries := make([]string, len(pairs))
	for i, p := range pairs {
		entries[i] = s.Describe(p)
	}
	judged := make([]bool, len(pairs))
	for i := range pairs {
		judged[i] = s.Judged(i)
	}

	m := PickerModel{
		entries: entries,
		judged:  judged,
		width:   width,
		height:  height,
	}
	m.refilter()
	return m
}

// Init returns nil.
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update handles typing, cursor movement, selection, and dismissal.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			return m, func() tea.Msg { return overlayDismissMsg{} }
		case tea.KeyEnter:
			if len(m.filtered) == 0 {
				return m, func() tea.Msg { return overlayDismissMsg{} }
			}
			idx := m.filtered[m.cursor]
			return m, func() tea.Msg { return pairPickedMsg{index: idx} }
		case tea.KeyUp:
			if m.cursor > 0 {
				m.cursor--
			}
		case tea.KeyDown:
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
		case tea.KeyBackspace:
			if m.query != "" {
				m.query = m.query[:len(m.query)-1]
				m.refilter()
			}
		case tea.KeyRunes, tea.KeySpace:
			m.query += string(msg.Runes)
			m.refilter()
		}
	}
	return m, nil
}

// refilter recomputes the visible entries for the current query.
func (m *PickerModel) refilter() {
	if m.query == "" {
		m.filtered = make([]int, len(m.entries))
		for i := range m.entries {
			m.filtered[i] = i
		}
	} else {
		matches := fuzzy.Find(m.query, m.entries)
		m.filtered = make([]int, len(matches))
		for i, match := range matches {
			m.filtered[i] = match.Index
		}
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View renders the query line and the filtered pair list.
func (m PickerModel) View() string {
	var b strings.Builder
	b.WriteString(pickerTitleStyle.Render("jump to pair"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "> %s\n\n", m.query)

	maxRows := m.height - 6
	if maxRows < 1 {
		maxRows = 1
	}
	for row, idx := range m.filtered {
		if row >= maxRows {
			fmt.Fprintf(&b, "  … %d more\n", len(m.filtered)-maxRows)
			break
		}
		line := textwidth.Fit(m.entries[idx], m.width-4)
		switch {
		case row == m.cursor:
			line = pickerSelectedStyle.Render(line)
		case m.judged[idx]:
			line = pickerJudgedStyle.Render(line)
		}
		fmt.Fprintf(&b, "  %s\n", line)
	}
	if len(m.filtered) == 0 {
		b.WriteString("  no matching pair\n")
	}
	return b.String()
}
