// ABOUTME: Root AppModel for the comparison TUI: key/mouse dispatch and views
// ABOUTME: Hover-driven strip selection, picker overlay, report view on completion

package interactive

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mauromedda/prefscale-go/internal/config"
	"github.com/mauromedda/prefscale-go/internal/engine"
	"github.com/mauromedda/prefscale-go/internal/layout"
	"github.com/mauromedda/prefscale-go/internal/log"
	"github.com/mauromedda/prefscale-go/internal/scale"
	"github.com/mauromedda/prefscale-go/internal/session"
)

// wheelEvery throttles mouse-wheel gradation changes: only every fourth
// wheel event fires, so a single notch does not race through the range.
const wheelEvery = 4

// stripRow is the screen row the comparison strip renders on, used to hit
// test mouse clicks. The view keeps this layout fixed.
const stripRow = 4

// AppModel is the root Bubble Tea model for the interactive TUI.
type AppModel struct {
	session  *session.Session
	keys     interface{ ActionForKey(string) config.KeyAction }
	settings *config.Settings

	width, height int
	hover         int
	boxes         []layout.Box
	showHints     bool
	wheelCount    int
	flash         string

	footer FooterModel
	report ReportModel

	// Overlay (nil = no overlay)
	overlay tea.Model

	showingReport bool
	quitting      bool
}

// NewAppModel creates an AppModel wired with the given dependencies.
func NewAppModel(deps Deps) AppModel {
	m := AppModel{
		session:   deps.Session,
		keys:      deps.Keys,
		settings:  deps.Settings,
		showHints: !deps.Settings.HideHints,
		footer:    NewFooterModel(),
		report:    NewReportModel(),
		width:     80,
		height:    24,
	}
	m.refreshBoxes()
	return m
}

// Init returns nil; all work is message-driven.
func (m AppModel) Init() tea.Cmd {
	return nil
}

// Update routes messages to the overlay when one is open, otherwise to the
// comparison flow.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.refreshBoxes()
		if m.overlay != nil {
			overlay, cmd := m.overlay.Update(msg)
			m.overlay = overlay
			return m, cmd
		}
		return m, nil

	case pairPickedMsg:
		m.overlay = nil
		if err := m.session.JumpTo(msg.index); err != nil {
			m.flash = err.Error()
			return m, nil
		}
		m.showingReport = false
		m.refreshBoxes()
		return m, nil

	case overlayDismissMsg:
		m.overlay = nil
		return m, nil
	}

	if m.overlay != nil {
		overlay, cmd := m.overlay.Update(msg)
		m.overlay = overlay
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.flash = ""
	action := m.keys.ActionForKey(msg.String())

	if m.showingReport {
		switch action {
		case config.ActionQuit:
			m.quitting = true
			return m, tea.Quit
		case config.ActionPickPair:
			return m.openPicker()
		}
		return m, nil
	}

	switch action {
	case config.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case config.ActionHoverLeft:
		m.moveHover(-1)
	case config.ActionHoverRight:
		m.moveHover(1)

	case config.ActionConfirm:
		m.activate(m.hover)

	case config.ActionBack:
		m.goBack()

	case config.ActionNoPreference:
		m.withComparison(func(c *engine.Comparison) error { return c.NoPreference() })
		m.afterTerminal()

	case config.ActionSwitchObject:
		m.withComparison(func(c *engine.Comparison) error { return c.SwitchObject() })

	case config.ActionCycleScale:
		m.cycleScale()

	case config.ActionMoreGradations:
		m.withComparison(func(c *engine.Comparison) error { return c.IncreaseGradations() })
	case config.ActionFewerGradations:
		m.withComparison(func(c *engine.Comparison) error { return c.DecreaseGradations() })

	case config.ActionToggleHints:
		m.showHints = !m.showHints

	case config.ActionPickPair:
		return m.openPicker()

	case config.ActionShowReport:
		if m.session.Finished() {
			m.showingReport = true
		} else {
			m.flash = "report is available once every pair is judged"
		}
	}
	return m, nil
}

// handleMouse maps wheel movement to gradation changes and clicks to the
// strip box under the pointer.
func (m AppModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showingReport {
		return m, nil
	}
	switch {
	case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown:
		m.wheelCount++
		if m.wheelCount%wheelEvery != 0 {
			return m, nil
		}
		if msg.Button == tea.MouseButtonWheelUp {
			m.withComparison(func(c *engine.Comparison) error { return c.IncreaseGradations() })
		} else {
			m.withComparison(func(c *engine.Comparison) error { return c.DecreaseGradations() })
		}

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if msg.Y != stripRow {
			return m, nil
		}
		if i := boxAt(m.boxes, msg.X); i >= 0 {
			m.hover = i
			m.activate(i)
		}
	}
	return m, nil
}

// activate performs the hovered box's click action.
func (m *AppModel) activate(i int) {
	if i < 0 || i >= len(m.boxes) {
		return
	}
	box := m.boxes[i]
	c, err := m.session.Current()
	if err != nil {
		m.flash = err.Error()
		return
	}
	snap := c.Snapshot()

	switch box.Kind {
	case layout.BoxDirection:
		if snap.Level == engine.LevelInitial {
			// "More" favors the first alternative, "Less" the second.
			if box.Label == scale.LabelMore {
				err = c.ChooseA()
			} else {
				err = c.ChooseB()
			}
		} else {
			err = c.SwitchObject()
		}
	default:
		err = c.SelectGrade(box.Grade)
	}

	if err != nil {
		m.flash = err.Error()
		return
	}
	if c.Done() {
		m.afterTerminal()
		return
	}
	m.refreshBoxes()
}

// goBack rewinds the comparison, or reopens the previous pair from the
// initial level.
func (m *AppModel) goBack() {
	c, err := m.session.Current()
	if err != nil {
		m.flash = err.Error()
		return
	}
	if c.Snapshot().Level == engine.LevelInitial {
		if err := m.session.Back(); err != nil {
			m.flash = err.Error()
		}
	} else if err := c.Back(); err != nil {
		m.flash = err.Error()
	}
	m.refreshBoxes()
}

// afterTerminal records the finished comparison and moves on.
func (m *AppModel) afterTerminal() {
	c, err := m.session.Current()
	if err != nil {
		m.flash = err.Error()
		return
	}
	result, err := c.Result()
	if err != nil {
		m.flash = err.Error()
		return
	}
	if err := m.session.Advance(); err != nil {
		m.flash = err.Error()
		return
	}
	log.Debug("judgment recorded: ratio %.3f reliability %g", result.Ratio, result.Reliability)
	m.flash = fmt.Sprintf("recorded ratio %.3f", result.Ratio)

	if m.session.Finished() {
		m.showingReport = true
		return
	}
	m.refreshBoxes()
}

func (m *AppModel) cycleScale() {
	c, err := m.session.Current()
	if err != nil {
		m.flash = err.Error()
		return
	}
	next := nextScale(c.Snapshot().Scale)
	if err := c.SetScaleType(next); err != nil {
		m.flash = err.Error()
		return
	}
	m.refreshBoxes()
}

// nextScale cycles through the selectable transformations in display order.
func nextScale(t scale.Type) scale.Type {
	for i, s := range scale.Types {
		if s == t {
			return scale.Types[(i+1)%len(scale.Types)]
		}
	}
	return scale.Types[0]
}

func (m *AppModel) withComparison(f func(*engine.Comparison) error) {
	c, err := m.session.Current()
	if err != nil {
		m.flash = err.Error()
		return
	}
	if err := f(c); err != nil {
		m.flash = err.Error()
		return
	}
	m.refreshBoxes()
}

func (m *AppModel) refreshBoxes() {
	if m.session.Finished() {
		m.boxes = nil
		return
	}
	c, err := m.session.Current()
	if err != nil {
		m.boxes = nil
		return
	}
	m.boxes = layout.Panels(c.Snapshot(), m.stripWidth())
	if m.hover >= len(m.boxes) {
		m.hover = len(m.boxes) - 1
	}
	if m.hover < 0 {
		m.hover = 0
	}
}

func (m *AppModel) moveHover(delta int) {
	if len(m.boxes) == 0 {
		return
	}
	m.hover = (m.hover + delta + len(m.boxes)) % len(m.boxes)
}

func (m AppModel) stripWidth() int {
	w := m.width - 2
	if w < 18 {
		w = 18
	}
	return w
}

// View renders the comparison screen, the report, or the active overlay.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	if m.overlay != nil {
		return m.overlay.View()
	}
	if m.showingReport {
		return m.reportView()
	}
	return m.comparisonView()
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	questionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	flashStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

func (m AppModel) comparisonView() string {
	c, err := m.session.Current()
	if err != nil {
		return "all pairs judged\n"
	}
	snap := c.Snapshot()
	done, total := m.session.Progress()

	var b strings.Builder
	b.WriteString(titleStyle.Render("prefscale"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s\n",
		questionStyle.Render(fmt.Sprintf("Is %q more or less important than %q?", snap.ObjectA, snap.ObjectB)))
	b.WriteString("\n")

	b.WriteString(renderStrip(snap, m.boxes, m.hover))
	b.WriteString("\n")

	if m.showHints {
		b.WriteString("\n")
		b.WriteString(renderHint(snap, m.boxes, m.hover, m.stripWidth()))
		b.WriteString("\n")
	}

	if m.flash != "" {
		b.WriteString("\n")
		b.WriteString(flashStyle.Render(m.flash))
		b.WriteString("\n")
	}

	footer := m.footer.
		WithPair(m.session.Describe(mustPair(m.session))).
		WithProgress(done, total).
		WithScale(snap.Scale).
		WithReliability(snap.Reliability).
		WithWidth(m.width)
	b.WriteString("\n")
	b.WriteString(footer.View())
	return b.String()
}

func (m AppModel) reportView() string {
	r, err := m.session.Report()
	if err != nil {
		return flashStyle.Render(err.Error()) + "\n"
	}
	return m.report.View(r, m.width, m.height)
}

func (m AppModel) openPicker() (tea.Model, tea.Cmd) {
	m.overlay = NewPickerModel(m.session, m.width, m.height)
	return m, nil
}

// boxAt returns the index of the box covering column x, or -1.
func boxAt(boxes []layout.Box, x int) int {
	edge := 0
	for i, b := range boxes {
		edge += b.Width
		if x < edge {
			return i
		}
	}
	return -1
}

func mustPair(s *session.Session) session.Pair {
	p, err := s.Pair()
	if err != nil {
		return session.Pair{}
	}
	return p
}
