// ABOUTME: Tests for strip, footer, picker, and hint rendering
// ABOUTME: Asserts on ANSI-stripped text and on image output shape

package interactive

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauromedda/prefscale-go/internal/engine"
	"github.com/mauromedda/prefscale-go/internal/layout"
	"github.com/mauromedda/prefscale-go/internal/scale"
	"github.com/mauromedda/prefscale-go/internal/session"
	"github.com/mauromedda/prefscale-go/internal/textwidth"
)

func TestRenderStrip_WidthMatchesBoxes(t *testing.T) {
	t.Parallel()

	c := engine.New("a", "b")
	mustDo(t, c.ChooseA())
	snap := c.Snapshot()
	boxes := layout.Panels(snap, 72)

	row := textwidth.StripANSI(renderStrip(snap, boxes, 0))
	if got := textwidth.VisibleWidth(row); got != 72 {
		t.Errorf("strip width = %d, want 72", got)
	}
	for _, want := range []string{"Less", "Weakly", "Strongly", "Extremely"} {
		if !strings.Contains(row, want) {
			t.Errorf("strip missing %q\n%s", want, row)
		}
	}
}

func TestRenderStrip_FineShowsFractionalGrades(t *testing.T) {
	t.Parallel()

	c := engine.New("a", "b")
	mustDo(t, c.ChooseA())
	mustDo(t, c.SelectGrade(2))
	mustDo(t, c.SelectGrade(3))
	snap := c.Snapshot()
	boxes := layout.Panels(snap, 80)

	row := textwidth.StripANSI(renderStrip(snap, boxes, 0))
	if !strings.Contains(row, "1.8") || !strings.Contains(row, "4.2") {
		t.Errorf("fine strip missing subdivision grades\n%s", row)
	}
}

func TestFooter_View(t *testing.T) {
	t.Parallel()

	f := NewFooterModel().
		WithPair("a vs b").
		WithProgress(1, 3).
		WithScale(scale.Power).
		WithReliability(3).
		WithWidth(100)

	view := textwidth.StripANSI(f.View())
	for _, want := range []string{"a vs b", "pair 2/3", "power", "reliability: 3"} {
		if !strings.Contains(view, want) {
			t.Errorf("footer missing %q\n%s", want, view)
		}
	}
}

func TestPicker_FuzzyFilter(t *testing.T) {
	t.Parallel()

	s, err := session.New([]string{"espresso", "filter", "instant"}, session.Options{})
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	p := NewPickerModel(s, 80, 24)
	if len(p.filtered) != 3 {
		t.Fatalf("unfiltered entries = %d, want 3", len(p.filtered))
	}

	next, _ := p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("インスタント")})
	p = next.(PickerModel)
	if len(p.filtered) != 0 {
		t.Fatalf("nonsense query should match nothing, got %d", len(p.filtered))
	}

	p = NewPickerModel(s, 80, 24)
	next, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("inst")})
	p = next.(PickerModel)
	for _, idx := range p.filtered {
		if !strings.Contains(p.entries[idx], "inst") {
			t.Errorf("match %q does not contain query", p.entries[idx])
		}
	}
	if len(p.filtered) == 0 {
		t.Fatal("query 'inst' matched nothing")
	}
}

func TestPicker_EnterEmitsPick(t *testing.T) {
	t.Parallel()

	s, err := session.New([]string{"a", "b", "c"}, session.Options{})
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	p := NewPickerModel(s, 80, 24)

	next, _ := p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p = next.(PickerModel)
	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter produced no command")
	}
	msg := cmd()
	picked, ok := msg.(pairPickedMsg)
	if !ok {
		t.Fatalf("command produced %T, want pairPickedMsg", msg)
	}
	if picked.index != 1 {
		t.Errorf("picked index = %d, want 1", picked.index)
	}
}

func TestPicker_EscDismisses(t *testing.T) {
	t.Parallel()

	s, err := session.New([]string{"a", "b"}, session.Options{})
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	p := NewPickerModel(s, 80, 24)
	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc produced no command")
	}
	if _, ok := cmd().(overlayDismissMsg); !ok {
		t.Error("esc did not dismiss the overlay")
	}
}

func TestRenderHalfBlock_Shape(t *testing.T) {
	t.Parallel()

	img := drawHint(layout.BalanceFor(5), scale.Integer)
	lines := renderHalfBlock(img, 60)
	if len(lines) != hintH/2/2 && len(lines) == 0 {
		t.Fatalf("no half-block lines rendered")
	}
	// 120x56 scaled to 60 wide keeps the aspect: 28 pixel rows, 14 lines.
	if len(lines) != 14 {
		t.Errorf("line count = %d, want 14", len(lines))
	}
	if !strings.Contains(lines[0], "▄") {
		t.Error("half-block output missing block characters")
	}
}

func TestRenderHint_TiltFollowsRatio(t *testing.T) {
	t.Parallel()

	heavy := layout.BalanceFor(9)
	if heavy.Heavier != engine.ObjectA || heavy.LoadA <= heavy.LoadB {
		t.Fatalf("BalanceFor(9) = %+v, want A heavier", heavy)
	}
	imgHeavy := drawHint(heavy, scale.Integer)
	imgEqual := drawHint(layout.BalanceFor(1), scale.Integer)

	// A 9:1 tilt and a level balance cannot paint identical pictures.
	if samePixels(imgHeavy.Pix, imgEqual.Pix) {
		t.Error("tilted and level balances rendered identically")
	}
}

func samePixels(a, b []uint8) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
