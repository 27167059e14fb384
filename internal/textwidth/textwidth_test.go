// ABOUTME: Tests for width measurement, fitting, padding, and the LRU cache
// ABOUTME: Covers ASCII, CJK, emoji, and ANSI-colored strings

package textwidth

import (
	"testing"
)

func TestVisibleWidth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "empty string", input: "", want: 0},
		{name: "ascii", input: "Strongly", want: 8},
		{name: "ansi colored", input: "\x1b[31mred\x1b[0m", want: 3},
		{name: "cjk", input: "你好", want: 4},
		{name: "mixed", input: "hi\x1b[1m!\x1b[0m", want: 3},
		{name: "emoji", input: "⚖️", want: 1},
		{name: "only ansi", input: "\x1b[31m\x1b[0m", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := VisibleWidth(tt.input); got != tt.want {
				t.Errorf("VisibleWidth(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		width int
		want  string
	}{
		{name: "fits untouched", input: "Weakly", width: 10, want: "Weakly"},
		{name: "exact fit", input: "Weakly", width: 6, want: "Weakly"},
		{name: "truncated", input: "Very, very strongly", width: 10, want: "Very, ver…"},
		{name: "single cell", input: "Strongly", width: 1, want: "…"},
		{name: "zero width", input: "Strongly", width: 0, want: ""},
		{name: "wide runes respect cells", input: "你好世界", width: 5, want: "你好…"},
		{name: "ansi stripped before cut", input: "\x1b[31mModerately\x1b[0m", width: 4, want: "Mod…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Fit(tt.input, tt.width); got != tt.want {
				t.Errorf("Fit(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
			}
		})
	}
}

func TestPadAndCenter(t *testing.T) {
	t.Parallel()

	if got := Pad("ab", 5); got != "ab   " {
		t.Errorf("Pad = %q", got)
	}
	if got := Pad("abcdef", 3); got != "abcdef" {
		t.Errorf("Pad of wider string = %q, want unchanged", got)
	}
	if got := Center("ab", 5); got != " ab  " {
		t.Errorf("Center = %q, want odd space on the right", got)
	}
	if got := Center("你", 4); got != " 你 " {
		t.Errorf("Center wide rune = %q", got)
	}
}

func TestCache_EvictionOrder(t *testing.T) {
	t.Parallel()

	c := newCache(3)
	c.put("a", 1)
	c.put("b", 2)
	c.put("c", 3)

	// Touch "a" so "b" becomes least recently used.
	if v, ok := c.get("a"); !ok || v != 1 {
		t.Fatalf("get(a) = %d, %v; want 1, true", v, ok)
	}

	c.put("d", 4)

	if _, ok := c.get("b"); ok {
		t.Error("expected 'b' to be evicted")
	}
	if v, ok := c.get("d"); !ok || v != 4 {
		t.Errorf("get(d) = %d, %v; want 4, true", v, ok)
	}
}

func BenchmarkVisibleWidth_ASCII(b *testing.B) {
	s := "Moderately plus preference toward the first alternative"
	for b.Loop() {
		VisibleWidth(s)
	}
}

func BenchmarkVisibleWidth_ANSI(b *testing.B) {
	s := "\x1b[31;1mStrongly\x1b[0m and \x1b[4mExtremely\x1b[0m"
	for b.Loop() {
		VisibleWidth(s)
	}
}
