// ABOUTME: Display-width math for strip labels: measuring, fitting, padding
// ABOUTME: Grapheme-aware with an ASCII fast path and an LRU cache for the rest

package textwidth

import (
	"container/list"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const cacheSize = 512

// lruEntry holds a cached width measurement.
type lruEntry struct {
	key   string
	value int
}

// cache is an O(1) LRU cache for non-ASCII string widths.
type cache struct {
	mu    sync.RWMutex
	items map[string]*list.Element
	order *list.List
	size  int
}

func newCache(size int) *cache {
	return &cache{
		items: make(map[string]*list.Element, size),
		order: list.New(),
		size:  size,
	}
}

func (c *cache) get(key string) (int, bool) {
	c.mu.RLock()
	elem, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return 0, false
	}
	c.mu.Lock()
	c.order.MoveToFront(elem)
	c.mu.Unlock()
	return elem.Value.(lruEntry).value, true
}

func (c *cache) put(key string, value int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[key]; ok {
		return
	}
	if c.order.Len() >= c.size {
		back := c.order.Back()
		if back != nil {
			c.order.Remove(back)
			delete(c.items, back.Value.(lruEntry).key)
		}
	}
	elem := c.order.PushFront(lruEntry{key: key, value: value})
	c.items[key] = elem
}

var widthCache = newCache(cacheSize)

// VisibleWidth returns the display width of s, accounting for ANSI escape
// sequences (zero width) and grapheme clusters (emoji and East Asian
// characters may take two cells).
func VisibleWidth(s string) int {
	if s == "" {
		return 0
	}
	if isPlainASCII(s) {
		return len(s)
	}
	if w, ok := widthCache.get(s); ok {
		return w
	}
	w := computeWidth(s)
	widthCache.put(s, w)
	return w
}

// isPlainASCII reports whether s contains only printable ASCII (0x20-0x7E).
func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b < 0x20 || b > 0x7E {
			return false
		}
	}
	return true
}

func computeWidth(s string) int {
	stripped := StripANSI(s)
	w := 0
	state := -1
	for len(stripped) > 0 {
		cluster, rest, _, newState := uniseg.FirstGraphemeClusterInString(stripped, state)
		w += graphemeWidth(cluster)
		stripped = rest
		state = newState
	}
	return w
}

// graphemeWidth returns the display width of a single grapheme cluster.
func graphemeWidth(cluster string) int {
	if len(cluster) == 0 {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(cluster)
	return runewidth.RuneWidth(r)
}

// Fit truncates s to at most w cells, ending with an ellipsis when anything
// was cut. Escape sequences are stripped before truncating; styling belongs
// on top of the fitted text.
func Fit(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if VisibleWidth(s) <= w {
		return s
	}
	plain := StripANSI(s)
	budget := w - 1
	var b strings.Builder
	used := 0
	state := -1
	for len(plain) > 0 {
		cluster, rest, _, newState := uniseg.FirstGraphemeClusterInString(plain, state)
		cw := graphemeWidth(cluster)
		if used+cw > budget {
			break
		}
		b.WriteString(cluster)
		used += cw
		plain = rest
		state = newState
	}
	return b.String() + "…"
}

// Pad extends s with trailing spaces to exactly w cells; wider strings pass
// through unchanged.
func Pad(s string, w int) string {
	gap := w - VisibleWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

// Center surrounds s with spaces to w cells, the odd space going right.
func Center(s string, w int) string {
	gap := w - VisibleWidth(s)
	if gap <= 0 {
		return s
	}
	left := gap / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
}

// StripANSI removes all ANSI escape sequences from s.
func StripANSI(s string) string {
	if !strings.ContainsRune(s, '\x1b') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	i := 0
	for i < len(s) {
		if s[i] == '\x1b' {
			i = skipANSISequence(s, i)
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// skipANSISequence advances past an ANSI escape sequence starting at s[i] and
// returns the index of the first byte after it.
func skipANSISequence(s string, i int) int {
	if i >= len(s) || s[i] != '\x1b' {
		return i
	}
	i++
	if i >= len(s) {
		return i
	}

	switch s[i] {
	case '[':
		// CSI: ESC [ ... <final byte 0x40-0x7E>
		i++
		for i < len(s) {
			b := s[i]
			if b >= 0x40 && b <= 0x7E {
				return i + 1
			}
			i++
		}
		return i
	case ']':
		// OSC: ESC ] ... (ST or BEL)
		i++
		for i < len(s) {
			if s[i] == '\x07' {
				return i + 1
			}
			if s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '\\' {
				return i + 2
			}
			i++
		}
		return i
	default:
		return i + 1
	}
}
