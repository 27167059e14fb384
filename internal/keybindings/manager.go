// ABOUTME: Keybindings manager with O(1) key-to-action lookup
// ABOUTME: Merges user and project configs, detects conflicts, supports hot-reload

package keybindings

import (
	"fmt"
	"strings"
	"sync"

	"github.com/mauromedda/prefscale-go/internal/config"
)

// ConflictInfo describes a binding conflict where multiple actions share a key.
type ConflictInfo struct {
	Key     string
	Actions []config.KeyAction
}

// Manager provides O(1) key-to-action lookup from merged keybindings. Key
// strings follow the bubbletea key-message vocabulary ("ctrl+c", "enter",
// "left", "q"). Reload may run concurrently with lookups.
type Manager struct {
	mu       sync.RWMutex
	bindings *config.Keybindings
	lookup   map[string]config.KeyAction
}

// New creates a Manager from the user and project keybinding files. Missing
// files leave the defaults in place.
func New(projectRoot string) (*Manager, error) {
	kb, err := config.LoadKeybindings(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("loading keybindings: %w", err)
	}
	return NewFromBindings(kb), nil
}

// NewFromBindings creates a Manager from an existing Keybindings instance.
func NewFromBindings(kb *config.Keybindings) *Manager {
	m := &Manager{bindings: kb}
	m.buildLookup()
	return m
}

// ActionForKey returns the action bound to the given key, or "" if unbound.
func (m *Manager) ActionForKey(key string) config.KeyAction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lookup[normalizeKey(key)]
}

// Bindings returns the keys bound to an action, for footer hints.
func (m *Manager) Bindings(action config.KeyAction) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bindings.GetBindings(action)
}

// Conflicts detects keys bound to multiple actions.
func (m *Manager) Conflicts() []ConflictInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keyActions := make(map[string][]config.KeyAction)
	for action, keys := range m.bindings.Bindings {
		for _, k := range keys {
			keyActions[normalizeKey(k)] = append(keyActions[normalizeKey(k)], action)
		}
	}

	var conflicts []ConflictInfo
	for k, actions := range keyActions {
		if len(actions) > 1 {
			conflicts = append(conflicts, ConflictInfo{Key: k, Actions: actions})
		}
	}
	return conflicts
}

// Reload re-reads the keybinding files and rebuilds the lookup table.
func (m *Manager) Reload(projectRoot string) error {
	kb, err := config.LoadKeybindings(projectRoot)
	if err != nil {
		return fmt.Errorf("reloading keybindings: %w", err)
	}
	m.mu.Lock()
	m.bindings = kb
	m.buildLookup()
	m.mu.Unlock()
	return nil
}

// FormatAll returns a formatted table of all keybindings for the help view.
func (m *Manager) FormatAll() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var b strings.Builder
	b.WriteString("Keybindings:\n\n")

	categories := []struct {
		name    string
		actions []config.KeyAction
	}{
		{"Choosing", []config.KeyAction{
			config.ActionHoverLeft, config.ActionHoverRight,
			config.ActionConfirm, config.ActionNoPreference,
		}},
		{"Refining", []config.KeyAction{
			config.ActionBack, config.ActionMoreGradations,
			config.ActionFewerGradations, config.ActionSwitchObject,
		}},
		{"Scales & Hints", []config.KeyAction{
			config.ActionCycleScale, config.ActionToggleHints,
		}},
		{"Session", []config.KeyAction{
			config.ActionPickPair, config.ActionShowReport,
		}},
		{"Control", []config.KeyAction{
			config.ActionHelp, config.ActionQuit,
		}},
	}

	for _, cat := range categories {
		fmt.Fprintf(&b, "## %s\n", cat.name)
		for _, action := range cat.actions {
			keys := m.bindings.GetBindings(action)
			if len(keys) == 0 {
				continue
			}
			fmt.Fprintf(&b, "  %-20s %s\n", strings.Join(keys, ", "), action)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m *Manager) buildLookup() {
	m.lookup = make(map[string]config.KeyAction, len(m.bindings.Bindings)*2)
	for action, keys := range m.bindings.Bindings {
		for _, k := range keys {
			m.lookup[normalizeKey(k)] = action
		}
	}
}

// normalizeKey maps config spellings onto the strings bubbletea reports.
func normalizeKey(k string) string {
	switch k {
	case "space":
		return " "
	case "escape":
		return "esc"
	case "return":
		return "enter"
	default:
		return k
	}
}
