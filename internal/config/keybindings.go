// ABOUTME: Keybinding actions and loader for the comparison interface
// ABOUTME: JSON maps of action name to key list, user + project override chain

package config

import (
	"encoding/json"
	"os"
)

// KeyAction represents an action that can be bound to keys.
type KeyAction string

const (
	ActionQuit            KeyAction = "quit"
	ActionHelp            KeyAction = "help"
	ActionBack            KeyAction = "back"
	ActionConfirm         KeyAction = "confirm"
	ActionNoPreference    KeyAction = "noPreference"
	ActionSwitchObject    KeyAction = "switchObject"
	ActionCycleScale      KeyAction = "cycleScale"
	ActionMoreGradations  KeyAction = "moreGradations"
	ActionFewerGradations KeyAction = "fewerGradations"
	ActionHoverLeft       KeyAction = "hoverLeft"
	ActionHoverRight      KeyAction = "hoverRight"
	ActionToggleHints     KeyAction = "toggleHints"
	ActionShowReport      KeyAction = "showReport"
	ActionPickPair        KeyAction = "pickPair"
)

// Keybindings maps actions to the keys that trigger them.
type Keybindings struct {
	Bindings map[KeyAction][]string `json:"-"`
}

// RawKeybindings is the on-disk form.
type RawKeybindings map[string][]string

// NewKeybindings creates a Keybindings with the default bindings.
func NewKeybindings() *Keybindings {
	kb := &Keybindings{
		Bindings: make(map[KeyAction][]string),
	}
	kb.setDefaultBindings()
	return kb
}

// setDefaultBindings installs the defaults; key names follow the bubbletea
// key-message vocabulary.
func (kb *Keybindings) setDefaultBindings() {
	kb.Bindings[ActionQuit] = []string{"q", "ctrl+c"}
	kb.Bindings[ActionHelp] = []string{"?"}
	kb.Bindings[ActionBack] = []string{"esc", "backspace"}
	kb.Bindings[ActionConfirm] = []string{"enter", " "}
	kb.Bindings[ActionNoPreference] = []string{"n"}
	kb.Bindings[ActionSwitchObject] = []string{"tab"}
	kb.Bindings[ActionCycleScale] = []string{"s"}
	kb.Bindings[ActionMoreGradations] = []string{"+", "="}
	kb.Bindings[ActionFewerGradations] = []string{"-", "_"}
	kb.Bindings[ActionHoverLeft] = []string{"left", "h"}
	kb.Bindings[ActionHoverRight] = []string{"right", "l"}
	kb.Bindings[ActionToggleHints] = []string{"v"}
	kb.Bindings[ActionShowReport] = []string{"r"}
	kb.Bindings[ActionPickPair] = []string{"p"}
}

// LoadKeybindings merges user and project keybinding files over the
// defaults. Missing files are fine; unknown action names are ignored.
func LoadKeybindings(projectRoot string) (*Keybindings, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return LoadKeybindingsWithHome(projectRoot, home)
}

// LoadKeybindingsWithHome is LoadKeybindings with an explicit home, for tests.
func LoadKeybindingsWithHome(projectRoot, home string) (*Keybindings, error) {
	kb := NewKeybindings()
	for _, path := range []string{userKeybindingsFile(home), ProjectKeybindingsFile(projectRoot)} {
		if err := kb.overlayFile(path); err != nil {
			return nil, err
		}
	}
	return kb, nil
}

func (kb *Keybindings) overlayFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var raw RawKeybindings
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for actionName, keys := range raw {
		action := KeyAction(actionName)
		if _, ok := kb.Bindings[action]; ok {
			kb.Bindings[action] = keys
		}
	}
	return nil
}

// GetBindings returns the bindings for an action.
func (kb *Keybindings) GetBindings(action KeyAction) []string {
	if kb == nil {
		return nil
	}
	return kb.Bindings[action]
}

// ExportTemplate renders the current keybindings as a JSON template users can
// copy into keybindings.json.
func (kb *Keybindings) ExportTemplate() (string, error) {
	raw := make(RawKeybindings)
	for action, keys := range kb.Bindings {
		raw[string(action)] = keys
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
