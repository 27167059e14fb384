// ABOUTME: Standard filesystem paths for prefscale configuration and data
// ABOUTME: Resolves ~/.config/prefscale/ for user and .prefscale/ for project files

package config

import (
	"os"
	"path/filepath"
)

const projectDirName = ".prefscale"

// UserDir returns the per-user config directory (~/.config/prefscale/).
func UserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", projectDirName)
	}
	return userDir(home)
}

func userDir(home string) string {
	return filepath.Join(home, ".config", "prefscale")
}

// ProjectDir returns the project-local config directory (.prefscale/ under
// the project root).
func ProjectDir(projectRoot string) string {
	return filepath.Join(projectRoot, projectDirName)
}

// UserSettingsFile returns the path to the user settings file.
func UserSettingsFile() string {
	return filepath.Join(UserDir(), "settings.json")
}

func userSettingsFile(home string) string {
	return filepath.Join(userDir(home), "settings.json")
}

// ProjectSettingsFile returns the path to the project settings file.
func ProjectSettingsFile(projectRoot string) string {
	return filepath.Join(ProjectDir(projectRoot), "settings.json")
}

// UserKeybindingsFile returns the path to the user keybindings file.
func UserKeybindingsFile() string {
	return filepath.Join(UserDir(), "keybindings.json")
}

func userKeybindingsFile(home string) string {
	return filepath.Join(userDir(home), "keybindings.json")
}

// ProjectKeybindingsFile returns the path to the project keybindings file.
func ProjectKeybindingsFile(projectRoot string) string {
	return filepath.Join(ProjectDir(projectRoot), "keybindings.json")
}

// DefaultLogFile returns where diagnostics go while the terminal is in use.
func DefaultLogFile() string {
	return filepath.Join(UserDir(), "prefscale.log")
}

// EnsureDir creates a directory and all parents if they don't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o700)
}
