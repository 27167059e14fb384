// ABOUTME: Settings loading with user + project config merge and CLI overrides
// ABOUTME: JSON-based configuration using encoding/json; no external libs

package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mauromedda/prefscale-go/internal/ahp"
	"github.com/mauromedda/prefscale-go/internal/scale"
)

// Settings holds the merged configuration.
type Settings struct {
	// Scale is the default transformation applied at confirmation.
	Scale string `json:"scale,omitempty"`
	// FineGradations is the subdivision count when a cluster first expands.
	FineGradations int `json:"fine_gradations,omitempty"`
	// WeightMethod picks how priorities are derived from judgments.
	WeightMethod string `json:"weight_method,omitempty"`
	// ConsistencyThreshold bounds the acceptable consistency ratio.
	ConsistencyThreshold float64 `json:"consistency_threshold,omitempty"`
	// HideHints suppresses the balance hint while comparing.
	HideHints bool `json:"hide_hints,omitempty"`
	// LogFile receives diagnostics while the terminal is in use.
	LogFile string `json:"log_file,omitempty"`
}

// Default returns the settings used when no file overrides them.
func Default() *Settings {
	return &Settings{
		Scale:                scale.Integer.String(),
		FineGradations:       5,
		WeightMethod:         ahp.Eigenvector.String(),
		ConsistencyThreshold: ahp.DefaultThreshold,
	}
}

// Load reads and merges user and project settings. Project values override
// user values; CLI overrides (may be nil) win over both.
func Load(projectRoot string, cli *Settings) (*Settings, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return LoadWithHome(projectRoot, home, cli)
}

// LoadWithHome is Load with an explicit home directory, for tests.
func LoadWithHome(projectRoot, home string, cli *Settings) (*Settings, error) {
	user, err := loadFile(userSettingsFile(home))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading user config: %w", err)
	}

	project, err := loadFile(ProjectSettingsFile(projectRoot))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	merged := merge(merge(merge(Default(), user), project), cli)
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

// loadFile reads a Settings from a JSON file.
func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// merge overlays non-zero values onto base.
func merge(base, over *Settings) *Settings {
	if base == nil {
		base = &Settings{}
	}
	if over == nil {
		return base
	}

	result := *base

	if over.Scale != "" {
		result.Scale = over.Scale
	}
	if over.FineGradations != 0 {
		result.FineGradations = over.FineGradations
	}
	if over.WeightMethod != "" {
		result.WeightMethod = over.WeightMethod
	}
	if over.ConsistencyThreshold != 0 {
		result.ConsistencyThreshold = over.ConsistencyThreshold
	}
	if over.HideHints {
		result.HideHints = true
	}
	if over.LogFile != "" {
		result.LogFile = over.LogFile
	}

	return &result
}

// Validate rejects values no component could honor.
func (s *Settings) Validate() error {
	if _, err := s.ScaleType(); err != nil {
		return err
	}
	if _, err := s.Method(); err != nil {
		return err
	}
	if s.FineGradations < 2 || s.FineGradations > 8 {
		return fmt.Errorf("fine_gradations %d outside [2,8]", s.FineGradations)
	}
	if s.ConsistencyThreshold < 0 || s.ConsistencyThreshold > 1 {
		return fmt.Errorf("consistency_threshold %g outside [0,1]", s.ConsistencyThreshold)
	}
	return nil
}

// ScaleType resolves the configured default scale.
func (s *Settings) ScaleType() (scale.Type, error) {
	if s.Scale == "" {
		return scale.Integer, nil
	}
	return scale.Parse(s.Scale)
}

// Method resolves the configured weight method.
func (s *Settings) Method() (ahp.Method, error) {
	return ahp.ParseMethod(s.WeightMethod)
}

// Threshold returns the consistency threshold, falling back to the default.
func (s *Settings) Threshold() float64 {
	if s.ConsistencyThreshold <= 0 {
		return ahp.DefaultThreshold
	}
	return s.ConsistencyThreshold
}
