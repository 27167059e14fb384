// ABOUTME: Human-readable rendering of effective configuration
// ABOUTME: Backs the --explain-config flag so users see merged values

package config

import (
	"fmt"
	"strings"
)

// Explain renders a human-readable summary of the effective settings.
func Explain(s *Settings) string {
	if s == nil {
		s = Default()
	}

	var b strings.Builder

	b.WriteString("=== Comparison ===\n")
	fmt.Fprintf(&b, "  Scale:            %s\n", s.Scale)
	fmt.Fprintf(&b, "  FineGradations:   %d\n", s.FineGradations)
	if s.HideHints {
		b.WriteString("  Hints:            hidden\n")
	} else {
		b.WriteString("  Hints:            shown\n")
	}
	b.WriteString("\n")

	b.WriteString("=== Priorities ===\n")
	fmt.Fprintf(&b, "  WeightMethod:     %s\n", s.WeightMethod)
	fmt.Fprintf(&b, "  CRThreshold:      %.2f\n", s.Threshold())
	b.WriteString("\n")

	b.WriteString("=== Files ===\n")
	fmt.Fprintf(&b, "  UserSettings:     %s\n", UserSettingsFile())
	fmt.Fprintf(&b, "  UserKeybindings:  %s\n", UserKeybindingsFile())
	if s.LogFile != "" {
		fmt.Fprintf(&b, "  LogFile:          %s\n", s.LogFile)
	}

	return b.String()
}
