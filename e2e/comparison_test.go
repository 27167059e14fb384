// ABOUTME: E2E tests driving a full comparison through the real binary PTY
// ABOUTME: Also covers batch mode and --version through plain process execution

package e2e

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestComparison_NoPreferenceFinishesSession(t *testing.T) {
	if testing.Short() {
		t.Skip("e2e tests skipped in short mode")
	}

	s := startPrefscale(t, "coffee", "tea")
	defer s.close()

	// First and only pair is on screen.
	s.expectStringTimeout(t, "coffee", 5*time.Second)
	s.expectStringTimeout(t, "tea", 5*time.Second)

	// No preference resolves the pair at ratio 1 and finishes the session.
	s.send(t, "n")
	s.expectStringTimeout(t, "Priority Report", 10*time.Second)

	s.send(t, "q")
	s.waitExit(t, 5*time.Second)
}

func TestComparison_DirectionThenGrade(t *testing.T) {
	if testing.Short() {
		t.Skip("e2e tests skipped in short mode")
	}

	s := startPrefscale(t, "coffee", "tea")
	defer s.close()

	s.expectStringTimeout(t, "coffee", 5*time.Second)

	// Hover the right half and confirm: coffee is preferred.
	s.send(t, "l")
	s.sendEnter(t)
	s.expectStringTimeout(t, "Strongly", 5*time.Second)

	// Hover a coarse anchor, confirm, and confirm the refined panel.
	s.send(t, "l")
	s.sendEnter(t)
	s.sendEnter(t)
	s.expectStringTimeout(t, "Priority Report", 10*time.Second)

	s.send(t, "q")
	s.waitExit(t, 5*time.Second)
}

func TestComparison_QuitBeforeJudging(t *testing.T) {
	if testing.Short() {
		t.Skip("e2e tests skipped in short mode")
	}

	s := startPrefscale(t, "coffee", "tea", "water")
	defer s.close()

	s.expectStringTimeout(t, "coffee", 5*time.Second)
	s.send(t, "q")
	s.waitExit(t, 5*time.Second)
}

func TestBatch_ProblemFile(t *testing.T) {
	if testing.Short() {
		t.Skip("e2e tests skipped in short mode")
	}

	bin := buildBinary(t)
	problem := filepath.Join(t.TempDir(), "problem.yaml")
	content := `
alternatives: [cost, quality, support]
judgments:
  - {row: 0, col: 1, grade: 3}
  - {row: 0, col: 2, grade: 5}
  - {row: 1, col: 2, grade: 2}
`
	if err := os.WriteFile(problem, []byte(content), 0o644); err != nil {
		t.Fatalf("writing problem file: %v", err)
	}

	cmd := exec.Command(bin, "-f", problem, "--format", "json")
	cmd.Env = append(os.Environ(), "HOME="+t.TempDir())
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("batch run: %v\n%s", err, out)
	}
	for _, want := range []string{`"weights"`, `"cost"`, `"consistency"`} {
		if !strings.Contains(string(out), want) {
			t.Errorf("batch output missing %s:\n%s", want, out)
		}
	}
}

func TestVersionFlag(t *testing.T) {
	if testing.Short() {
		t.Skip("e2e tests skipped in short mode")
	}

	bin := buildBinary(t)
	out, err := exec.Command(bin, "--version").CombinedOutput()
	if err != nil {
		t.Fatalf("--version: %v\n%s", err, out)
	}
	if !strings.Contains(string(out), "prefscale") {
		t.Errorf("version output = %q, want it to mention prefscale", out)
	}
}
