// ABOUTME: PTY harness for end-to-end tests against the real prefscale binary
// ABOUTME: Builds the binary once, starts it in a pseudo-terminal, drives it with keys

package e2e

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
)

var (
	buildOnce  sync.Once
	binaryPath string
	buildErr   error
)

// buildBinary compiles cmd/prefscale once for the whole package.
func buildBinary(t *testing.T) string {
	t.Helper()
	buildOnce.Do(func() {
		dir, err := os.MkdirTemp("", "prefscale-e2e-")
		if err != nil {
			buildErr = err
			return
		}
		path := filepath.Join(dir, "prefscale")
		cmd := exec.Command("go", "build", "-o", path, "../cmd/prefscale")
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = fmt.Errorf("go build: %v\n%s", err, out)
			return
		}
		binaryPath = path
	})
	if buildErr != nil {
		t.Fatalf("building binary: %v", buildErr)
	}
	return binaryPath
}

// cliSession is one running prefscale process behind a PTY.
type cliSession struct {
	cmd  *exec.Cmd
	tty  *os.File
	mu   sync.Mutex
	out  strings.Builder
	done chan error
}

// startPrefscale launches the binary in a PTY with an isolated HOME so user
// config never leaks into the test.
func startPrefscale(t *testing.T, args ...string) *cliSession {
	t.Helper()
	bin := buildBinary(t)

	cmd := exec.Command(bin, args...)
	cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"HOME="+t.TempDir(),
	)

	tty, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: 40, Cols: 120})
	if err != nil {
		t.Fatalf("starting pty: %v", err)
	}

	s := &cliSession{cmd: cmd, tty: tty, done: make(chan error, 1)}
	go s.readLoop()
	go func() { s.done <- cmd.Wait() }()
	return s
}

func (s *cliSession) readLoop() {
	buf := make([]byte, 4096)
	for {
		n, err := s.tty.Read(buf)
		if n > 0 {
			s.mu.Lock()
			s.out.Write(buf[:n])
			s.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

func (s *cliSession) output() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.out.String()
}

// expectStringTimeout polls the accumulated output until want appears.
func (s *cliSession) expectStringTimeout(t *testing.T, want string, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if strings.Contains(s.output(), want) {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	out := s.output()
	if len(out) > 2000 {
		out = out[len(out)-2000:]
	}
	t.Fatalf("timed out waiting for %q; output tail:\n%s", want, out)
}

func (s *cliSession) send(t *testing.T, text string) {
	t.Helper()
	if _, err := s.tty.Write([]byte(text)); err != nil {
		t.Fatalf("writing to pty: %v", err)
	}
}

func (s *cliSession) sendEnter(t *testing.T) {
	t.Helper()
	s.send(t, "\r")
}

func (s *cliSession) waitExit(t *testing.T, timeout time.Duration) {
	t.Helper()
	select {
	case <-s.done:
	case <-time.After(timeout):
		t.Fatalf("process did not exit within %v", timeout)
	}
}

func (s *cliSession) close() {
	if s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	_ = s.tty.Close()
	select {
	case <-s.done:
	case <-time.After(2 * time.Second):
	}
}
