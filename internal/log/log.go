// ABOUTME: Leveled logging wrapper around slog levels for verbose diagnostics
// ABOUTME: Global level and sink; defaults to stderr and never touches stdout

package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

// Level constants matching slog levels.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var level atomic.Int64

// sinkHolder wraps the destination writer so it can swap atomically.
type sinkHolder struct {
	w io.Writer
}

var sink atomic.Pointer[sinkHolder]

func init() {
	level.Store(int64(LevelInfo))
	sink.Store(&sinkHolder{w: os.Stderr})
}

// SetLevel sets the global log level.
func SetLevel(l slog.Level) {
	level.Store(int64(l))
}

// GetLevel returns the current log level.
func GetLevel() slog.Level {
	return slog.Level(level.Load())
}

// SetOutput redirects log output; nil restores stderr. The interactive mode
// points this at a file because the alternate screen garbles stderr writes.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	sink.Store(&sinkHolder{w: w})
}

// ToFile appends log output to path and returns a restore func that closes
// the file and reattaches stderr.
func ToFile(path string) (func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	SetOutput(f)
	return func() {
		SetOutput(nil)
		f.Close()
	}, nil
}

func output() io.Writer {
	return sink.Load().w
}

// Debug logs a debug message if the level allows it.
func Debug(format string, args ...any) {
	if GetLevel() > LevelDebug {
		return
	}
	fmt.Fprintf(output(), "[DEBUG] "+format+"\n", args...)
}

// Info logs an info message if the level allows it.
func Info(format string, args ...any) {
	if GetLevel() > LevelInfo {
		return
	}
	fmt.Fprintf(output(), "[INFO] "+format+"\n", args...)
}

// Warn logs a warning message if the level allows it.
func Warn(format string, args ...any) {
	if GetLevel() > LevelWarn {
		return
	}
	fmt.Fprintf(output(), "[WARN] "+format+"\n", args...)
}

// Error logs an error message (always emitted).
func Error(format string, args ...any) {
	fmt.Fprintf(output(), "[ERROR] "+format+"\n", args...)
}
