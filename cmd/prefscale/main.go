// ABOUTME: CLI entry point for prefscale
// ABOUTME: Parses flags, loads config, dispatches to interactive, batch, or RPC mode

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/mauromedda/prefscale-go/internal/config"
	"github.com/mauromedda/prefscale-go/internal/export"
	"github.com/mauromedda/prefscale-go/internal/keybindings"
	pslog "github.com/mauromedda/prefscale-go/internal/log"
	"github.com/mauromedda/prefscale-go/internal/mode/interactive"
	"github.com/mauromedda/prefscale-go/internal/mode/print"
	"github.com/mauromedda/prefscale-go/internal/mode/rpc"
	"github.com/mauromedda/prefscale-go/internal/session"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	args := parseFlags()

	if args.version {
		fmt.Printf("prefscale %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run loads configuration and dispatches to the selected mode.
func run(args cliArgs) error {
	if args.verbose {
		pslog.SetLevel(pslog.LevelDebug)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	cfg, err := config.Load(cwd, buildCLIOverrides(args))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if args.explainConfig {
		fmt.Print(config.Explain(cfg))
		return nil
	}

	// RPC mode: serve comparisons to an external frontend over stdin/stdout.
	if args.rpcMode {
		return rpc.NewServer().Run()
	}

	// Batch mode: analyze a problem file, no terminal needed.
	if args.file != "" {
		return runPrint(args, cfg)
	}

	return runInteractive(args, cfg, cwd)
}

// buildCLIOverrides maps CLI flags to a Settings struct for Load.
func buildCLIOverrides(args cliArgs) *config.Settings {
	s := &config.Settings{}
	if args.scale != "" {
		s.Scale = args.scale
	}
	if args.method != "" {
		s.WeightMethod = args.method
	}
	if args.threshold != 0 {
		s.ConsistencyThreshold = args.threshold
	}
	return s
}

// runPrint analyzes the problem file and writes results to stdout.
func runPrint(args cliArgs, cfg *config.Settings) error {
	method, err := cfg.Method()
	if err != nil {
		return err
	}
	st, err := cfg.ScaleType()
	if err != nil {
		return err
	}
	return print.Run(context.Background(), print.Config{
		Format:    args.format,
		Method:    method,
		Threshold: cfg.Threshold(),
		Scale:     st,
	}, args.file, os.Stdout)
}

// runInteractive compares the positional alternatives in the TUI and, once
// every pair is judged, prints the report and optionally writes it to a file.
func runInteractive(args cliArgs, cfg *config.Settings, cwd string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("interactive mode needs a terminal; use -f to analyze a problem file")
	}

	alts := args.remaining()
	if len(alts) < 2 {
		return fmt.Errorf("need at least two alternatives to compare, got %d", len(alts))
	}

	st, err := cfg.ScaleType()
	if err != nil {
		return err
	}
	method, err := cfg.Method()
	if err != nil {
		return err
	}
	sess, err := session.New(alts, session.Options{
		Scale:          st,
		Method:         method,
		Threshold:      cfg.Threshold(),
		FineGradations: cfg.FineGradations,
	})
	if err != nil {
		return err
	}

	keys, err := keybindings.New(cwd)
	if err != nil {
		pslog.Warn("keybindings: %v, using defaults", err)
		keys = keybindings.NewFromBindings(config.NewKeybindings())
	}

	// Keybinding edits apply to the live session.
	watcher := config.WatchSettings(cwd, func() {
		if err := keys.Reload(cwd); err != nil {
			pslog.Warn("reloading keybindings: %v", err)
		}
	})
	watcher.Start()
	defer watcher.Stop()

	// Divert diagnostics to a file while Bubble Tea owns the terminal.
	logPath := cfg.LogFile
	if logPath == "" {
		logPath = config.DefaultLogFile()
	}
	if closeLog, err := pslog.ToFile(logPath); err == nil {
		defer closeLog()
	}

	report, err := interactive.Run(interactive.Deps{
		Session:  sess,
		Keys:     keys,
		Settings: cfg,
	})
	if err != nil {
		return err
	}
	if report == nil {
		// Quit before every pair was judged; nothing to report.
		return nil
	}

	fmt.Print(export.Markdown(report))

	if args.output != "" {
		return writeReport(report, args.output)
	}
	return nil
}

// writeReport saves the report in the format implied by the file extension.
func writeReport(r *session.Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html":
		err = export.HTML(r, f)
	case ".json":
		err = export.JSON(r, f)
	default:
		_, err = io.WriteString(f, export.Markdown(r))
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
