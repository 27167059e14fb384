// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Supports -f, --rpc, --scale, --method, --format, -o, --verbose, --version

package main

import "flag"

type cliArgs struct {
	file          string
	rpcMode       bool
	scale         string
	method        string
	format        string
	output        string
	threshold     float64
	verbose       bool
	version       bool
	explainConfig bool
}

func parseFlags() cliArgs {
	var args cliArgs

	flag.StringVar(&args.file, "f", "", "Analyze a YAML problem file instead of comparing interactively")
	flag.BoolVar(&args.rpcMode, "rpc", false, "Serve the JSONL comparison protocol on stdin/stdout")
	flag.StringVar(&args.scale, "scale", "", "Scale transformation (integer, balanced, power, ma-zheng, donegan)")
	flag.StringVar(&args.method, "method", "", "Weight derivation method (eigenvector, geometric-mean)")
	flag.StringVar(&args.format, "format", "text", "Batch output format (text, json, markdown)")
	flag.StringVar(&args.output, "o", "", "Write the final report to a file (.md, .html, or .json)")
	flag.Float64Var(&args.threshold, "threshold", 0, "Consistency ratio threshold (default 0.10)")
	flag.BoolVar(&args.verbose, "verbose", false, "Enable debug logging")
	flag.BoolVar(&args.version, "version", false, "Show version and exit")
	flag.BoolVar(&args.explainConfig, "explain-config", false, "Show the effective configuration and exit")

	flag.Parse()
	return args
}

// remaining returns the non-flag command-line arguments.
func (a cliArgs) remaining() []string {
	return flag.Args()
}
