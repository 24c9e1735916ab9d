// Package main is the entry point for the twigmerge CLI, the thin §6
// external collaborator that reads a JSON graph, runs the Merger, and
// writes a JSON graph back out. Grounded on the teacher's
// cmd/myfamily/main.go manual subcommand dispatch (no flag/cobra
// dependency appears anywhere in the pack for a single-subcommand CLI).
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/NumerousHats/twig-graft/internal/config"
	"github.com/NumerousHats/twig-graft/internal/merger"
	"github.com/NumerousHats/twig-graft/internal/persistence"
)

// Build-time variables injected by goreleaser.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "merge":
		runMerge(os.Args[2:])
	case "version":
		fmt.Printf("twigmerge %s (commit: %s, built: %s)\n", version, commit, date)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`twigmerge - genealogical twig-merging engine

Usage:
  twigmerge <command>

Commands:
  merge     Read a JSON graph, run the reconciliation merger, write a JSON graph
  version   Show version information
  help      Show this help message

Environment Variables:
  TWIGMERGE_INPUT       Input JSON graph path (default: "-" for stdin)
  TWIGMERGE_OUTPUT      Output JSON graph path (default: "-" for stdout)
  TWIGMERGE_LOG_LEVEL   Log level name (default: info); read but not applied,
                        merge warnings are always printed to stderr
  TWIGMERGE_VERBOSE     Print a merge summary to stderr (default: false)

Flags (merge):
  -options <path>   YAML file of merger.Options (minimum_match_size, queue_order)`)
}

func runMerge(args []string) {
	cfg := config.Load()

	optionsPath := ""
	for i := 0; i < len(args); i++ {
		if args[i] == "-options" && i+1 < len(args) {
			optionsPath = args[i+1]
			i++
		}
	}

	options, err := config.LoadMergerOptions(optionsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "twigmerge: %v\n", err)
		os.Exit(1)
	}

	in, err := openInput(cfg.InputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "twigmerge: %v\n", err)
		os.Exit(1)
	}
	defer in.Close()

	g, err := persistence.Load(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "twigmerge: %v\n", err)
		os.Exit(1)
	}

	logger := log.New(os.Stderr, "twigmerge: ", log.LstdFlags)
	m := merger.New(g, options, logger)
	summary, err := m.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "twigmerge: merge run failed: %v\n", err)
		os.Exit(1)
	}

	out, err := openOutput(cfg.OutputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "twigmerge: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if _, err := persistence.Save(out, g); err != nil {
		fmt.Fprintf(os.Stderr, "twigmerge: %v\n", err)
		os.Exit(1)
	}

	if cfg.Verbose {
		fmt.Fprintf(os.Stderr, "twigmerge: twigs registered=%d matches attempted=%d applied=%d persons merged=%d pairs skipped=%d\n",
			summary.TwigsRegistered, summary.MatchesAttempted, summary.MatchesApplied,
			summary.PersonsMerged, summary.PairsSkipped)
		s := g.Summarize()
		fmt.Fprintf(os.Stderr, "twigmerge: final graph: nodes=%d edges=%d components=%d\n", s.Nodes, s.Edges, s.Components)
	}
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" || path == "" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input %q: %w", path, err)
	}
	return f, nil
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" || path == "" {
		return nopWriteCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("open output %q: %w", path, err)
	}
	return f, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
