// Command ir-log views and analyzes decode trace files.
//
// Trace files are written by ir-decode and ir-test when run with the
// -trace flag. Each file is a stream of CBOR-encoded events, one per
// pipeline stage per frame.
//
// Usage:
//
//	ir-log <command> [flags] <file.irlog>
//
// Commands:
//
//	view     View trace in human-readable format
//	export   Export trace to JSONL or CSV
//	filter   Filter trace and write to new file
//	stats    Show statistics about the trace
//
// Examples:
//
//	# View all events
//	ir-log view decode.irlog
//
//	# View only device decoder misses
//	ir-log view --stage device --category miss decode.irlog
//
//	# Export to CSV
//	ir-log export --format csv -o trace.csv decode.irlog
//
//	# Keep only the AEHA frames of one capture
//	ir-log filter --capture-id 3f2a --protocol aeha -o aeha.irlog decode.irlog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/infrared-remote/ir-go/cmd/ir-log/commands"
)

const usage = `ir-log - IR decode trace analyzer

Usage:
  ir-log <command> [flags] <file.irlog>

Commands:
  view     View trace in human-readable format
  export   Export trace to JSONL or CSV
  filter   Filter trace and write to new file
  stats    Show statistics about the trace

Use "ir-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func newFlagSet(name, summary string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "ir-log %s - %s\n\nUsage:\n  ir-log %s [flags] <file.irlog>\n\nFlags:\n", name, summary, name)
		fs.PrintDefaults()
	}
	return fs
}

// tracePath returns the single positional argument or exits.
func tracePath(fs *flag.FlagSet) string {
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: trace file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func runView(args []string) {
	fs := newFlagSet("view", "View trace in human-readable format")
	captureID := fs.String("capture-id", "", "Filter by capture ID")
	stage := fs.String("stage", "", "Filter by stage (input, segment, demod, frame, device, encode)")
	category := fs.String("category", "", "Filter by category (result, miss, error)")
	protocol := fs.String("protocol", "", "Filter by protocol (aeha, nec, nec_repeat, sirc, unknown)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := tracePath(fs)

	filter := commands.ViewFilter{CaptureID: *captureID}
	if *stage != "" {
		s, err := commands.ParseStageFlag(*stage)
		if err != nil {
			fail(err)
		}
		filter.Stage = &s
	}
	if *category != "" {
		c, err := commands.ParseCategoryFlag(*category)
		if err != nil {
			fail(err)
		}
		filter.Category = &c
	}
	if *protocol != "" {
		p, err := commands.ParseProtocolFlag(*protocol)
		if err != nil {
			fail(err)
		}
		filter.Protocol = &p
	}

	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fail(err)
	}
}

func runExport(args []string) {
	fs := newFlagSet("export", "Export trace to JSONL or CSV")
	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := tracePath(fs)

	if err := commands.RunExport(path, *format, *output); err != nil {
		fail(err)
	}
}

func runFilter(args []string) {
	fs := newFlagSet("filter", "Filter trace and write to new file")
	output := fs.String("o", "", "Output file (required)")
	captureID := fs.String("capture-id", "", "Filter by capture ID")
	timeStart := fs.String("time-start", "", "Filter by start time (RFC3339)")
	timeEnd := fs.String("time-end", "", "Filter by end time (RFC3339)")
	stage := fs.String("stage", "", "Filter by stage (input, segment, demod, frame, device, encode)")
	category := fs.String("category", "", "Filter by category (result, miss, error)")
	protocol := fs.String("protocol", "", "Filter by protocol (aeha, nec, nec_repeat, sirc, unknown)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := tracePath(fs)

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	opts := commands.FilterOptions{
		Output:    *output,
		CaptureID: *captureID,
		TimeStart: *timeStart,
		TimeEnd:   *timeEnd,
		Stage:     *stage,
		Category:  *category,
		Protocol:  *protocol,
	}
	if err := commands.RunFilter(path, opts, os.Stdout); err != nil {
		fail(err)
	}
}

func runStats(args []string) {
	fs := newFlagSet("stats", "Show statistics about the trace")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := tracePath(fs)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fail(err)
	}
}
