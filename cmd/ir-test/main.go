// Command ir-test runs YAML capture test cases against the decoding pipeline.
//
// Each test case feeds recorded captures or bit strings through the
// decoder and encoder and checks the decoded protocols, device codes and
// wire text against expectations.
//
// Usage:
//
//	ir-test [flags] [id-prefix,...]
//
// Flags:
//
//	-tests string      Path to test cases directory (default "./testdata/captures")
//	-tags string       Only run tests with one of these tags (comma-separated)
//	-timeout duration  Per-test timeout (default 10s)
//	-parallel int      Number of tests run concurrently (default 1)
//	-failfast          Stop after the first failed test
//	-verbose           Enable verbose output
//	-json              Output results as JSON
//	-junit             Output results as JUnit XML
//	-trace string      File path for decode trace logging (CBOR format)
//
// Examples:
//
//	# Run every case
//	ir-test
//
//	# Run the AEHA cases with four workers and a trace
//	ir-test -parallel 4 -trace aeha.irlog TC-AEHA
//
//	# Produce a JUnit report for CI
//	ir-test -junit > report.xml
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/infrared-remote/ir-go/internal/testharness/runner"
	irlog "github.com/infrared-remote/ir-go/pkg/log"
)

var (
	tests    = flag.String("tests", "./testdata/captures", "Path to test cases directory")
	tags     = flag.String("tags", "", "Only run tests with one of these tags (comma-separated)")
	timeout  = flag.Duration("timeout", 10*time.Second, "Per-test timeout")
	parallel = flag.Int("parallel", 1, "Number of tests run concurrently")
	failFast = flag.Bool("failfast", false, "Stop after the first failed test")
	verbose  = flag.Bool("verbose", false, "Enable verbose output")
	jsonOut  = flag.Bool("json", false, "Output results as JSON")
	junitOut = flag.Bool("junit", false, "Output results as JUnit XML")
	trace    = flag.String("trace", "", "File path for decode trace logging (CBOR format)")
)

func main() {
	flag.Parse()

	pattern := ""
	if flag.NArg() > 0 {
		pattern = flag.Arg(0)
	}

	if *parallel < 1 {
		fmt.Fprintf(os.Stderr, "Error: parallel must be at least 1, got %d\n", *parallel)
		flag.Usage()
		os.Exit(1)
	}

	outputFormat := "text"
	if *jsonOut {
		outputFormat = "json"
	} else if *junitOut {
		outputFormat = "junit"
	}

	if outputFormat == "text" {
		log.SetFlags(log.Ltime)
		log.Printf("Tests: %s", *tests)
		if pattern != "" {
			log.Printf("Pattern: %s", pattern)
		}
		if *tags != "" {
			log.Printf("Tags: %s", *tags)
		}
		log.Println()
	}

	config := &runner.Config{
		TestDir:       *tests,
		Pattern:       pattern,
		Tags:          *tags,
		Timeout:       *timeout,
		Parallel:      *parallel,
		StopOnFailure: *failFast,
		Verbose:       *verbose,
		Format:        outputFormat,
		Output:        os.Stdout,
	}

	if *verbose {
		config.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	var traceLogger *irlog.FileLogger
	if *trace != "" {
		var err error
		traceLogger, err = irlog.NewFileLogger(*trace)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to create trace logger: %v\n", err)
			os.Exit(1)
		}
		// Only set when non-nil to avoid a typed-nil interface.
		config.TraceLogger = traceLogger
		if outputFormat == "text" {
			log.Printf("Trace logging to: %s", *trace)
		}
	}

	r, err := runner.New(config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	result, err := r.Run(ctx)
	cancel()
	if traceLogger != nil {
		traceLogger.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if result.FailCount > 0 {
		os.Exit(1)
	}
}
