// Package runner executes capture test cases against the decoding pipeline.
package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/infrared-remote/ir-go/internal/testharness/engine"
	"github.com/infrared-remote/ir-go/internal/testharness/loader"
	"github.com/infrared-remote/ir-go/internal/testharness/reporter"
	"github.com/infrared-remote/ir-go/pkg/irremote"
	"github.com/infrared-remote/ir-go/pkg/log"
)

// Config configures a Runner.
type Config struct {
	// TestDir is the directory of YAML test cases, searched recursively.
	TestDir string

	// Pattern keeps tests whose ID starts with one of these prefixes
	// (comma-separated).
	Pattern string

	// Tags keeps tests with at least one of these tags (comma-separated).
	Tags string

	// Timeout is the default test timeout.
	Timeout time.Duration

	// Parallel is the number of tests run concurrently.
	Parallel int

	// StopOnFailure stops after the first failed test.
	StopOnFailure bool

	// Verbose enables per-step output.
	Verbose bool

	// Format is the report format: text, json or junit.
	Format string

	// Output receives the report. Defaults to os.Stdout.
	Output io.Writer

	// Logger receives pipeline debug logs. Nil disables them.
	Logger *slog.Logger

	// TraceLogger receives pipeline trace events. Nil disables them.
	TraceLogger log.Logger
}

// Runner loads capture test cases and runs them.
type Runner struct {
	config   *Config
	engine   *engine.Engine
	reporter reporter.Reporter
	decoder  *irremote.Decoder
	encoder  *irremote.Encoder
}

// New creates a runner.
func New(config *Config) (*Runner, error) {
	if config.Output == nil {
		config.Output = os.Stdout
	}

	rep, err := reporter.New(config.Format, config.Output, config.Verbose)
	if err != nil {
		return nil, err
	}

	pipeline := irremote.DefaultConfig()
	pipeline.Logger = config.Logger
	pipeline.TraceLogger = config.TraceLogger
	dec, err := irremote.NewDecoder(pipeline)
	if err != nil {
		return nil, err
	}
	enc, err := irremote.NewEncoder(pipeline)
	if err != nil {
		return nil, err
	}

	ec := engine.DefaultConfig()
	if config.Timeout > 0 {
		ec.DefaultTimeout = config.Timeout
	}
	ec.ParallelTests = config.Parallel
	ec.StopOnFirstFailure = config.StopOnFailure
	ec.Setup = setupCaseDir

	r := &Runner{
		config:   config,
		engine:   engine.NewWithConfig(ec),
		reporter: rep,
		decoder:  dec,
		encoder:  enc,
	}
	engine.RegisterCaptureCheckers(r.engine)
	r.registerHandlers()
	return r, nil
}

// Engine returns the underlying engine for registering extra handlers.
func (r *Runner) Engine() *engine.Engine { return r.engine }

// Run loads, filters and runs the test cases, then reports the results.
func (r *Runner) Run(ctx context.Context) (*engine.SuiteResult, error) {
	cases, err := loader.LoadDirectoryRecursive(r.config.TestDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load tests: %w", err)
	}
	cases = loader.FilterByID(cases, splitList(r.config.Pattern))
	cases = loader.FilterByTags(cases, splitList(r.config.Tags))
	if len(cases) == 0 {
		return nil, fmt.Errorf("no test cases found in %s", r.config.TestDir)
	}

	result := r.RunCases(ctx, cases)
	result.SuiteName = filepath.Base(r.config.TestDir)
	if err := r.reporter.Report(result); err != nil {
		return result, fmt.Errorf("failed to write report: %w", err)
	}
	return result, nil
}

// RunCases runs already loaded cases without reporting.
func (r *Runner) RunCases(ctx context.Context, cases []*loader.TestCase) *engine.SuiteResult {
	return r.engine.RunSuite(ctx, cases)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// stateDir is the Custom key holding the directory of the running case.
const stateDir = "dir"

func setupCaseDir(_ context.Context, tc *loader.TestCase, state *engine.ExecutionState) error {
	if tc.Path != "" {
		state.Custom[stateDir] = filepath.Dir(tc.Path)
	}
	return nil
}

// resolvePath resolves name against the directory of the running case.
func resolvePath(state *engine.ExecutionState, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	if dir, ok := state.Custom[stateDir].(string); ok {
		return filepath.Join(dir, name)
	}
	return name
}
