// Package engine runs loaded test cases through registered action handlers
// and expectation checkers.
package engine

import (
	"context"
	"strings"
	"time"

	"github.com/infrared-remote/ir-go/internal/testharness/loader"
)

// TestResult is the outcome of one capture case.
type TestResult struct {
	TestCase    *loader.TestCase
	Passed      bool
	Skipped     bool
	SkipReason  string
	StepResults []*StepResult

	// Error is the first step or setup failure.
	Error error

	StartTime, EndTime time.Time
	Duration           time.Duration
}

// StepResult is the outcome of one step.
type StepResult struct {
	Step      *loader.Step
	StepIndex int
	Passed    bool
	Error     error
	Duration  time.Duration

	// Output is what the handler returned; ExpectResults is keyed by
	// expectation name.
	Output        map[string]interface{}
	ExpectResults map[string]*ExpectResult
}

// ExpectResult is one checked expectation.
type ExpectResult struct {
	Key      string
	Expected interface{}
	Actual   interface{}
	Passed   bool
	Message  string
}

// SuiteResult collects the case results of one run, in case order.
type SuiteResult struct {
	SuiteName string
	Results   []*TestResult
	PassCount int
	FailCount int
	SkipCount int
	Duration  time.Duration
}

// ActionHandler performs a step action. The returned outputs are visible to
// the step's expectations and to later steps.
type ActionHandler func(ctx context.Context, step *loader.Step, state *ExecutionState) (map[string]interface{}, error)

// ExpectChecker evaluates the expectation key against state.
type ExpectChecker func(key string, expected interface{}, state *ExecutionState) *ExpectResult

// ExecutionState is shared by the steps of one case.
type ExecutionState struct {
	TestCase *loader.TestCase

	// Outputs accumulates step outputs; later steps overwrite earlier keys.
	Outputs map[string]interface{}

	// Custom carries handler values that are not outputs, such as the last
	// pipeline result.
	Custom map[string]interface{}
}

// NewExecutionState creates an empty state.
func NewExecutionState() *ExecutionState {
	return &ExecutionState{
		Outputs: map[string]interface{}{},
		Custom:  map[string]interface{}{},
	}
}

// Get retrieves a value from outputs. A "{{ key }}" reference is resolved
// to key.
func (s *ExecutionState) Get(key string) (interface{}, bool) {
	if strings.HasPrefix(key, "{{") && strings.HasSuffix(key, "}}") && len(key) > 4 {
		key = strings.TrimSpace(key[2 : len(key)-2])
	}
	v, ok := s.Outputs[key]
	return v, ok
}

// Set stores a value in outputs.
func (s *ExecutionState) Set(key string, value interface{}) {
	s.Outputs[key] = value
}

// EngineConfig tunes timeouts and scheduling.
type EngineConfig struct {
	// DefaultTimeout bounds a case without its own timeout; StepTimeout
	// bounds a step likewise.
	DefaultTimeout time.Duration
	StepTimeout    time.Duration

	// ParallelTests is how many cases run at once; below 2 runs them in
	// sequence.
	ParallelTests int

	// StopOnFirstFailure stops scheduling cases once one fails.
	StopOnFirstFailure bool

	// Setup prepares the state of each case before its first step.
	Setup func(ctx context.Context, tc *loader.TestCase, state *ExecutionState) error

	// OnTestComplete observes each finished case. Calls are serialized.
	OnTestComplete func(result *TestResult)
}

// DefaultConfig returns sequential execution with 10s per case and 5s per
// step.
func DefaultConfig() *EngineConfig {
	return &EngineConfig{
		DefaultTimeout: 10 * time.Second,
		StepTimeout:    5 * time.Second,
		ParallelTests:  1,
	}
}

const (
	// CheckerNameDefault is used for keys without a registered checker.
	CheckerNameDefault = "default"

	// InternalStepOutput holds the full output map of the last step.
	InternalStepOutput = "_step_output"
)
