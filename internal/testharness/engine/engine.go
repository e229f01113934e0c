package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/infrared-remote/ir-go/internal/testharness/loader"
)

// Engine runs capture cases step by step. Each step's action selects a
// handler; each expectation key selects a checker, falling back to the
// default value comparison.
type Engine struct {
	config *EngineConfig

	mu       sync.RWMutex
	actions  map[string]ActionHandler
	checkers map[string]ExpectChecker
}

// New creates an engine with DefaultConfig.
func New() *Engine {
	return NewWithConfig(nil)
}

// NewWithConfig creates an engine. A nil config means DefaultConfig.
func NewWithConfig(config *EngineConfig) *Engine {
	if config == nil {
		config = DefaultConfig()
	}
	return &Engine{
		config:   config,
		actions:  map[string]ActionHandler{},
		checkers: map[string]ExpectChecker{CheckerNameDefault: defaultChecker},
	}
}

// RegisterHandler binds action to handler, replacing any earlier binding.
func (e *Engine) RegisterHandler(action string, handler ActionHandler) {
	e.mu.Lock()
	e.actions[action] = handler
	e.mu.Unlock()
}

// RegisterChecker binds an expectation key to checker.
func (e *Engine) RegisterChecker(key string, checker ExpectChecker) {
	e.mu.Lock()
	e.checkers[key] = checker
	e.mu.Unlock()
}

func (e *Engine) handler(action string) (ActionHandler, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	h, ok := e.actions[action]
	return h, ok
}

// timeoutOr parses raw as a duration, using fallback when raw is empty or
// malformed.
func timeoutOr(raw string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	return fallback
}

// Run executes tc. Steps run in order until one fails.
func (e *Engine) Run(ctx context.Context, tc *loader.TestCase) *TestResult {
	result := &TestResult{TestCase: tc, StartTime: time.Now()}
	defer func() {
		result.EndTime = time.Now()
		result.Duration = result.EndTime.Sub(result.StartTime)
	}()

	if tc.Skip {
		result.Skipped = true
		result.SkipReason = tc.SkipReason
		if result.SkipReason == "" {
			result.SkipReason = "marked skip in case file"
		}
		return result
	}

	ctx, cancel := context.WithTimeout(ctx, timeoutOr(tc.Timeout, e.config.DefaultTimeout))
	defer cancel()

	state := NewExecutionState()
	state.TestCase = tc
	if setup := e.config.Setup; setup != nil {
		if err := setup(ctx, tc, state); err != nil {
			result.Error = fmt.Errorf("setup failed: %w", err)
			return result
		}
	}

	for i := range tc.Steps {
		sr := e.executeStep(ctx, &tc.Steps[i], i, state)
		result.StepResults = append(result.StepResults, sr)
		if !sr.Passed {
			result.Error = sr.Error
			return result
		}
	}
	result.Passed = true
	return result
}

func (e *Engine) executeStep(ctx context.Context, step *loader.Step, index int, state *ExecutionState) *StepResult {
	sr := &StepResult{
		Step:          step,
		StepIndex:     index,
		ExpectResults: map[string]*ExpectResult{},
		Output:        map[string]interface{}{},
	}
	start := time.Now()
	defer func() { sr.Duration = time.Since(start) }()

	h, ok := e.handler(step.Action)
	if !ok {
		sr.Error = fmt.Errorf("unknown action: %s", step.Action)
		return sr
	}

	ctx, cancel := context.WithTimeout(ctx, timeoutOr(step.Timeout, e.config.StepTimeout))
	defer cancel()

	resolved := *step
	resolved.Params = InterpolateParams(step.Params, state)
	outputs, err := h(ctx, &resolved, state)
	if err != nil {
		sr.Error = err
		return sr
	}
	e.record(sr, outputs, state)

	sr.Passed = true
	for key, expected := range InterpolateParams(step.Expect, state) {
		er := e.checkExpectation(key, expected, state)
		sr.ExpectResults[key] = er
		if !er.Passed {
			sr.Passed = false
			sr.Error = fmt.Errorf("%s: %s", key, er.Message)
		}
	}
	return sr
}

// record stores handler outputs in the step result and the shared state.
// The whole map is also kept under InternalStepOutput for interpolation.
func (e *Engine) record(sr *StepResult, outputs map[string]interface{}, state *ExecutionState) {
	snapshot := make(map[string]interface{}, len(outputs))
	for k, v := range outputs {
		sr.Output[k] = v
		snapshot[k] = v
		state.Set(k, v)
	}
	state.Set(InternalStepOutput, snapshot)
}

func (e *Engine) checkExpectation(key string, expected interface{}, state *ExecutionState) *ExpectResult {
	e.mu.RLock()
	check, ok := e.checkers[key]
	if !ok {
		check = e.checkers[CheckerNameDefault]
	}
	e.mu.RUnlock()
	return check(key, expected, state)
}

// RunSuite executes test cases, ParallelTests at a time. Results keep the
// order of cases.
func (e *Engine) RunSuite(ctx context.Context, cases []*loader.TestCase) *SuiteResult {
	result := &SuiteResult{SuiteName: "Capture Suite"}
	start := time.Now()
	defer func() { result.Duration = time.Since(start) }()

	limit := e.config.ParallelTests
	if limit < 1 {
		limit = 1
	}

	results := make([]*TestResult, len(cases))
	var (
		g       errgroup.Group
		stopped atomic.Bool
		mu      sync.Mutex
	)
	g.SetLimit(limit)

	for i, tc := range cases {
		if ctx.Err() != nil || stopped.Load() {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil || stopped.Load() {
				return nil
			}
			tr := e.Run(ctx, tc)
			results[i] = tr
			if !tr.Passed && !tr.Skipped && e.config.StopOnFirstFailure {
				stopped.Store(true)
			}
			if e.config.OnTestComplete != nil {
				mu.Lock()
				e.config.OnTestComplete(tr)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	for _, tr := range results {
		if tr == nil {
			continue
		}
		result.Results = append(result.Results, tr)
		switch {
		case tr.Skipped:
			result.SkipCount++
		case tr.Passed:
			result.PassCount++
		default:
			result.FailCount++
		}
	}
	return result
}
