// Package loader reads capture test cases from YAML.
package loader

import "strconv"

// TestCase is one capture scenario: a sequence of decode and encode steps
// with expected outputs.
type TestCase struct {
	// ID is the unique test case identifier (e.g., "TC-NEC-001").
	ID string `yaml:"id"`

	// Name is a human-readable name for the test.
	Name string `yaml:"name"`

	// Description explains what the test validates.
	Description string `yaml:"description"`

	// Steps are the actions to execute in order.
	Steps []Step `yaml:"steps"`

	// Timeout is the maximum duration for the test (e.g., "5s").
	Timeout string `yaml:"timeout,omitempty"`

	// Tags for selecting subsets of tests (e.g., "hvac", "sirc").
	Tags []string `yaml:"tags,omitempty"`

	// Skip disables the test case.
	Skip bool `yaml:"skip,omitempty"`

	// SkipReason explains why the test is skipped.
	SkipReason string `yaml:"skip_reason,omitempty"`

	// Path is the file the case was loaded from, empty when parsed from bytes.
	Path string `yaml:"-"`
}

// Step is a single action in a test case.
type Step struct {
	// Action names the handler (e.g., "decode", "encode").
	Action string `yaml:"action"`

	// Params are parameters for the action.
	Params map[string]interface{} `yaml:"params,omitempty"`

	// Expect maps output keys to expected values.
	Expect map[string]interface{} `yaml:"expect,omitempty"`

	// Timeout overrides the default step timeout.
	Timeout string `yaml:"timeout,omitempty"`

	// Description explains what this step does.
	Description string `yaml:"description,omitempty"`
}

// HasTag reports whether tc carries tag.
func (tc *TestCase) HasTag(tag string) bool {
	for _, t := range tc.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// LoadError provides details about a test case loading error.
type LoadError struct {
	// File is the path to the file that failed to load.
	File string

	// Line is the line number where the error occurred (0 if unknown).
	Line int

	// Message describes the error.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	switch {
	case e.File == "":
		return msg
	case e.Line > 0:
		return e.File + ":" + strconv.Itoa(e.Line) + ": " + msg
	default:
		return e.File + ": " + msg
	}
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
