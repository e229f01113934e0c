package engine

import (
	"fmt"
	"strings"
)

// Checker names.
const (
	CheckerNameNoError          = "no_error"
	CheckerNameErrorContains    = "error_contains"
	CheckerNameProtocolsInclude = "protocols_include"
	CheckerNameCodeCount        = "code_count"
	CheckerNameWireTextPrefix   = "wire_text_prefix"
	CheckerNamePulseCountRange  = "pulse_count_in_range"
)

// ToFloat64 converts the numeric types produced by YAML and handlers.
func ToFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint8:
		return float64(n), true
	default:
		return 0, false
	}
}

func missing(key, output string, expected interface{}) *ExpectResult {
	return &ExpectResult{
		Key:      key,
		Expected: expected,
		Message:  fmt.Sprintf("key %q not found in outputs", output),
	}
}

// CheckerNoError passes when the "error" output is absent or empty.
//
//	no_error: true
func CheckerNoError(key string, expected interface{}, state *ExecutionState) *ExpectResult {
	actual, exists := state.Get("error")
	if !exists || actual == nil || actual == "" {
		return &ExpectResult{Key: key, Expected: expected, Actual: actual, Passed: true, Message: "no error present"}
	}
	return &ExpectResult{Key: key, Expected: expected, Actual: actual,
		Message: fmt.Sprintf("error present: %v", actual)}
}

// CheckerErrorContains passes when the "error" output contains expected.
func CheckerErrorContains(key string, expected interface{}, state *ExecutionState) *ExpectResult {
	actual, exists := state.Get("error")
	if !exists {
		return missing(key, "error", expected)
	}
	actualStr, ok1 := actual.(string)
	expectedStr, ok2 := expected.(string)
	if !ok1 || !ok2 {
		return &ExpectResult{Key: key, Expected: expected, Actual: actual,
			Message: fmt.Sprintf("expected strings, got %T and %T", actual, expected)}
	}
	passed := strings.Contains(actualStr, expectedStr)
	return &ExpectResult{Key: key, Expected: expected, Actual: actual, Passed: passed,
		Message: fmt.Sprintf("error contains %q: %v", expectedStr, passed)}
}

// CheckerProtocolsInclude passes when every expected protocol name appears
// in the "protocols" output. Expected is a name or a list of names.
func CheckerProtocolsInclude(key string, expected interface{}, state *ExecutionState) *ExpectResult {
	actual, exists := state.Get("protocols")
	if !exists {
		return missing(key, "protocols", expected)
	}
	have := make(map[string]bool)
	for _, p := range toList(actual) {
		have[fmt.Sprintf("%v", p)] = true
	}
	for _, want := range toList(expected) {
		name := fmt.Sprintf("%v", want)
		if !have[name] {
			return &ExpectResult{Key: key, Expected: expected, Actual: actual,
				Message: fmt.Sprintf("protocol %s not found", name)}
		}
	}
	return &ExpectResult{Key: key, Expected: expected, Actual: actual, Passed: true,
		Message: "all protocols present"}
}

// CheckerCodeCount passes when the "codes" output has expected entries.
func CheckerCodeCount(key string, expected interface{}, state *ExecutionState) *ExpectResult {
	actual, exists := state.Get("codes")
	if !exists {
		return missing(key, "codes", expected)
	}
	want, ok := ToFloat64(expected)
	if !ok {
		return &ExpectResult{Key: key, Expected: expected, Message: fmt.Sprintf("expected a number, got %T", expected)}
	}
	n := len(toList(actual))
	return &ExpectResult{Key: key, Expected: expected, Actual: n, Passed: float64(n) == want,
		Message: fmt.Sprintf("%d codes, expected %v", n, expected)}
}

// CheckerWireTextPrefix passes when the "wire_text" output starts with
// expected, compared case-insensitively.
func CheckerWireTextPrefix(key string, expected interface{}, state *ExecutionState) *ExpectResult {
	actual, exists := state.Get("wire_text")
	if !exists {
		return missing(key, "wire_text", expected)
	}
	a, e := strings.ToUpper(fmt.Sprintf("%v", actual)), strings.ToUpper(fmt.Sprintf("%v", expected))
	passed := strings.HasPrefix(a, e)
	return &ExpectResult{Key: key, Expected: expected, Actual: actual, Passed: passed,
		Message: fmt.Sprintf("wire text has prefix %s: %v", e, passed)}
}

// CheckerPulseCountInRange passes when the "pulse_count" output lies in the
// inclusive range given as {min: x, max: y}.
func CheckerPulseCountInRange(key string, expected interface{}, state *ExecutionState) *ExpectResult {
	actual, exists := state.Get("pulse_count")
	if !exists {
		return missing(key, "pulse_count", expected)
	}
	bounds, ok := expected.(map[string]interface{})
	if !ok {
		return &ExpectResult{Key: key, Expected: expected, Actual: actual,
			Message: fmt.Sprintf("expected {min, max}, got %T", expected)}
	}
	n, ok := ToFloat64(actual)
	if !ok {
		return &ExpectResult{Key: key, Expected: expected, Actual: actual,
			Message: fmt.Sprintf("pulse_count is not numeric: %T", actual)}
	}
	lo, hasLo := ToFloat64(bounds["min"])
	hi, hasHi := ToFloat64(bounds["max"])
	passed := (!hasLo || n >= lo) && (!hasHi || n <= hi)
	return &ExpectResult{Key: key, Expected: expected, Actual: actual, Passed: passed,
		Message: fmt.Sprintf("pulse_count %v in [%v, %v]: %v", n, bounds["min"], bounds["max"], passed)}
}

func toList(v interface{}) []interface{} {
	switch l := v.(type) {
	case []interface{}:
		return l
	case []string:
		out := make([]interface{}, len(l))
		for i, s := range l {
			out[i] = s
		}
		return out
	case []map[string]interface{}:
		out := make([]interface{}, len(l))
		for i, m := range l {
			out[i] = m
		}
		return out
	case []map[string]string:
		out := make([]interface{}, len(l))
		for i, m := range l {
			out[i] = m
		}
		return out
	case nil:
		return nil
	default:
		return []interface{}{v}
	}
}

// RegisterCaptureCheckers registers the checkers for decode and encode
// outputs.
func RegisterCaptureCheckers(e *Engine) {
	e.RegisterChecker(CheckerNameNoError, CheckerNoError)
	e.RegisterChecker(CheckerNameErrorContains, CheckerErrorContains)
	e.RegisterChecker(CheckerNameProtocolsInclude, CheckerProtocolsInclude)
	e.RegisterChecker(CheckerNameCodeCount, CheckerCodeCount)
	e.RegisterChecker(CheckerNameWireTextPrefix, CheckerWireTextPrefix)
	e.RegisterChecker(CheckerNamePulseCountRange, CheckerPulseCountInRange)
}
