package engine

import (
	"fmt"
	"sort"
	"strings"
)

// expectPresent as an expected value accepts any output.
const expectPresent = "present"

// defaultChecker compares the output under key with expected. Scalars compare
// by printed form, since YAML and handlers disagree on numeric types. A list
// of maps is matched record by record: every expected field must be present
// and equal, extra fields are ignored.
func defaultChecker(key string, expected interface{}, state *ExecutionState) *ExpectResult {
	actual, ok := state.Get(key)
	if !ok {
		return missing(key, key, expected)
	}

	var problems []string
	switch {
	case isPresent(expected):
	case isRecordList(expected):
		problems = compareRecords(toList(expected), toList(actual))
	case !sameValue(expected, actual):
		problems = []string{fmt.Sprintf("expected %v, got %v", expected, actual)}
	}

	r := &ExpectResult{Key: key, Expected: expected, Actual: actual, Passed: len(problems) == 0}
	if r.Passed {
		r.Message = fmt.Sprintf("%s = %v", key, actual)
	} else {
		r.Message = strings.Join(problems, "; ")
	}
	return r
}

func isPresent(expected interface{}) bool {
	s, ok := expected.(string)
	return ok && s == expectPresent
}

func sameValue(a, b interface{}) bool {
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func isRecordList(v interface{}) bool {
	list, ok := v.([]interface{})
	if !ok {
		return false
	}
	for _, item := range list {
		if _, ok := fieldsOf(item); ok {
			return true
		}
	}
	return false
}

// fieldsOf returns a record as printed field values.
func fieldsOf(v interface{}) (map[string]string, bool) {
	switch m := v.(type) {
	case map[string]string:
		return m, true
	case map[string]interface{}:
		out := make(map[string]string, len(m))
		for k, fv := range m {
			out[k] = fmt.Sprint(fv)
		}
		return out, true
	default:
		return nil, false
	}
}

// compareRecords reports every difference between the expected and actual
// records. An empty result means they match.
func compareRecords(expected, actual []interface{}) []string {
	if len(expected) != len(actual) {
		return []string{fmt.Sprintf("expected %d items, got %d", len(expected), len(actual))}
	}

	var problems []string
	for i := range expected {
		want, isRecord := fieldsOf(expected[i])
		if !isRecord {
			if !sameValue(expected[i], actual[i]) {
				problems = append(problems, fmt.Sprintf("item %d: expected %v, got %v", i, expected[i], actual[i]))
			}
			continue
		}
		got, ok := fieldsOf(actual[i])
		if !ok {
			problems = append(problems, fmt.Sprintf("item %d: not a record (%T)", i, actual[i]))
			continue
		}

		fields := make([]string, 0, len(want))
		for f := range want {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			switch v, has := got[f]; {
			case !has:
				problems = append(problems, fmt.Sprintf("item %d: no %s", i, f))
			case v != want[f]:
				problems = append(problems, fmt.Sprintf("item %d: %s is %s, want %s", i, f, v, want[f]))
			}
		}
	}
	return problems
}
