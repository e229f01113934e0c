// Package reporter renders capture suite results as text, JSON or JUnit XML.
package reporter

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/infrared-remote/ir-go/internal/testharness/engine"
)

// Reporter writes the outcome of a suite run.
type Reporter interface {
	Report(result *engine.SuiteResult) error
}

// New returns the reporter for format ("text", "json" or "junit").
// verbose adds per-step detail to text output and indents JSON.
func New(format string, w io.Writer, verbose bool) (Reporter, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return &TextReporter{w: w, verbose: verbose}, nil
	case "json":
		return &JSONReporter{w: w, indent: verbose}, nil
	case "junit":
		return &JUnitReporter{w: w}, nil
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
}

// Status is the outcome of a case or step.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
	StatusSkip Status = "skip"
)

func caseStatus(r *engine.TestResult) Status {
	if r.Skipped {
		return StatusSkip
	}
	if r.Passed {
		return StatusPass
	}
	return StatusFail
}

func stepStatus(sr *engine.StepResult) Status {
	if sr.Passed {
		return StatusPass
	}
	return StatusFail
}

// passRate is the share of executed (not skipped) cases that passed.
func passRate(s *engine.SuiteResult) float64 {
	if ran := s.PassCount + s.FailCount; ran > 0 {
		return 100 * float64(s.PassCount) / float64(ran)
	}
	return 0
}

// decoderOf returns the device decoder named by the last decode step.
func decoderOf(r *engine.TestResult) string {
	for i := len(r.StepResults) - 1; i >= 0; i-- {
		if name, ok := r.StepResults[i].Output["decoder"].(string); ok && name != "" {
			return name
		}
	}
	return ""
}

// checksOf returns the expectation results of a step ordered by key.
func checksOf(sr *engine.StepResult) []*engine.ExpectResult {
	out := make([]*engine.ExpectResult, 0, len(sr.ExpectResults))
	for _, er := range sr.ExpectResults {
		out = append(out, er)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func millis(d time.Duration) string {
	return d.Round(time.Millisecond).String()
}

// TextReporter prints one line per case and a closing tally.
type TextReporter struct {
	w       io.Writer
	verbose bool
}

// NewTextReporter creates a text reporter.
func NewTextReporter(w io.Writer, verbose bool) *TextReporter {
	return &TextReporter{w: w, verbose: verbose}
}

func (r *TextReporter) Report(result *engine.SuiteResult) error {
	idWidth := 0
	for _, tr := range result.Results {
		idWidth = max(idWidth, len(tr.TestCase.ID))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d cases in %s\n\n", result.SuiteName, len(result.Results), millis(result.Duration))
	for _, tr := range result.Results {
		r.writeCase(&b, tr, idWidth)
	}
	fmt.Fprintf(&b, "\n%d passed, %d failed, %d skipped", result.PassCount, result.FailCount, result.SkipCount)
	if result.PassCount+result.FailCount > 0 {
		fmt.Fprintf(&b, " (%.1f%% of executed cases)", passRate(result))
	}
	b.WriteString("\n")

	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *TextReporter) writeCase(b *strings.Builder, tr *engine.TestResult, idWidth int) {
	tc := tr.TestCase
	fmt.Fprintf(b, "  %-4s  %-*s  %s", strings.ToUpper(string(caseStatus(tr))), idWidth, tc.ID, tc.Name)
	switch {
	case tr.Skipped:
		if tr.SkipReason != "" {
			fmt.Fprintf(b, " (%s)", tr.SkipReason)
		}
	case tr.Passed:
		if dec := decoderOf(tr); dec != "" {
			fmt.Fprintf(b, " -> %s", dec)
		}
	}
	b.WriteString("\n")

	if !tr.Passed && !tr.Skipped && tr.Error != nil {
		fmt.Fprintf(b, "        %v\n", tr.Error)
	}
	if !r.verbose {
		return
	}
	for _, sr := range tr.StepResults {
		fmt.Fprintf(b, "        step %d %s: %s in %s\n", sr.StepIndex+1, sr.Step.Action, stepStatus(sr), millis(sr.Duration))
		if sr.Error != nil {
			fmt.Fprintf(b, "          error: %v\n", sr.Error)
		}
		for _, er := range checksOf(sr) {
			mark := "ok"
			if !er.Passed {
				mark = "FAIL"
			}
			fmt.Fprintf(b, "          %-4s %s: %s\n", mark, er.Key, er.Message)
		}
	}
}

// JSONReporter writes a single JSON document per suite.
type JSONReporter struct {
	w      io.Writer
	indent bool
}

// NewJSONReporter creates a JSON reporter; indent pretty-prints.
func NewJSONReporter(w io.Writer, indent bool) *JSONReporter {
	return &JSONReporter{w: w, indent: indent}
}

// Summary is the JSON document for a suite run.
type Summary struct {
	Suite      string       `json:"suite"`
	DurationMS int64        `json:"duration_ms"`
	Passed     int          `json:"passed"`
	Failed     int          `json:"failed"`
	Skipped    int          `json:"skipped"`
	PassRate   float64      `json:"pass_rate"`
	Cases      []CaseReport `json:"cases"`
}

// CaseReport describes one capture case.
type CaseReport struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Tags       []string     `json:"tags,omitempty"`
	Status     Status       `json:"status"`
	DurationMS int64        `json:"duration_ms"`
	Decoder    string       `json:"decoder,omitempty"`
	Error      string       `json:"error,omitempty"`
	SkipReason string       `json:"skip_reason,omitempty"`
	Steps      []StepReport `json:"steps,omitempty"`
}

// StepReport describes one executed step.
type StepReport struct {
	Action  string         `json:"action"`
	Status  Status         `json:"status"`
	Error   string         `json:"error,omitempty"`
	Outputs map[string]any `json:"outputs,omitempty"`
	Checks  []CheckReport  `json:"checks,omitempty"`
}

// CheckReport is one expectation of a step.
type CheckReport struct {
	Key      string `json:"key"`
	Passed   bool   `json:"passed"`
	Expected any    `json:"expected"`
	Actual   any    `json:"actual,omitempty"`
	Message  string `json:"message,omitempty"`
}

// Summarize converts a suite result into its JSON form.
func Summarize(result *engine.SuiteResult) Summary {
	s := Summary{
		Suite:      result.SuiteName,
		DurationMS: result.Duration.Milliseconds(),
		Passed:     result.PassCount,
		Failed:     result.FailCount,
		Skipped:    result.SkipCount,
		PassRate:   passRate(result),
		Cases:      make([]CaseReport, 0, len(result.Results)),
	}
	for _, tr := range result.Results {
		s.Cases = append(s.Cases, caseReport(tr))
	}
	return s
}

func caseReport(tr *engine.TestResult) CaseReport {
	c := CaseReport{
		ID:         tr.TestCase.ID,
		Name:       tr.TestCase.Name,
		Tags:       tr.TestCase.Tags,
		Status:     caseStatus(tr),
		DurationMS: tr.Duration.Milliseconds(),
		Decoder:    decoderOf(tr),
		SkipReason: tr.SkipReason,
	}
	if tr.Error != nil {
		c.Error = tr.Error.Error()
	}
	for _, sr := range tr.StepResults {
		step := StepReport{Action: sr.Step.Action, Status: stepStatus(sr), Outputs: sr.Output}
		if sr.Error != nil {
			step.Error = sr.Error.Error()
		}
		for _, er := range checksOf(sr) {
			step.Checks = append(step.Checks, CheckReport{
				Key:      er.Key,
				Passed:   er.Passed,
				Expected: er.Expected,
				Actual:   er.Actual,
				Message:  er.Message,
			})
		}
		c.Steps = append(c.Steps, step)
	}
	return c
}

func (r *JSONReporter) Report(result *engine.SuiteResult) error {
	enc := json.NewEncoder(r.w)
	if r.indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(Summarize(result))
}

// JUnitReporter writes JUnit XML for CI systems.
type JUnitReporter struct {
	w io.Writer
}

// NewJUnitReporter creates a JUnit reporter.
func NewJUnitReporter(w io.Writer) *JUnitReporter {
	return &JUnitReporter{w: w}
}

type junitSuites struct {
	XMLName xml.Name     `xml:"testsuites"`
	Suites  []junitSuite `xml:"testsuite"`
}

type junitSuite struct {
	Name     string      `xml:"name,attr"`
	Tests    int         `xml:"tests,attr"`
	Failures int         `xml:"failures,attr"`
	Skipped  int         `xml:"skipped,attr"`
	Time     float64     `xml:"time,attr"`
	Cases    []junitCase `xml:"testcase"`
}

type junitCase struct {
	Name      string      `xml:"name,attr"`
	ClassName string      `xml:"classname,attr"`
	Time      float64     `xml:"time,attr"`
	Skipped   *junitEntry `xml:"skipped,omitempty"`
	Failure   *junitEntry `xml:"failure,omitempty"`
}

type junitEntry struct {
	Message string `xml:"message,attr,omitempty"`
	Detail  string `xml:",chardata"`
}

// failureDetail lists failed steps and failed checks, one per line.
func failureDetail(tr *engine.TestResult) string {
	var lines []string
	for _, sr := range tr.StepResults {
		if sr.Passed {
			continue
		}
		if sr.Error != nil {
			lines = append(lines, fmt.Sprintf("step %d %s: %v", sr.StepIndex+1, sr.Step.Action, sr.Error))
		}
		for _, er := range checksOf(sr) {
			if !er.Passed {
				lines = append(lines, fmt.Sprintf("step %d %s: %s", sr.StepIndex+1, er.Key, er.Message))
			}
		}
	}
	return strings.Join(lines, "\n")
}

func (r *JUnitReporter) Report(result *engine.SuiteResult) error {
	suite := junitSuite{
		Name:     result.SuiteName,
		Tests:    len(result.Results),
		Failures: result.FailCount,
		Skipped:  result.SkipCount,
		Time:     result.Duration.Seconds(),
	}
	for _, tr := range result.Results {
		c := junitCase{
			Name:      tr.TestCase.ID + ": " + tr.TestCase.Name,
			ClassName: result.SuiteName,
			Time:      tr.Duration.Seconds(),
		}
		switch caseStatus(tr) {
		case StatusSkip:
			c.Skipped = &junitEntry{Message: tr.SkipReason}
		case StatusFail:
			msg := "case failed"
			if tr.Error != nil {
				msg = tr.Error.Error()
			}
			c.Failure = &junitEntry{Message: msg, Detail: failureDetail(tr)}
		}
		suite.Cases = append(suite.Cases, c)
	}

	if _, err := io.WriteString(r.w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(r.w)
	enc.Indent("", "  ")
	if err := enc.Encode(junitSuites{Suites: []junitSuite{suite}}); err != nil {
		return err
	}
	_, err := io.WriteString(r.w, "\n")
	return err
}
