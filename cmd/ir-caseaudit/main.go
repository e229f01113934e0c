// Command ir-caseaudit cross-references the capture fixtures used by the
// decoder tests against the YAML capture cases and reports coverage gaps.
//
// Usage:
//
//	ir-caseaudit [flags]
//
// Flags:
//
//	-root string    Path to repository root (default: auto-detect)
//	-json           Output as JSON instead of text
//
// The tool scans:
//   - pkg/device/testdata/ for capture fixtures (.hex, .json)
//   - testdata/captures/*.yaml for the files referenced by decode steps
//
// Exit code is 0 if every fixture is exercised by a case and every
// referenced file exists, 1 if gaps exist.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/infrared-remote/ir-go/internal/testharness/loader"
)

// report is the JSON output structure.
type report struct {
	Cases     []caseReport `json:"cases"`
	Unused    []string     `json:"unused_fixtures"`
	Missing   []string     `json:"missing_files,omitempty"`
	Duplicate []string     `json:"duplicate_ids,omitempty"`
	Summary   summary      `json:"summary"`
}

type caseReport struct {
	ID    string   `json:"id"`
	File  string   `json:"file"`
	Steps int      `json:"steps"`
	Uses  []string `json:"uses"`
}

type summary struct {
	Fixtures int `json:"fixtures"`
	Cases    int `json:"cases"`
	Covered  int `json:"covered"`
	Unused   int `json:"unused"`
	Missing  int `json:"missing"`
}

func (r report) hasGaps() bool {
	return len(r.Unused) > 0 || len(r.Missing) > 0 || len(r.Duplicate) > 0
}

func main() {
	var rootDir string
	var jsonOutput bool
	flag.StringVar(&rootDir, "root", "", "Path to repository root (default: auto-detect)")
	flag.BoolVar(&jsonOutput, "json", false, "Output as JSON")
	flag.Parse()

	if rootDir == "" {
		var err error
		rootDir, err = detectRoot()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(2)
		}
	}

	rpt, err := buildReport(
		filepath.Join(rootDir, "pkg", "device", "testdata"),
		filepath.Join(rootDir, "testdata", "captures"),
		rootDir,
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rpt); err != nil {
			fmt.Fprintf(os.Stderr, "error encoding JSON: %v\n", err)
			os.Exit(2)
		}
	} else {
		printTextReport(os.Stdout, rpt)
	}

	if rpt.hasGaps() {
		os.Exit(1)
	}
}

// detectRoot walks up from the current directory looking for the repo root.
func detectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "testdata", "captures")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find repository root (no testdata/captures/ found)")
		}
		dir = parent
	}
}

// listFixtures returns the absolute paths of the capture fixtures in dir.
func listFixtures(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".hex", ".json", ".txt":
			abs, err := filepath.Abs(filepath.Join(dir, e.Name()))
			if err != nil {
				return nil, err
			}
			out = append(out, abs)
		}
	}
	sort.Strings(out)
	return out, nil
}

// caseFiles returns the absolute paths referenced by the "file" params of
// tc, resolved against the case's own directory.
func caseFiles(tc *loader.TestCase) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, step := range tc.Steps {
		name, ok := step.Params["file"].(string)
		if !ok || name == "" {
			continue
		}
		if !filepath.IsAbs(name) {
			name = filepath.Join(filepath.Dir(tc.Path), name)
		}
		abs, err := filepath.Abs(name)
		if err != nil {
			return nil, err
		}
		if !seen[abs] {
			seen[abs] = true
			out = append(out, abs)
		}
	}
	return out, nil
}

func buildReport(fixtureDir, caseDir, root string) (report, error) {
	var rpt report

	fixtures, err := listFixtures(fixtureDir)
	if err != nil {
		return rpt, err
	}
	cases, err := loader.LoadDirectoryRecursive(caseDir)
	if err != nil {
		return rpt, err
	}

	used := make(map[string]bool)
	ids := make(map[string]int)
	missing := make(map[string]bool)
	for _, tc := range cases {
		ids[tc.ID]++
		files, err := caseFiles(tc)
		if err != nil {
			return rpt, err
		}
		cr := caseReport{ID: tc.ID, File: relPath(root, tc.Path), Steps: len(tc.Steps)}
		for _, f := range files {
			used[f] = true
			cr.Uses = append(cr.Uses, relPath(root, f))
			if _, err := os.Stat(f); err != nil {
				missing[relPath(root, f)] = true
			}
		}
		rpt.Cases = append(rpt.Cases, cr)
	}

	covered := 0
	for _, f := range fixtures {
		if used[f] {
			covered++
		} else {
			rpt.Unused = append(rpt.Unused, relPath(root, f))
		}
	}
	for f := range missing {
		rpt.Missing = append(rpt.Missing, f)
	}
	sort.Strings(rpt.Missing)
	for id, n := range ids {
		if n > 1 {
			rpt.Duplicate = append(rpt.Duplicate, id)
		}
	}
	sort.Strings(rpt.Duplicate)

	rpt.Summary = summary{
		Fixtures: len(fixtures),
		Cases:    len(cases),
		Covered:  covered,
		Unused:   len(rpt.Unused),
		Missing:  len(rpt.Missing),
	}
	return rpt, nil
}

func relPath(root, path string) string {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(absRoot, path)
	if err != nil {
		return path
	}
	return rel
}

func printTextReport(w io.Writer, rpt report) {
	fmt.Fprintln(w, "=== Capture Case Coverage Report ===")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "--- Cases ---")
	fmt.Fprintln(w)
	for _, c := range rpt.Cases {
		fmt.Fprintf(w, "%s (%s, %d steps)\n", c.ID, c.File, c.Steps)
		if len(c.Uses) > 0 {
			fmt.Fprintf(w, "  Uses: %s\n", strings.Join(c.Uses, ", "))
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "--- Fixtures not used by any case ---")
	if len(rpt.Unused) == 0 {
		fmt.Fprintln(w, "  (none -- every fixture is exercised)")
	}
	for _, f := range rpt.Unused {
		fmt.Fprintf(w, "  %s\n", f)
	}
	fmt.Fprintln(w)

	if len(rpt.Missing) > 0 {
		fmt.Fprintln(w, "--- Referenced files that do not exist ---")
		for _, f := range rpt.Missing {
			fmt.Fprintf(w, "  %s\n", f)
		}
		fmt.Fprintln(w)
	}
	if len(rpt.Duplicate) > 0 {
		fmt.Fprintln(w, "--- Duplicate case IDs ---")
		fmt.Fprintf(w, "  %s\n", strings.Join(rpt.Duplicate, ", "))
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "--- Summary ---")
	pct := 0
	if rpt.Summary.Fixtures > 0 {
		pct = rpt.Summary.Covered * 100 / rpt.Summary.Fixtures
	}
	fmt.Fprintf(w, "Capture fixtures:   %d\n", rpt.Summary.Fixtures)
	fmt.Fprintf(w, "Capture cases:      %d\n", rpt.Summary.Cases)
	fmt.Fprintf(w, "Covered:            %d (%d%%)\n", rpt.Summary.Covered, pct)
	fmt.Fprintf(w, "Unused fixtures:    %d\n", rpt.Summary.Unused)
	fmt.Fprintf(w, "Missing files:      %d\n", rpt.Summary.Missing)
}
