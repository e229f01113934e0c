package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseTestCase parses a test case from YAML bytes.
func ParseTestCase(data []byte) (*TestCase, error) {
	var tc TestCase
	if err := yaml.Unmarshal(data, &tc); err != nil {
		le := &LoadError{Message: "failed to parse YAML", Cause: err}
		var te *yaml.TypeError
		if !errors.As(err, &te) {
			le.Line = yamlErrorLine(err)
		}
		return nil, le
	}

	if tc.ID == "" {
		return nil, &LoadError{Message: "test case ID is required"}
	}
	if len(tc.Steps) == 0 {
		return nil, &LoadError{Message: "test case must have at least one step"}
	}
	for i, s := range tc.Steps {
		if s.Action == "" {
			return nil, &LoadError{Message: fmt.Sprintf("step %d has no action", i+1)}
		}
	}

	return &tc, nil
}

// yamlErrorLine extracts the line from a yaml.v3 syntax error
// ("yaml: line 3: ..."), or returns 0.
func yamlErrorLine(err error) int {
	var line int
	if _, scanErr := fmt.Sscanf(err.Error(), "yaml: line %d:", &line); scanErr != nil {
		return 0
	}
	return line
}

// LoadTestCase loads a test case from a file.
func LoadTestCase(path string) (*TestCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{File: path, Message: "failed to read file", Cause: err}
	}

	tc, err := ParseTestCase(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.File = path
			return nil, le
		}
		return nil, &LoadError{File: path, Message: err.Error()}
	}
	tc.Path = path
	return tc, nil
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// LoadDirectory loads all test cases from a directory, sorted by ID.
// Only files with .yaml or .yml extensions are loaded.
func LoadDirectory(dir string) ([]*TestCase, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &LoadError{File: dir, Message: "failed to read directory", Cause: err}
	}

	var cases []*TestCase
	for _, entry := range entries {
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}
		tc, err := LoadTestCase(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		cases = append(cases, tc)
	}
	sortByID(cases)
	return cases, nil
}

// LoadDirectoryRecursive loads all test cases below dir, sorted by ID.
func LoadDirectoryRecursive(dir string) ([]*TestCase, error) {
	var cases []*TestCase
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isYAML(path) {
			return nil
		}
		tc, err := LoadTestCase(path)
		if err != nil {
			return err
		}
		cases = append(cases, tc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortByID(cases)
	return cases, nil
}

func sortByID(cases []*TestCase) {
	sort.SliceStable(cases, func(i, j int) bool { return cases[i].ID < cases[j].ID })
}

// FilterByTags returns the cases carrying at least one of tags.
// An empty tag list selects every case.
func FilterByTags(cases []*TestCase, tags []string) []*TestCase {
	if len(tags) == 0 {
		return cases
	}
	var result []*TestCase
	for _, tc := range cases {
		for _, tag := range tags {
			if tc.HasTag(tag) {
				result = append(result, tc)
				break
			}
		}
	}
	return result
}

// FilterByID returns the cases whose ID starts with one of prefixes.
func FilterByID(cases []*TestCase, prefixes []string) []*TestCase {
	if len(prefixes) == 0 {
		return cases
	}
	var result []*TestCase
	for _, tc := range cases {
		for _, p := range prefixes {
			if strings.HasPrefix(tc.ID, p) {
				result = append(result, tc)
				break
			}
		}
	}
	return result
}
