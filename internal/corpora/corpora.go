// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package corpora runs table-driven tests whose table lives in the file
// system: each test case is an input file, and each expected output sits
// next to it in a file with an added extension.
package corpora

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pmezard/go-difflib/difflib"
)

// Corpus describes a test data corpus.
type Corpus struct {
	// The root of the test data directory. This path is relative to the file
	// that calls [Corpus.Run].
	Root string

	// An environment variable holding a glob. Test cases whose path matches
	// it have their output files rewritten instead of checked.
	Refresh string

	// The file extensions (without a dot) of files which define a test case,
	// e.g. "yaml".
	Extensions []string

	// Possible outputs of the test. A missing output file is treated as
	// being expected to be empty.
	Outputs []Output
}

// Output represents one output of a test case.
type Output struct {
	// The extension of the output. This is a suffix to the name of the
	// test case's main file; so for a test "foo.yaml" and an extension of
	// "stderr", the runner looks for "foo.yaml.stderr".
	Extension string

	// The comparison function for this output. May be nil, in which case
	// the values are compared byte-for-byte.
	Compare Compare
}

// Compare is a comparison function between strings, used in [Output].
//
// Returns empty string if the strings match, otherwise returns an error
// message.
type Compare func(got, want string) string

// Run executes test on every case in the corpus. The test fills in outputs,
// which has one element per entry in Outputs.
func (c Corpus) Run(t *testing.T, test func(t *testing.T, path, text string, outputs []string)) {
	t.Helper()
	testDir := callerDir(0)
	root := filepath.Join(testDir, c.Root)

	cases, err := c.cases(root)
	if err != nil {
		t.Fatalf("corpora: error while walking %q: %v", root, err)
	}
	if len(cases) == 0 {
		t.Fatalf("corpora: no test cases found in %q", root)
	}

	var refresh string
	if c.Refresh != "" {
		refresh = os.Getenv(c.Refresh)
		if refresh != "" && !doublestar.ValidatePattern(refresh) {
			t.Fatalf("corpora: invalid glob in %s: %q", c.Refresh, refresh)
		}
	}
	if refresh != "" {
		t.Logf("corpora: refreshing test data because %s=%s", c.Refresh, refresh)
	}

	for _, path := range cases {
		name, _ := filepath.Rel(testDir, path)
		name = filepath.ToSlash(name)
		t.Run(name, func(t *testing.T) {
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("corpora: error while loading input file %q: %v", path, err)
			}
			outputs := make([]string, len(c.Outputs))
			test(t, name, string(data), outputs)

			rewrite := refresh != ""
			if rewrite {
				rewrite, _ = doublestar.Match(refresh, name)
			}
			for i, output := range c.Outputs {
				outPath := path + "." + output.Extension
				if rewrite {
					if err := writeOutput(outPath, outputs[i]); err != nil {
						t.Errorf("corpora: %v", err)
					}
					continue
				}
				want, err := os.ReadFile(outPath)
				if err != nil && !errors.Is(err, fs.ErrNotExist) {
					t.Errorf("corpora: error while loading output file %q: %v", outPath, err)
					continue
				}
				cmp := output.Compare
				if cmp == nil {
					cmp = Diff
				}
				if msg := cmp(outputs[i], string(want)); msg != "" {
					t.Errorf("output mismatch for %q:\n%s", outPath, msg)
				}
			}
		})
	}
}

func (c Corpus) cases(root string) ([]string, error) {
	var cases []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && slices.Contains(c.Extensions, strings.TrimPrefix(filepath.Ext(p), ".")) {
			cases = append(cases, p)
		}
		return nil
	})
	slices.Sort(cases)
	return cases, err
}

// writeOutput stores an output, deleting the file for an empty one.
func writeOutput(path, content string) error {
	if content == "" {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error while deleting output file %q: %w", path, err)
		}
		return nil
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("error while writing output file %q: %w", path, err)
	}
	return nil
}

// Diff compares got and want byte-for-byte, returning a unified diff when
// they differ.
func Diff(got, want string) string {
	if got == want {
		return ""
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}
	return diff
}

func callerDir(skip int) string {
	_, file, _, ok := runtime.Caller(skip + 2)
	if !ok {
		panic("corpora: could not determine test file's directory")
	}
	return filepath.Dir(file)
}
