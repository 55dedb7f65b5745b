// Package testutil provides shared test helpers: declarative tree builders
// and golden file testing.
package testutil

import (
	"errors"
	"flag"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/donaldgifford/kantfmt/pkg/diff"
)

// Update regenerates the expected files from the current output.
// Usage: go test ./... -update
var Update = flag.Bool("update", false, "update golden files")

// Golden case file names.
const (
	GoldenInput    = "input.yaml"
	GoldenExpected = "expected.kt"
)

// FormatFunc formats the tree dump in input and returns the Kotlin source.
type FormatFunc func(t *testing.T, input []byte) string

// RunGolden formats dir/input.yaml with formatFn and compares the result
// with dir/expected.kt. Mismatches are reported as a unified diff.
func RunGolden(t *testing.T, dir string, formatFn FormatFunc) {
	t.Helper()

	input := readFile(t, filepath.Join(dir, GoldenInput))
	actual := formatFn(t, input)

	expectedPath := filepath.Join(dir, GoldenExpected)
	if *Update {
		if err := os.WriteFile(expectedPath, []byte(actual), 0o644); err != nil {
			t.Fatalf("updating %s: %v", expectedPath, err)
		}
		t.Logf("updated %s", expectedPath)
		return
	}

	expected := string(readFile(t, expectedPath))
	if actual == expected {
		return
	}
	d, err := diff.Unified(GoldenExpected, expected, actual)
	if err != nil {
		t.Fatalf("diffing %s: %v", dir, err)
	}
	t.Errorf("output mismatch for %s:\n%s", dir, d)
}

// RunGoldenDir runs RunGolden as a subtest for every case directory under
// testdataDir. A case directory without an input file fails the test.
func RunGoldenDir(t *testing.T, testdataDir string, formatFn FormatFunc) {
	t.Helper()

	entries, err := os.ReadDir(testdataDir)
	if err != nil {
		t.Fatalf("reading testdata dir %s: %v", testdataDir, err)
	}

	ran := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		ran++
		t.Run(entry.Name(), func(t *testing.T) {
			RunGolden(t, filepath.Join(testdataDir, entry.Name()), formatFn)
		})
	}
	if ran == 0 {
		t.Fatalf("no golden cases in %s", testdataDir)
	}
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("golden case file %s is missing", path)
	}
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return data
}
