package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteBundle joins the supplied variants with the delimiter and writes the
// result under dir, returning the absolute file path.
func WriteBundle(tb testing.TB, dir, name, delimiter string, sections ...string) string {
	tb.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		tb.Fatalf("mkdir fixture dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(strings.Join(sections, delimiter)), 0o644); err != nil {
		tb.Fatalf("write bundle fixture: %v", err)
	}
	return path
}

// LoadFixture reads a fixture file, failing the test on error.
func LoadFixture(tb testing.TB, path string) []byte {
	tb.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("load fixture %s: %v", path, err)
	}
	return data
}
