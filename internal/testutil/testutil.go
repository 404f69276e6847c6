// Package testutil provides shared test helpers for building temporary
// recipe corpora on disk.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteFile writes content to dir/name, creating intermediate directories,
// and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// WriteRecipe writes a .cook file (the extension is appended when name
// carries none) and returns the full path.
func WriteRecipe(t *testing.T, dir, name, content string) string {
	t.Helper()
	if !strings.Contains(filepath.Base(name), ".") {
		name += ".cook"
	}
	return WriteFile(t, dir, name, content)
}

// WriteImage writes an empty placeholder image file and returns the full path.
func WriteImage(t *testing.T, dir, name string) string {
	t.Helper()
	return WriteFile(t, dir, name, "")
}
