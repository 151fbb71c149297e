package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"
)

// FixedTime is the mtime WriteTree stamps on every file so archives built
// from fixtures are reproducible.
var FixedTime = time.Date(2020, 1, 2, 3, 4, 6, 0, time.UTC)

// WriteTree creates files under dir. Keys are slash paths relative to dir;
// a key ending in "/" creates an empty directory.
func WriteTree(t testing.TB, dir string, files map[string]string) {
	t.Helper()

	for path, content := range files {
		full := filepath.Join(dir, filepath.FromSlash(path))
		if path[len(path)-1] == '/' {
			if err := os.MkdirAll(full, 0o755); err != nil {
				t.Fatalf("creating dir %s: %v", path, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("creating dirs for %s: %v", path, err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", path, err)
		}
		if err := os.Chtimes(full, FixedTime, FixedTime); err != nil {
			t.Fatalf("stamping %s: %v", path, err)
		}
	}
}

// SetupTree creates a fresh temp dir populated by WriteTree.
func SetupTree(t testing.TB, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	WriteTree(t, dir, files)
	return dir
}

// ReadTree returns every regular file under dir keyed by slash path relative to dir.
func ReadTree(t testing.TB, dir string) map[string]string {
	t.Helper()

	out := make(map[string]string)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("reading tree %s: %v", dir, err)
	}
	return out
}

// Names returns the sorted entry names of dir.
func Names(t testing.TB, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("listing %s: %v", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}
