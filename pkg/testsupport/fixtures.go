// Package testsupport holds filesystem helpers shared by package tests.
package testsupport

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// WriteTree materialises files (slash-separated relative path to contents)
// under dir, creating parent directories as needed.
func WriteTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, contents := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

// ListTree returns every regular file under dir as sorted slash-separated
// relative paths. A missing dir yields an empty list.
func ListTree(t *testing.T, dir string) []string {
	t.Helper()

	files := []string{}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == dir {
				return fs.SkipDir
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		t.Fatalf("list %s: %v", dir, err)
	}
	sort.Strings(files)
	return files
}

// MustReadFile reads a slash-separated path below dir.
func MustReadFile(t *testing.T, dir, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return data
}

// MustReadString reads a slash-separated path below dir as a string.
func MustReadString(t *testing.T, dir, name string) string {
	t.Helper()
	return string(MustReadFile(t, dir, name))
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
