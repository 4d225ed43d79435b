package fileproc

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnumerate_RegularFilesOnly(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"b.txt", "a.txt", "c.log"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("data\n"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.Symlink(filepath.Join(dir, "a.txt"), filepath.Join(dir, "link")); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	items, err := Enumerate(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"a.txt", "b.txt", "c.log"}
	if len(items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(items))
	}
	for i, item := range items {
		if filepath.Base(item.Path) != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], filepath.Base(item.Path))
		}
		if item.Index != i {
			t.Errorf("position %d: expected index %d, got %d", i, i, item.Index)
		}
	}
}

func TestEnumerate_EmptyDirectory(t *testing.T) {
	items, err := Enumerate(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no items, got %d", len(items))
	}
}

func TestEnumerate_MissingDirectory(t *testing.T) {
	if _, err := Enumerate(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
