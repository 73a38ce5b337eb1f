package repo

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestInitCreatesLayout(t *testing.T) {
	dir := t.TempDir()
	r, err := Init(dir)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if r.GitDir != filepath.Join(dir, ".git") {
		t.Errorf("GitDir: got %s", r.GitDir)
	}

	for _, d := range []string{"objects", "refs", filepath.Join("refs", "heads")} {
		info, err := os.Stat(filepath.Join(dir, ".git", d))
		if err != nil || !info.IsDir() {
			t.Errorf("missing directory .git/%s", d)
		}
	}

	head, err := os.ReadFile(filepath.Join(dir, ".git", "HEAD"))
	if err != nil {
		t.Fatalf("read HEAD: %v", err)
	}
	if string(head) != "ref: refs/heads/main\n" {
		t.Errorf("HEAD: got %q", head)
	}
	if !Exists(dir) {
		t.Error("Exists = false after Init")
	}
}

func TestInitIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	if _, err := Init(dir); err != nil {
		t.Fatal(err)
	}
	headPath := filepath.Join(dir, ".git", "HEAD")
	if err := os.WriteFile(headPath, []byte("ref: refs/heads/dev\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Init(dir); err != nil {
		t.Fatalf("re-Init: %v", err)
	}
	head, err := os.ReadFile(headPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(head) != "ref: refs/heads/dev\n" {
		t.Errorf("re-Init overwrote HEAD: %q", head)
	}
}

func TestOpenSearchesUpward(t *testing.T) {
	dir := t.TempDir()
	if _, err := Init(dir); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	r, err := Open(nested)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	want, _ := filepath.Abs(dir)
	if r.RootDir != want {
		t.Errorf("RootDir: got %s, want %s", r.RootDir, want)
	}
}

func TestOpenOutsideRepository(t *testing.T) {
	if _, err := Open(t.TempDir()); !errors.Is(err, ErrNotRepository) {
		t.Errorf("Open outside a repository: got %v, want ErrNotRepository", err)
	}
}
