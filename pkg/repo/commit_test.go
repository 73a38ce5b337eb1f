package repo

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/odvcencio/minigit/pkg/object"
)

func tempRepo(t *testing.T) *Repo {
	t.Helper()
	r, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	return r
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func adaSignature() object.Signature {
	return object.Signature{
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
		When:  time.Unix(1700000000, 0).In(time.FixedZone("", 3600)),
	}
}

func TestWriteTreeWorkingDirectory(t *testing.T) {
	r := tempRepo(t)
	writeFile(t, r.RootDir, "hello.txt", "hello\n")
	writeFile(t, r.RootDir, "sub/world.txt", "world\n")

	h, err := r.WriteTree()
	if err != nil {
		t.Fatalf("WriteTree: %v", err)
	}
	if h != helloTreeHash {
		t.Errorf("WriteTree: got %s, want %s", h, helloTreeHash)
	}
	if !r.Store.Has(h) {
		t.Error("root tree not stored")
	}
}

func TestWriteTreeHonorsIgnoreFile(t *testing.T) {
	r := tempRepo(t)
	writeFile(t, r.RootDir, "keep.txt", "keep\n")
	writeFile(t, r.RootDir, "drop.log", "drop\n")
	writeFile(t, r.RootDir, ".gitignore", "*.log\n")

	h, err := r.WriteTree()
	if err != nil {
		t.Fatal(err)
	}
	list, err := r.ListTree(h, false)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, l := range list {
		names = append(names, l.Path)
	}
	if strings.Join(names, ",") != ".gitignore,keep.txt" {
		t.Errorf("entries: got %v", names)
	}
}

func TestListTreeRecursive(t *testing.T) {
	r := tempRepo(t)
	writeFile(t, r.RootDir, "hello.txt", "hello\n")
	writeFile(t, r.RootDir, "sub/world.txt", "world\n")
	writeFile(t, r.RootDir, "sub/deeper/x.txt", "x\n")

	h, err := r.WriteTree()
	if err != nil {
		t.Fatal(err)
	}

	flat, err := r.ListTree(h, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(flat) != 2 || flat[1].Path != "sub" || flat[1].Entry.Type() != object.TypeTree {
		t.Errorf("non-recursive listing: %+v", flat)
	}

	deep, err := r.ListTree(h, true)
	if err != nil {
		t.Fatal(err)
	}
	var paths []string
	for _, l := range deep {
		paths = append(paths, l.Path)
		if l.Entry.Type() != object.TypeBlob {
			t.Errorf("recursive listing returned %s entry %s", l.Entry.Type(), l.Path)
		}
	}
	if strings.Join(paths, ",") != "hello.txt,sub/deeper/x.txt,sub/world.txt" {
		t.Errorf("recursive paths: got %v", paths)
	}
}

func TestListTreeRejectsNonTree(t *testing.T) {
	r := tempRepo(t)
	h, err := r.Store.Write(object.TypeBlob, []byte("blob"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.ListTree(h, false); !errors.Is(err, object.ErrInvalidArgument) {
		t.Errorf("ListTree(blob): got %v, want ErrInvalidArgument", err)
	}
}

func TestCommitTreeMatchesGit(t *testing.T) {
	r := tempRepo(t)
	writeFile(t, r.RootDir, "hello.txt", "hello\n")
	writeFile(t, r.RootDir, "sub/world.txt", "world\n")
	tree, err := r.WriteTree()
	if err != nil {
		t.Fatal(err)
	}

	root, err := r.CommitTree(tree, nil, "initial", adaSignature())
	if err != nil {
		t.Fatalf("CommitTree: %v", err)
	}
	if root != "dadabe5aaafacdcd21bc1bf02b972ca5d169c217" {
		t.Errorf("root commit: got %s", root)
	}

	child, err := r.CommitTree(tree, []object.Hash{root}, "second", adaSignature())
	if err != nil {
		t.Fatalf("CommitTree(parent): %v", err)
	}
	if child != "cfb8301cc8f6dcf26b17430926a537e655bd069f" {
		t.Errorf("child commit: got %s", child)
	}
}

func TestCommitTreeParentLines(t *testing.T) {
	r := tempRepo(t)
	tree, err := r.Store.Write(object.TypeTree, nil)
	if err != nil {
		t.Fatal(err)
	}

	root, err := r.CommitTree(tree, nil, "root", adaSignature())
	if err != nil {
		t.Fatal(err)
	}
	_, body, err := r.Store.Read(root)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(body), "parent ") {
		t.Errorf("root commit has parent line: %q", body)
	}

	child, err := r.CommitTree(tree, []object.Hash{root}, "child", adaSignature())
	if err != nil {
		t.Fatal(err)
	}
	_, body, err = r.Store.Read(child)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(string(body), "parent ") != 1 || !strings.Contains(string(body), "parent "+string(root)+"\n") {
		t.Errorf("child commit body: %q", body)
	}

	c, err := r.Store.ReadCommit(child)
	if err != nil {
		t.Fatal(err)
	}
	if c.Message != "child" || c.Author.String() != c.Committer.String() {
		t.Errorf("decoded commit: %+v", c)
	}
}

func TestCommitTreeValidatesInputs(t *testing.T) {
	r := tempRepo(t)
	blob, err := r.Store.Write(object.TypeBlob, []byte("x"))
	if err != nil {
		t.Fatal(err)
	}
	tree, err := r.Store.Write(object.TypeTree, nil)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := r.CommitTree(object.Hash("0000000000000000000000000000000000000000"), nil, "m", adaSignature()); !errors.Is(err, object.ErrObjectNotFound) {
		t.Errorf("missing tree: got %v", err)
	}
	if _, err := r.CommitTree(blob, nil, "m", adaSignature()); !errors.Is(err, object.ErrInvalidArgument) {
		t.Errorf("blob as tree: got %v", err)
	}
	if _, err := r.CommitTree(tree, []object.Hash{tree}, "m", adaSignature()); !errors.Is(err, object.ErrInvalidArgument) {
		t.Errorf("tree as parent: got %v", err)
	}
	if _, err := r.CommitTree(tree, nil, "m", object.Signature{}); !errors.Is(err, object.ErrInvalidArgument) {
		t.Errorf("empty identity: got %v", err)
	}
}
