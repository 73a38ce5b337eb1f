package repo

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"

	"github.com/odvcencio/minigit/pkg/ignore"
	"github.com/odvcencio/minigit/pkg/object"
)

// ObjectWriter is the part of the object store the tree builder needs.
type ObjectWriter interface {
	Write(objType object.ObjectType, data []byte) (object.Hash, error)
}

// TreeBuilder snapshots a directory of a read-only filesystem into tree and
// blob objects.
type TreeBuilder struct {
	fsys          fs.FS
	store         ObjectWriter
	ignore        *ignore.Matcher
	skipEmptyDirs bool
	logger        *slog.Logger
}

// TreeBuilderOption configures a TreeBuilder.
type TreeBuilderOption func(*TreeBuilder)

// WithIgnore replaces the default matcher, which only excludes .git.
func WithIgnore(m *ignore.Matcher) TreeBuilderOption {
	return func(b *TreeBuilder) {
		if m != nil {
			b.ignore = m
		}
	}
}

// WithSkipEmptyDirs drops subdirectories that contribute no entries.
func WithSkipEmptyDirs(skip bool) TreeBuilderOption {
	return func(b *TreeBuilder) {
		b.skipEmptyDirs = skip
	}
}

// WithTreeLogger sets the logger for skipped-entry tracing.
func WithTreeLogger(logger *slog.Logger) TreeBuilderOption {
	return func(b *TreeBuilder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewTreeBuilder creates a builder reading from fsys and writing to store.
func NewTreeBuilder(fsys fs.FS, store ObjectWriter, opts ...TreeBuilderOption) *TreeBuilder {
	b := &TreeBuilder{
		fsys:   fsys,
		store:  store,
		ignore: ignore.Default(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build writes a tree object for dir ("." for the filesystem root) and every
// blob and subtree beneath it, returning the root tree's hash. Regular files
// become 100644 blobs and directories become 40000 subtrees; other file types
// are skipped. The result depends only on names, types and file contents,
// never on the order the filesystem lists entries in.
func (b *TreeBuilder) Build(dir string) (object.Hash, error) {
	h, _, err := b.buildDir(dir)
	return h, err
}

// buildDir returns the tree hash for dir and how many entries it holds.
func (b *TreeBuilder) buildDir(dir string) (object.Hash, int, error) {
	dirents, err := fs.ReadDir(b.fsys, dir)
	if err != nil {
		return "", 0, fmt.Errorf("build tree %q: %w: %w", dir, object.ErrIO, err)
	}

	entries := make([]object.TreeEntry, 0, len(dirents))
	for _, d := range dirents {
		name := d.Name()
		rel := path.Join(dir, name)
		if b.ignore.Matches(rel, d.IsDir()) {
			b.logger.Debug("skip ignored", "path", rel)
			continue
		}

		switch {
		case d.IsDir():
			subHash, n, err := b.buildDir(rel)
			if err != nil {
				return "", 0, err
			}
			if n == 0 && b.skipEmptyDirs {
				b.logger.Debug("skip empty directory", "path", rel)
				continue
			}
			entries = append(entries, object.TreeEntry{
				Mode: object.TreeModeDir,
				Name: name,
				Hash: subHash,
			})

		case d.Type().IsRegular():
			data, err := fs.ReadFile(b.fsys, rel)
			if err != nil {
				return "", 0, fmt.Errorf("build tree: read %q: %w: %w", rel, object.ErrIO, err)
			}
			blobHash, err := b.store.Write(object.TypeBlob, object.MarshalBlob(&object.Blob{Data: data}))
			if err != nil {
				return "", 0, fmt.Errorf("build tree: blob %q: %w", rel, err)
			}
			entries = append(entries, object.TreeEntry{
				Mode: object.TreeModeFile,
				Name: name,
				Hash: blobHash,
			})

		default:
			b.logger.Debug("skip non-regular file", "path", rel, "mode", d.Type().String())
		}
	}

	data, err := object.MarshalTree(&object.TreeObj{Entries: entries})
	if err != nil {
		return "", 0, fmt.Errorf("build tree %q: %w", dir, err)
	}
	h, err := b.store.Write(object.TypeTree, data)
	if err != nil {
		return "", 0, fmt.Errorf("write tree %q: %w", dir, err)
	}
	return h, len(entries), nil
}

// WriteTree snapshots the working tree using the repository's ignore and
// empty-directory settings.
func (r *Repo) WriteTree() (object.Hash, error) {
	fsys := os.DirFS(r.RootDir)
	matcher, err := ignore.Load(fsys, r.Config.Core.IgnoreFile)
	if err != nil {
		return "", fmt.Errorf("write tree: %w", err)
	}
	b := NewTreeBuilder(fsys, r.Store,
		WithIgnore(matcher),
		WithSkipEmptyDirs(r.Config.Core.SkipEmptyDirs),
		WithTreeLogger(r.logger),
	)
	return b.Build(".")
}

// TreeListing is one line of a tree listing: an entry and its path relative
// to the listed tree.
type TreeListing struct {
	Path  string
	Entry object.TreeEntry
}

// ListTree returns the entries of a tree in stored order. With recursive set,
// subtrees are expanded in place and only blob entries are returned, with
// slash-separated paths.
func (r *Repo) ListTree(h object.Hash, recursive bool) ([]TreeListing, error) {
	return r.listTreeRec(h, "", recursive)
}

func (r *Repo) listTreeRec(h object.Hash, prefix string, recursive bool) ([]TreeListing, error) {
	tr, err := r.Store.ReadTree(h)
	if err != nil {
		return nil, fmt.Errorf("list tree: %w", err)
	}

	var result []TreeListing
	for _, entry := range tr.Entries {
		fullPath := entry.Name
		if prefix != "" {
			fullPath = prefix + "/" + entry.Name
		}

		if recursive && entry.Type() == object.TypeTree {
			sub, err := r.listTreeRec(entry.Hash, fullPath, recursive)
			if err != nil {
				return nil, err
			}
			result = append(result, sub...)
			continue
		}
		result = append(result, TreeListing{Path: fullPath, Entry: entry})
	}
	return result, nil
}
