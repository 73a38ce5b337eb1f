// Package ignore decides which working-tree paths are left out of tree
// snapshots.
package ignore

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// MetaDir is the name of the repository metadata directory. It is never
// part of a snapshot, at any depth.
const MetaDir = ".git"

// Matcher applies gitignore-style rules to slash-separated paths relative to
// the repository root.
type Matcher struct {
	ignorer *gitignore.GitIgnore
}

// Default returns a matcher that only excludes the metadata directory.
func Default() *Matcher {
	return &Matcher{ignorer: gitignore.CompileIgnoreLines(MetaDir)}
}

// New compiles the given rule lines followed by the metadata-directory rule,
// so no user negation can re-include it.
func New(lines ...string) *Matcher {
	rules := append(slices.Clone(lines), MetaDir)
	return &Matcher{ignorer: gitignore.CompileIgnoreLines(rules...)}
}

// Load reads rules from name inside fsys and merges them with the
// metadata-directory rule. A missing file yields Default. An empty name
// disables user rules.
func Load(fsys fs.FS, name string) (*Matcher, error) {
	if name == "" {
		return Default(), nil
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("load ignore file %s: %w", name, err)
	}
	return New(strings.Split(string(data), "\n")...), nil
}

// Matches reports whether the path should be left out. Directories are also
// checked with a trailing slash so dir-only rules ("build/") apply to them.
// Any path with a MetaDir segment matches regardless of rules.
func (m *Matcher) Matches(path string, isDir bool) bool {
	if inMetaDir(path) {
		return true
	}
	if m == nil || m.ignorer == nil {
		return false
	}
	if m.ignorer.MatchesPath(path) {
		return true
	}
	return isDir && m.ignorer.MatchesPath(path+"/")
}

func inMetaDir(path string) bool {
	for _, seg := range strings.Split(path, "/") {
		if seg == MetaDir {
			return true
		}
	}
	return false
}
