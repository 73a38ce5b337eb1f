package repo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/odvcencio/minigit/pkg/ignore"
)

// ErrNotRepository is returned by Open when no metadata directory is found.
var ErrNotRepository = errors.New("not a repository")

// DefaultHead is the content of HEAD in a freshly initialized repository.
const DefaultHead = "ref: refs/heads/main\n"

// Exists reports whether path already holds a repository.
func Exists(path string) bool {
	info, err := os.Stat(filepath.Join(path, ignore.MetaDir, "HEAD"))
	return err == nil && info.Mode().IsRegular()
}

// Init creates the .git/ directory structure at path: objects/, refs/heads/,
// HEAD and a default config.toml. Running it on an existing repository only
// fills in what is missing; HEAD and config are never overwritten.
func Init(path string, opts ...Option) (*Repo, error) {
	gitDir := filepath.Join(path, ignore.MetaDir)

	dirs := []string{
		filepath.Join(gitDir, "objects"),
		filepath.Join(gitDir, "refs", "heads"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("init: mkdir %s: %w", d, err)
		}
	}

	headPath := filepath.Join(gitDir, "HEAD")
	if err := writeIfMissing(headPath, []byte(DefaultHead)); err != nil {
		return nil, fmt.Errorf("init: write HEAD: %w", err)
	}

	if _, err := os.Stat(configPath(gitDir)); errors.Is(err, fs.ErrNotExist) {
		if err := WriteConfig(gitDir, DefaultConfig()); err != nil {
			return nil, fmt.Errorf("init: %w", err)
		}
	}

	return newRepo(path, gitDir, opts)
}

func writeIfMissing(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil
		}
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Open searches upward from path for a .git/ directory and opens the
// repository. Returns an error if no .git/ directory is found.
func Open(path string, opts ...Option) (*Repo, error) {
	// Resolve to absolute path for consistent traversal.
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("open: abs path: %w", err)
	}

	cur := abs
	for {
		gitDir := filepath.Join(cur, ignore.MetaDir)
		info, err := os.Stat(gitDir)
		if err == nil && info.IsDir() {
			return newRepo(cur, gitDir, opts)
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			// Reached filesystem root without finding .git/.
			return nil, fmt.Errorf("open: %w (or any parent up to /)", ErrNotRepository)
		}
		cur = parent
	}
}
