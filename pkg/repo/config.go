package repo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/odvcencio/minigit/pkg/object"
)

// Config stores repository-local settings, persisted as .git/config.toml.
type Config struct {
	User UserConfig `toml:"user"`
	Core CoreConfig `toml:"core"`
}

// UserConfig is the default commit identity.
type UserConfig struct {
	Name  string `toml:"name"`
	Email string `toml:"email"`
}

// CoreConfig controls snapshotting and storage.
type CoreConfig struct {
	// IgnoreFile is read from the working tree root; empty disables user
	// ignore rules. The metadata directory is excluded regardless.
	IgnoreFile string `toml:"ignore_file"`
	// SkipEmptyDirs leaves directories with no snapshotted entries out of
	// their parent tree.
	SkipEmptyDirs bool `toml:"skip_empty_dirs"`
	// Compression is the zlib level for new objects, -1 through 9.
	Compression int `toml:"compression"`
}

// DefaultConfig returns the settings used when config.toml is absent.
func DefaultConfig() *Config {
	return &Config{
		Core: CoreConfig{
			IgnoreFile:  ".gitignore",
			Compression: object.DefaultCompression,
		},
	}
}

func configPath(gitDir string) string {
	return filepath.Join(gitDir, "config.toml")
}

// ReadConfig reads .git/config.toml. Keys missing from the file keep their
// defaults; a missing file returns DefaultConfig.
func ReadConfig(gitDir string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(configPath(gitDir), cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Core.Compression < -1 || c.Core.Compression > 9 {
		return fmt.Errorf("core.compression %d out of range [-1, 9]", c.Core.Compression)
	}
	return nil
}

// WriteConfig atomically writes .git/config.toml.
func WriteConfig(gitDir string, cfg *Config) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.validate(); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	tmp, err := os.CreateTemp(gitDir, ".config-tmp-*")
	if err != nil {
		return fmt.Errorf("write config: tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	if err := toml.NewEncoder(tmp).Encode(cfg); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write config: encode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write config: close: %w", err)
	}
	if err := os.Rename(tmpName, configPath(gitDir)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write config: rename: %w", err)
	}
	return nil
}
