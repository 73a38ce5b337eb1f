package repo

import (
	"io"
	"log/slog"

	"github.com/odvcencio/minigit/pkg/object"
)

// Repo represents an opened repository.
type Repo struct {
	RootDir string        // working directory root
	GitDir  string        // .git/ directory
	Store   *object.Store // content-addressed object store
	Config  *Config

	logger *slog.Logger
}

// Option configures how a repository is opened.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger routes store and tree-builder tracing to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func newRepo(root, gitDir string, opts []Option) (*Repo, error) {
	o := options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	cfg, err := ReadConfig(gitDir)
	if err != nil {
		return nil, err
	}
	return &Repo{
		RootDir: root,
		GitDir:  gitDir,
		Store: object.NewStore(gitDir,
			object.WithLogger(o.logger),
			object.WithCompressionLevel(cfg.Core.Compression),
		),
		Config: cfg,
		logger: o.logger,
	}, nil
}
