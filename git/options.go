package git

import (
	"io"
	"log/slog"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/GenerousLabs/expo-fs/fs/billyfs"
	"github.com/GenerousLabs/expo-fs/fs/platform"
	billyplatform "github.com/GenerousLabs/expo-fs/fs/platform/billy"
	"github.com/GenerousLabs/expo-fs/fs/shim"
)

// RepositoryOption configures Init, Open and Clone.
type RepositoryOption func(*repositoryOptions)

type repositoryOptions struct {
	fs        billy.Filesystem
	store     platform.Platform
	shimOpts  []shim.Option
	remoteOps RemoteOperations
	logger    *slog.Logger

	bare          bool
	path          string
	auth          Auth
	depth         int
	singleBranch  bool
	referenceName plumbing.ReferenceName
}

func newOptions(opts []RepositoryOption) *repositoryOptions {
	o := &repositoryOptions{
		remoteOps: &defaultRemoteOps{},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// filesystem returns the configured filesystem. Without WithFilesystem or
// WithPlatform it is the local disk, rooted at "/", seen through the shim.
func (o *repositoryOptions) filesystem() billy.Filesystem {
	if o.fs != nil {
		return o.fs
	}

	store := o.store
	if store == nil {
		store = billyplatform.NewLocal("/")
	}
	shimOpts := append([]shim.Option{shim.WithLogger(o.logger)}, o.shimOpts...)
	return billyfs.New(shim.New(store, shimOpts...), billyfs.WithLogger(o.logger))
}

// WithPlatform keeps the repository in store. Repository paths are relative
// to the store's document directory.
//
//	repo, err := git.Init("/notes", git.WithPlatform(billy.NewMemory()))
func WithPlatform(store platform.Platform, opts ...shim.Option) RepositoryOption {
	return func(o *repositoryOptions) {
		o.store = store
		o.shimOpts = opts
	}
}

// WithFilesystem uses fs directly, bypassing the shim. It takes precedence
// over WithPlatform.
func WithFilesystem(fs billy.Filesystem) RepositoryOption {
	return func(o *repositoryOptions) {
		o.fs = fs
	}
}

// WithLogger sets the logger used by the repository and its filesystem.
func WithLogger(logger *slog.Logger) RepositoryOption {
	return func(o *repositoryOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithRemoteOperations replaces the network layer, mainly for tests.
func WithRemoteOperations(ops RemoteOperations) RepositoryOption {
	return func(o *repositoryOptions) {
		o.remoteOps = ops
	}
}

// WithBare makes Init create a repository without a worktree.
func WithBare() RepositoryOption {
	return func(o *repositoryOptions) {
		o.bare = true
	}
}

// WithPath sets where Clone creates the repository. It defaults to the last
// element of the URL without ".git".
func WithPath(path string) RepositoryOption {
	return func(o *repositoryOptions) {
		o.path = path
	}
}

// WithAuth sets the credentials used by Clone.
func WithAuth(auth Auth) RepositoryOption {
	return func(o *repositoryOptions) {
		o.auth = auth
	}
}

// WithDepth makes Clone shallow. Zero clones the full history.
func WithDepth(depth int) RepositoryOption {
	return func(o *repositoryOptions) {
		o.depth = depth
	}
}

// WithSingleBranch clones only one branch.
func WithSingleBranch() RepositoryOption {
	return func(o *repositoryOptions) {
		o.singleBranch = true
	}
}

// WithReferenceName selects the branch or tag Clone checks out.
func WithReferenceName(ref plumbing.ReferenceName) RepositoryOption {
	return func(o *repositoryOptions) {
		o.referenceName = ref
	}
}
