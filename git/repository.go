package git

import (
	"context"
	"strings"

	"github.com/go-git/go-billy/v5"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

// Init creates a repository at path. Objects and refs go under path/.git
// unless WithBare is given, in which case they sit directly under path.
//
// Init fails with EEXIST when a repository already exists there.
func Init(path string, opts ...RepositoryOption) (*Repository, error) {
	o := newOptions(opts)
	root := o.filesystem()

	if err := root.MkdirAll(path, 0o755); err != nil {
		return nil, wrapError(err, "create repository directory")
	}
	scoped, err := root.Chroot(path)
	if err != nil {
		return nil, wrapError(err, "scope filesystem to repository")
	}

	storage, worktree, err := layout(scoped, o.bare)
	if err != nil {
		return nil, err
	}

	repo, err := gogit.Init(storage, worktree)
	if err != nil {
		return nil, wrapError(err, "initialize repository")
	}

	o.logger.Debug("initialized repository", "path", path, "bare", o.bare)
	return newRepository(path, repo, scoped, o), nil
}

// Open opens the repository at path. A path with a .git directory is opened
// with its worktree; anything else is treated as bare.
//
// Open fails with ENOENT when there is no repository at path.
func Open(path string, opts ...RepositoryOption) (*Repository, error) {
	o := newOptions(opts)

	scoped, err := o.filesystem().Chroot(path)
	if err != nil {
		return nil, wrapError(err, "scope filesystem to repository")
	}

	info, err := scoped.Stat(gogit.GitDirName)
	bare := err != nil || !info.IsDir()

	storage, worktree, err := layout(scoped, bare)
	if err != nil {
		return nil, err
	}

	repo, err := gogit.Open(storage, worktree)
	if err != nil {
		return nil, wrapError(err, "open repository")
	}
	return newRepository(path, repo, scoped, o), nil
}

// Clone clones url into the configured filesystem. The repository is
// created at the WithPath location, or at a directory named after the URL.
func Clone(ctx context.Context, url string, opts ...RepositoryOption) (*Repository, error) {
	o := newOptions(opts)

	target := o.path
	if target == "" {
		target = repoName(url)
	}

	repo, err := o.remoteOps.Clone(ctx, o.filesystem(), CloneOptions{
		URL:           url,
		Path:          target,
		Auth:          o.auth,
		Depth:         o.depth,
		SingleBranch:  o.singleBranch,
		ReferenceName: o.referenceName,
	})
	if err != nil {
		return nil, err
	}

	if repo.remoteOps == nil {
		repo.remoteOps = o.remoteOps
	}
	if repo.logger == nil {
		repo.logger = o.logger
	}
	return repo, nil
}

// layout returns the storage and worktree for a repository rooted at fs.
func layout(fs billy.Filesystem, bare bool) (*filesystem.Storage, billy.Filesystem, error) {
	if bare {
		return filesystem.NewStorage(fs, cache.NewObjectLRUDefault()), nil, nil
	}

	dot, err := fs.Chroot(gogit.GitDirName)
	if err != nil {
		return nil, nil, wrapError(err, "scope filesystem to .git")
	}
	return filesystem.NewStorage(dot, cache.NewObjectLRUDefault()), fs, nil
}

func newRepository(path string, repo *gogit.Repository, fs billy.Filesystem, o *repositoryOptions) *Repository {
	return &Repository{
		path:      path,
		repo:      repo,
		fs:        fs,
		remoteOps: o.remoteOps,
		logger:    o.logger,
	}
}

// repoName derives a directory name from a clone URL:
// "https://host/org/notes.git" becomes "notes".
func repoName(url string) string {
	name := strings.TrimSuffix(strings.TrimRight(url, "/"), ".git")
	if i := strings.LastIndexAny(name, "/:"); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		return "repo"
	}
	return name
}

// Path returns the path the repository was opened at.
func (r *Repository) Path() string {
	return r.path
}

// Underlying returns the go-git repository for operations this package does
// not wrap.
func (r *Repository) Underlying() *gogit.Repository {
	return r.repo
}

// Filesystem returns the filesystem scoped to the repository: the worktree
// for standard repositories and the git directory for bare ones.
func (r *Repository) Filesystem() billy.Filesystem {
	return r.fs
}

// IsBare reports whether the repository has no worktree.
func (r *Repository) IsBare() bool {
	_, err := r.repo.Worktree()
	return err != nil
}
