package git

import (
	"context"
	"errors"

	"github.com/go-git/go-billy/v5"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/transport"
)

// DefaultRemote is the remote used when an option leaves RemoteName empty.
const DefaultRemote = "origin"

// RemoteOperations performs the network side of Clone, Fetch and Push.
// The default implementation uses go-git's transports; tests substitute
// their own through WithRemoteOperations.
type RemoteOperations interface {
	Clone(ctx context.Context, fs billy.Filesystem, opts CloneOptions) (*Repository, error)
	Fetch(ctx context.Context, repo *Repository, opts FetchOptions) error
	Push(ctx context.Context, repo *Repository, opts PushOptions) error
}

type defaultRemoteOps struct{}

func (defaultRemoteOps) Clone(ctx context.Context, fs billy.Filesystem, opts CloneOptions) (*Repository, error) {
	if opts.URL == "" {
		return nil, invalidf("clone URL is required")
	}
	auth, err := authMethod(opts.Auth)
	if err != nil {
		return nil, err
	}

	if err := fs.MkdirAll(opts.Path, 0o755); err != nil {
		return nil, wrapError(err, "create clone directory")
	}
	scoped, err := fs.Chroot(opts.Path)
	if err != nil {
		return nil, wrapError(err, "scope filesystem to clone")
	}
	storage, worktree, err := layout(scoped, false)
	if err != nil {
		return nil, err
	}

	repo, err := gogit.CloneContext(ctx, storage, worktree, &gogit.CloneOptions{
		URL:           opts.URL,
		Auth:          auth,
		Depth:         opts.Depth,
		SingleBranch:  opts.SingleBranch,
		ReferenceName: opts.ReferenceName,
	})
	if err != nil {
		return nil, wrapError(err, "clone "+opts.URL)
	}
	return &Repository{path: opts.Path, repo: repo, fs: scoped}, nil
}

func (defaultRemoteOps) Fetch(ctx context.Context, repo *Repository, opts FetchOptions) error {
	auth, err := authMethod(opts.Auth)
	if err != nil {
		return err
	}

	err = repo.repo.FetchContext(ctx, &gogit.FetchOptions{
		RemoteName: remoteName(opts.RemoteName),
		Auth:       auth,
		Depth:      opts.Depth,
	})
	if err != nil && !errors.Is(err, gogit.NoErrAlreadyUpToDate) {
		return wrapError(err, "fetch")
	}
	return nil
}

func (defaultRemoteOps) Push(ctx context.Context, repo *Repository, opts PushOptions) error {
	auth, err := authMethod(opts.Auth)
	if err != nil {
		return err
	}

	specs := make([]config.RefSpec, 0, len(opts.RefSpecs))
	for _, s := range opts.RefSpecs {
		spec := config.RefSpec(s)
		if err := spec.Validate(); err != nil {
			return wrapError(err, "refspec "+s)
		}
		specs = append(specs, spec)
	}

	err = repo.repo.PushContext(ctx, &gogit.PushOptions{
		RemoteName: remoteName(opts.RemoteName),
		RefSpecs:   specs,
		Auth:       auth,
		Force:      opts.Force,
	})
	if err != nil && !errors.Is(err, gogit.NoErrAlreadyUpToDate) {
		return wrapError(err, "push")
	}
	return nil
}

func remoteName(name string) string {
	if name == "" {
		return DefaultRemote
	}
	return name
}

// authMethod converts an Auth to a go-git transport credential. Nil means
// anonymous.
func authMethod(auth Auth) (transport.AuthMethod, error) {
	if auth == nil {
		return nil, nil
	}
	method, ok := auth.(transport.AuthMethod)
	if !ok {
		return nil, invalidf("unsupported credential type %T", auth)
	}
	return method, nil
}

// ListRemotes returns the configured remotes.
func (r *Repository) ListRemotes() ([]Remote, error) {
	remotes, err := r.repo.Remotes()
	if err != nil {
		return nil, wrapError(err, "list remotes")
	}

	out := make([]Remote, 0, len(remotes))
	for _, remote := range remotes {
		cfg := remote.Config()
		out = append(out, Remote{Name: cfg.Name, URLs: cfg.URLs})
	}
	return out, nil
}

// AddRemote configures a new remote. It fails with EEXIST when the name is
// taken.
func (r *Repository) AddRemote(opts RemoteOptions) error {
	_, err := r.repo.CreateRemote(&config.RemoteConfig{
		Name: opts.Name,
		URLs: []string{opts.URL},
	})
	if err != nil {
		return wrapError(err, "add remote "+opts.Name)
	}
	return nil
}

// RemoveRemote deletes a remote's configuration.
func (r *Repository) RemoveRemote(name string) error {
	if err := r.repo.DeleteRemote(name); err != nil {
		return wrapError(err, "remove remote "+name)
	}
	return nil
}

// Fetch downloads objects and refs from a remote. Being up to date is not an
// error.
func (r *Repository) Fetch(ctx context.Context, opts FetchOptions) error {
	return r.remoteOps.Fetch(ctx, r, opts)
}

// Push uploads refs to a remote. Being up to date is not an error.
func (r *Repository) Push(ctx context.Context, opts PushOptions) error {
	return r.remoteOps.Push(ctx, r, opts)
}

// Pull fetches from a remote and fast-forwards the checked out branch.
func (r *Repository) Pull(ctx context.Context, opts PullOptions) error {
	auth, err := authMethod(opts.Auth)
	if err != nil {
		return err
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return wrapError(err, "get worktree")
	}

	err = wt.PullContext(ctx, &gogit.PullOptions{
		RemoteName: remoteName(opts.RemoteName),
		Auth:       auth,
	})
	if err != nil && !errors.Is(err, gogit.NoErrAlreadyUpToDate) {
		return wrapError(err, "pull")
	}
	return nil
}
