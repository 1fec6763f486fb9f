package git

import (
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"

	fserrors "github.com/GenerousLabs/expo-fs/errors"
)

// CreateBranch creates a local branch at ref without checking it out.
// It fails with EEXIST when the branch exists and ENOENT when ref does not
// resolve.
func (r *Repository) CreateBranch(name, ref string) error {
	if name == "" || ref == "" {
		return invalidf("branch name and reference are required")
	}

	hash, err := r.repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return wrapError(err, "resolve "+ref)
	}
	return r.setNewRef(plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), *hash))
}

// CreateBranchFromRemote creates localName at the tip of remoteBranch
// ("origin/main") and configures it to track that branch.
func (r *Repository) CreateBranchFromRemote(localName, remoteBranch string) error {
	if localName == "" || remoteBranch == "" {
		return invalidf("local and remote branch names are required")
	}

	remote, branch, ok := strings.Cut(remoteBranch, "/")
	if !ok || remote == "" || branch == "" {
		return invalidf("remote branch %q is not of the form remote/branch", remoteBranch)
	}

	tip, err := r.repo.Reference(plumbing.NewRemoteReferenceName(remote, branch), false)
	if err != nil {
		return wrapError(err, "find remote branch "+remoteBranch)
	}
	if err := r.setNewRef(plumbing.NewHashReference(plumbing.NewBranchReferenceName(localName), tip.Hash())); err != nil {
		return err
	}

	cfg, err := r.repo.Config()
	if err != nil {
		return wrapError(err, "read config")
	}
	cfg.Branches[localName] = &config.Branch{
		Name:   localName,
		Remote: remote,
		Merge:  plumbing.NewBranchReferenceName(branch),
	}
	if err := r.repo.Storer.SetConfig(cfg); err != nil {
		return wrapError(err, "write config")
	}
	return nil
}

// setNewRef stores ref, failing with EEXIST when its name is taken.
func (r *Repository) setNewRef(ref *plumbing.Reference) error {
	if _, err := r.repo.Reference(ref.Name(), false); err == nil {
		return fserrors.New(fserrors.CodeExist, ref.Name().Short())
	}
	if err := r.repo.Storer.SetReference(ref); err != nil {
		return wrapError(err, "write "+ref.Name().String())
	}
	return nil
}

// ListBranches returns local and remote-tracking branches.
func (r *Repository) ListBranches() ([]Branch, error) {
	refs, err := r.repo.References()
	if err != nil {
		return nil, wrapError(err, "list references")
	}
	defer refs.Close()

	var branches []Branch
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name()
		if ref.Type() != plumbing.HashReference || !(name.IsBranch() || name.IsRemote()) {
			return nil
		}
		branches = append(branches, Branch{
			Name:     name.Short(),
			Hash:     ref.Hash(),
			IsRemote: name.IsRemote(),
		})
		return nil
	})
	if err != nil {
		return nil, wrapError(err, "list branches")
	}
	return branches, nil
}

// CurrentBranch returns the short name of the checked out branch. A
// detached HEAD fails with EINVAL.
func (r *Repository) CurrentBranch() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", wrapError(err, "resolve HEAD")
	}
	if !head.Name().IsBranch() {
		return "", invalidf("HEAD is detached at %s", head.Hash())
	}
	return head.Name().Short(), nil
}

// CheckoutBranch checks out an existing local branch.
func (r *Repository) CheckoutBranch(name string) error {
	if name == "" {
		return invalidf("branch name is required")
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return wrapError(err, "get worktree")
	}
	if err := wt.Checkout(&gogit.CheckoutOptions{Branch: plumbing.NewBranchReferenceName(name)}); err != nil {
		return wrapError(err, "checkout "+name)
	}
	return nil
}

// DeleteBranch removes a local branch. The checked out branch cannot be
// deleted. Without force, a branch whose tip is not reachable from HEAD is
// kept and ECONFLICT returned.
func (r *Repository) DeleteBranch(name string, force bool) error {
	if name == "" {
		return invalidf("branch name is required")
	}

	refName := plumbing.NewBranchReferenceName(name)
	ref, err := r.repo.Reference(refName, false)
	if err != nil {
		return wrapError(err, "find branch "+name)
	}

	head, err := r.repo.Head()
	if err != nil {
		return wrapError(err, "resolve HEAD")
	}
	if head.Name() == refName {
		return fserrors.Newf(fserrors.CodeConflict, "branch %q is checked out", name)
	}

	if !force {
		merged, err := r.isMerged(ref.Hash(), head.Hash())
		if err != nil {
			return err
		}
		if !merged {
			return fserrors.Newf(fserrors.CodeConflict, "branch %q is not merged", name)
		}
	}

	if err := r.repo.Storer.RemoveReference(refName); err != nil {
		return wrapError(err, "delete branch "+name)
	}
	return nil
}

// isMerged reports whether tip is head or one of its ancestors.
func (r *Repository) isMerged(tip, head plumbing.Hash) (bool, error) {
	if tip == head {
		return true, nil
	}
	tipCommit, err := r.repo.CommitObject(tip)
	if err != nil {
		return false, wrapError(err, "load commit "+tip.String())
	}
	headCommit, err := r.repo.CommitObject(head)
	if err != nil {
		return false, wrapError(err, "load commit "+head.String())
	}
	ok, err := tipCommit.IsAncestor(headCommit)
	if err != nil {
		return false, wrapError(err, "compare commits")
	}
	return ok, nil
}
