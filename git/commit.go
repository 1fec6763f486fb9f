package git

import (
	"errors"
	"iter"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// errStopWalk ends a commit walk early when the consumer breaks.
var errStopWalk = errors.New("stop walk")

// Add stages the given worktree paths. Directories are added recursively.
func (r *Repository) Add(paths ...string) error {
	if len(paths) == 0 {
		return invalidf("at least one path is required")
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return wrapError(err, "get worktree")
	}
	for _, p := range paths {
		if _, err := wt.Add(p); err != nil {
			return wrapError(err, "stage "+p)
		}
	}
	return nil
}

// AddAll stages every change in the worktree, including deletions.
func (r *Repository) AddAll() error {
	wt, err := r.repo.Worktree()
	if err != nil {
		return wrapError(err, "get worktree")
	}
	if err := wt.AddWithOptions(&gogit.AddOptions{All: true}); err != nil {
		return wrapError(err, "stage all changes")
	}
	return nil
}

// CreateCommit commits the staged changes on HEAD and returns the new hash.
//
// Author, Email and Message are required (EINVAL). Committing a clean index
// fails with ECONFLICT unless AllowEmpty is set.
func (r *Repository) CreateCommit(opts CommitOptions) (string, error) {
	switch {
	case opts.Author == "":
		return "", invalidf("commit author is required")
	case opts.Email == "":
		return "", invalidf("commit email is required")
	case opts.Message == "":
		return "", invalidf("commit message is required")
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return "", wrapError(err, "get worktree")
	}

	hash, err := wt.Commit(opts.Message, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  opts.Author,
			Email: opts.Email,
		},
		AllowEmptyCommits: opts.AllowEmpty,
	})
	if err != nil {
		return "", wrapError(err, "create commit")
	}

	r.logger.Debug("created commit", "path", r.path, "hash", hash.String())
	return hash.String(), nil
}

// WalkCommits yields the history reachable from to, newest first, stopping
// before from. An empty from walks to the root commit; this matches
// "git log from..to".
//
//	for c, err := range repo.WalkCommits("", "HEAD") {
//		if err != nil {
//			return err
//		}
//		fmt.Println(c.Hash, c.Message)
//	}
func (r *Repository) WalkCommits(from, to string) iter.Seq2[Commit, error] {
	return func(yield func(Commit, error) bool) {
		if to == "" {
			yield(Commit{}, invalidf("walk end reference is required"))
			return
		}

		toHash, err := r.repo.ResolveRevision(plumbing.Revision(to))
		if err != nil {
			yield(Commit{}, wrapError(err, "resolve "+to))
			return
		}

		var stop *plumbing.Hash
		if from != "" {
			if stop, err = r.repo.ResolveRevision(plumbing.Revision(from)); err != nil {
				yield(Commit{}, wrapError(err, "resolve "+from))
				return
			}
			if *stop == *toHash {
				return
			}
		}

		head, err := r.repo.CommitObject(*toHash)
		if err != nil {
			yield(Commit{}, wrapError(err, "load commit "+to))
			return
		}

		var ignore []plumbing.Hash
		if stop != nil {
			ignore = []plumbing.Hash{*stop}
		}
		commits := object.NewCommitPreorderIter(head, nil, ignore)
		defer commits.Close()

		err = commits.ForEach(func(c *object.Commit) error {
			if !yield(toCommit(c), nil) {
				return errStopWalk
			}
			return nil
		})
		if err != nil && !errors.Is(err, errStopWalk) {
			yield(Commit{}, wrapError(err, "walk commits"))
		}
	}
}

// GetCommit resolves ref (a hash, branch, tag or "HEAD") to a commit.
func (r *Repository) GetCommit(ref string) (*Commit, error) {
	if ref == "" {
		return nil, invalidf("reference is required")
	}

	hash, err := r.repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return nil, wrapError(err, "resolve "+ref)
	}
	obj, err := r.repo.CommitObject(*hash)
	if err != nil {
		return nil, wrapError(err, "load commit "+ref)
	}

	c := toCommit(obj)
	return &c, nil
}

func toCommit(c *object.Commit) Commit {
	return Commit{
		Hash:      c.Hash.String(),
		Author:    c.Author.Name,
		Email:     c.Author.Email,
		Message:   c.Message,
		Timestamp: c.Author.When,
		raw:       c,
	}
}

// Underlying returns the go-git commit object.
func (c *Commit) Underlying() *object.Commit {
	return c.raw
}
