// Package testutil creates git repositories on an in-memory document store
// for tests.
package testutil

import (
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	billyplatform "github.com/GenerousLabs/expo-fs/fs/platform/billy"
	"github.com/GenerousLabs/expo-fs/fs/shim"
	"github.com/GenerousLabs/expo-fs/git"
)

// NewMemoryRepo initializes a repository at RepoPath on a fresh in-memory
// store, reached through the shim like any other store. The store is
// returned so tests can inspect what the shim wrote.
func NewMemoryRepo(opts ...shim.Option) (*git.Repository, *billyplatform.Platform, error) {
	store := billyplatform.NewMemory()
	repo, err := git.Init(RepoPath, git.WithPlatform(store, opts...))
	if err != nil {
		return nil, nil, err
	}
	return repo, store, nil
}

// WriteFile writes content to path in fs, creating parent directories.
func WriteFile(fs billy.Filesystem, path, content string) error {
	return util.WriteFile(fs, path, []byte(content), 0o644)
}

// CreateTestCommit creates an empty commit by TestAuthor.
func CreateTestCommit(repo *git.Repository, message string) (string, error) {
	return repo.CreateCommit(git.CommitOptions{
		Author:     TestAuthor,
		Email:      TestEmail,
		Message:    message,
		AllowEmpty: true,
	})
}

// CreateTestCommitWithFile writes path in the worktree, stages it and
// commits.
func CreateTestCommitWithFile(repo *git.Repository, path, content, message string) (string, error) {
	if err := WriteFile(repo.Filesystem(), path, content); err != nil {
		return "", err
	}
	if err := repo.Add(path); err != nil {
		return "", err
	}
	return repo.CreateCommit(git.CommitOptions{
		Author:  TestAuthor,
		Email:   TestEmail,
		Message: message,
	})
}

// CreateTestCommitWithTimestamp creates an empty commit dated when.
func CreateTestCommitWithTimestamp(repo *git.Repository, message string, when time.Time) (string, error) {
	wt, err := repo.Underlying().Worktree()
	if err != nil {
		return "", err
	}
	hash, err := wt.Commit(message, &gogit.CommitOptions{
		Author:            &object.Signature{Name: TestAuthor, Email: TestEmail, When: when},
		AllowEmptyCommits: true,
	})
	if err != nil {
		return "", err
	}
	return hash.String(), nil
}

// CreateTestTag tags commitHash. An empty message creates a lightweight tag.
func CreateTestTag(repo *git.Repository, name, commitHash, message string) error {
	if message == "" {
		return repo.CreateLightweightTag(name, commitHash)
	}
	return repo.CreateTag(name, commitHash, message)
}
