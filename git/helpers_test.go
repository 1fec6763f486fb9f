package git

import (
	"testing"

	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fserrors "github.com/GenerousLabs/expo-fs/errors"
	billyplatform "github.com/GenerousLabs/expo-fs/fs/platform/billy"
)

const (
	testAuthor = "Test User"
	testEmail  = "test@example.com"
)

// newTestRepo initializes a repository at /repo on an empty memory store.
func newTestRepo(t *testing.T) (*Repository, *billyplatform.Platform) {
	t.Helper()

	store := billyplatform.NewMemory()
	repo, err := Init("/repo", WithPlatform(store))
	require.NoError(t, err)
	return repo, store
}

// commitFile writes a file into the worktree, stages it and commits.
func commitFile(t *testing.T, repo *Repository, path, content, message string) string {
	t.Helper()

	require.NoError(t, util.WriteFile(repo.Filesystem(), path, []byte(content), 0o644))
	require.NoError(t, repo.Add(path))

	hash, err := repo.CreateCommit(CommitOptions{
		Author:  testAuthor,
		Email:   testEmail,
		Message: message,
	})
	require.NoError(t, err)
	return hash
}

// emptyCommit commits without changes.
func emptyCommit(t *testing.T, repo *Repository, message string) string {
	t.Helper()

	hash, err := repo.CreateCommit(CommitOptions{
		Author:     testAuthor,
		Email:      testEmail,
		Message:    message,
		AllowEmpty: true,
	})
	require.NoError(t, err)
	return hash
}

func requireCode(t *testing.T, err error, code fserrors.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, fserrors.GetCode(err), "error: %v", err)
}
