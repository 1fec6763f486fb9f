package git

import (
	"testing"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fserrors "github.com/GenerousLabs/expo-fs/errors"
)

func branchNames(t *testing.T, repo *Repository) map[string]bool {
	t.Helper()

	branches, err := repo.ListBranches()
	require.NoError(t, err)

	names := make(map[string]bool, len(branches))
	for _, b := range branches {
		names[b.Name] = b.IsRemote
	}
	return names
}

func TestCreateBranch(t *testing.T) {
	repo, _ := newTestRepo(t)
	hash := emptyCommit(t, repo, "one")

	require.NoError(t, repo.CreateBranch("feature", "HEAD"))
	assert.Equal(t, map[string]bool{"master": false, "feature": false}, branchNames(t, repo))

	commit, err := repo.GetCommit("feature")
	require.NoError(t, err)
	assert.Equal(t, hash, commit.Hash)

	current, err := repo.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "master", current)
}

func TestCreateBranch_Errors(t *testing.T) {
	repo, _ := newTestRepo(t)
	emptyCommit(t, repo, "one")
	require.NoError(t, repo.CreateBranch("feature", "HEAD"))

	requireCode(t, repo.CreateBranch("feature", "HEAD"), fserrors.CodeExist)
	requireCode(t, repo.CreateBranch("other", "missing"), fserrors.CodeNotExist)
	requireCode(t, repo.CreateBranch("", "HEAD"), fserrors.CodeInvalid)
}

func TestCreateBranchFromRemote(t *testing.T) {
	repo, _ := newTestRepo(t)
	hash := emptyCommit(t, repo, "one")

	remoteRef := plumbing.NewHashReference(plumbing.NewRemoteReferenceName("origin", "main"), plumbing.NewHash(hash))
	require.NoError(t, repo.Underlying().Storer.SetReference(remoteRef))

	require.NoError(t, repo.CreateBranchFromRemote("main", "origin/main"))

	names := branchNames(t, repo)
	assert.False(t, names["main"])
	assert.True(t, names["origin/main"])

	cfg, err := repo.Underlying().Config()
	require.NoError(t, err)
	require.Contains(t, cfg.Branches, "main")
	assert.Equal(t, "origin", cfg.Branches["main"].Remote)
	assert.Equal(t, plumbing.NewBranchReferenceName("main"), cfg.Branches["main"].Merge)
}

func TestCreateBranchFromRemote_Errors(t *testing.T) {
	repo, _ := newTestRepo(t)
	emptyCommit(t, repo, "one")

	requireCode(t, repo.CreateBranchFromRemote("main", "main"), fserrors.CodeInvalid)
	requireCode(t, repo.CreateBranchFromRemote("main", "origin/main"), fserrors.CodeNotExist)
}

func TestCheckoutBranch(t *testing.T) {
	repo, _ := newTestRepo(t)
	commitFile(t, repo, "a.txt", "a", "one")
	require.NoError(t, repo.CreateBranch("feature", "HEAD"))

	require.NoError(t, repo.CheckoutBranch("feature"))
	commitFile(t, repo, "b.txt", "b", "two")

	current, err := repo.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "feature", current)

	require.NoError(t, repo.CheckoutBranch("master"))
	_, err = repo.Filesystem().Stat("b.txt")
	assert.Error(t, err)

	requireCode(t, repo.CheckoutBranch(""), fserrors.CodeInvalid)
}

func TestCurrentBranch_Detached(t *testing.T) {
	repo, _ := newTestRepo(t)
	hash := emptyCommit(t, repo, "one")

	head := plumbing.NewHashReference(plumbing.HEAD, plumbing.NewHash(hash))
	require.NoError(t, repo.Underlying().Storer.SetReference(head))

	_, err := repo.CurrentBranch()
	requireCode(t, err, fserrors.CodeInvalid)
}

func TestDeleteBranch(t *testing.T) {
	repo, _ := newTestRepo(t)
	emptyCommit(t, repo, "one")
	require.NoError(t, repo.CreateBranch("merged", "HEAD"))

	require.NoError(t, repo.DeleteBranch("merged", false))
	assert.NotContains(t, branchNames(t, repo), "merged")
}

func TestDeleteBranch_Unmerged(t *testing.T) {
	repo, _ := newTestRepo(t)
	emptyCommit(t, repo, "one")
	require.NoError(t, repo.CreateBranch("topic", "HEAD"))

	require.NoError(t, repo.CheckoutBranch("topic"))
	emptyCommit(t, repo, "topic work")
	require.NoError(t, repo.CheckoutBranch("master"))

	requireCode(t, repo.DeleteBranch("topic", false), fserrors.CodeConflict)
	assert.Contains(t, branchNames(t, repo), "topic")

	require.NoError(t, repo.DeleteBranch("topic", true))
	assert.NotContains(t, branchNames(t, repo), "topic")
}

func TestDeleteBranch_Errors(t *testing.T) {
	repo, _ := newTestRepo(t)
	emptyCommit(t, repo, "one")

	requireCode(t, repo.DeleteBranch("master", true), fserrors.CodeConflict)
	requireCode(t, repo.DeleteBranch("missing", false), fserrors.CodeNotExist)
	requireCode(t, repo.DeleteBranch("", false), fserrors.CodeInvalid)
}
