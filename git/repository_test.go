package git

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fserrors "github.com/GenerousLabs/expo-fs/errors"
	"github.com/GenerousLabs/expo-fs/fs/core"
	billyplatform "github.com/GenerousLabs/expo-fs/fs/platform/billy"
	"github.com/GenerousLabs/expo-fs/fs/shim"
)

func TestInit_Standard(t *testing.T) {
	repo, store := newTestRepo(t)

	assert.Equal(t, "/repo", repo.Path())
	assert.False(t, repo.IsBare())
	assert.NotNil(t, repo.Underlying())

	fsys := shim.New(store)
	st, err := fsys.Stat(context.Background(), "/repo/.git")
	require.NoError(t, err)
	assert.True(t, st.IsDirectory())

	head, err := fsys.ReadString(context.Background(), "/repo/.git/HEAD", core.ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "ref: refs/heads/master\n", head)
}

func TestInit_Bare(t *testing.T) {
	store := billyplatform.NewMemory()
	repo, err := Init("/notes.git", WithPlatform(store), WithBare())
	require.NoError(t, err)
	assert.True(t, repo.IsBare())

	st, err := shim.New(store).Stat(context.Background(), "/notes.git/refs")
	require.NoError(t, err)
	assert.True(t, st.IsDirectory())
}

func TestInit_AlreadyExists(t *testing.T) {
	store := billyplatform.NewMemory()
	_, err := Init("/repo", WithPlatform(store))
	require.NoError(t, err)

	_, err = Init("/repo", WithPlatform(store))
	requireCode(t, err, fserrors.CodeExist)
}

func TestInit_WithFilesystem(t *testing.T) {
	fs := memfs.New()

	_, err := Init("nested/dir/repo", WithFilesystem(fs))
	require.NoError(t, err)

	info, err := fs.Stat("nested/dir/repo/.git/HEAD")
	require.NoError(t, err)
	assert.False(t, info.IsDir())
}

func TestInit_LocalDisk(t *testing.T) {
	dir := filepath.ToSlash(t.TempDir())

	repo, err := Init(dir)
	require.NoError(t, err)
	emptyCommit(t, repo, "on disk")

	_, err = os.Stat(filepath.Join(dir, ".git", "HEAD"))
	require.NoError(t, err)

	reopened, err := Open(dir)
	require.NoError(t, err)
	commit, err := reopened.GetCommit("HEAD")
	require.NoError(t, err)
	assert.Equal(t, "on disk", commit.Message)
}

func TestOpen_RoundTrip(t *testing.T) {
	repo, store := newTestRepo(t)
	hash := commitFile(t, repo, "README.md", "# notes\n", "Add readme")

	reopened, err := Open("/repo", WithPlatform(store))
	require.NoError(t, err)
	assert.False(t, reopened.IsBare())

	commit, err := reopened.GetCommit("HEAD")
	require.NoError(t, err)
	assert.Equal(t, hash, commit.Hash)
}

func TestOpen_Bare(t *testing.T) {
	store := billyplatform.NewMemory()
	_, err := Init("/bare", WithPlatform(store), WithBare())
	require.NoError(t, err)

	repo, err := Open("/bare", WithPlatform(store))
	require.NoError(t, err)
	assert.True(t, repo.IsBare())
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open("/nothing", WithPlatform(billyplatform.NewMemory()))
	requireCode(t, err, fserrors.CodeNotExist)
}

func TestRepoName(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://example.com/org/notes.git", "notes"},
		{"https://example.com/org/notes/", "notes"},
		{"git@example.com:org/notes.git", "notes"},
		{"git@example.com:notes.git", "notes"},
		{"/srv/git/notes", "notes"},
		{"", "repo"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, repoName(tt.url))
		})
	}
}

func TestClone_UsesRemoteOperations(t *testing.T) {
	source, _ := newTestRepo(t)
	var got CloneOptions

	ops := &mockRemoteOps{
		cloneFunc: func(_ context.Context, fs billy.Filesystem, opts CloneOptions) (*Repository, error) {
			got = opts
			require.NotNil(t, fs)
			return source, nil
		},
	}

	repo, err := Clone(context.Background(), "https://example.com/org/notes.git",
		WithRemoteOperations(ops),
		WithPlatform(billyplatform.NewMemory()),
		WithDepth(1),
		WithSingleBranch(),
	)
	require.NoError(t, err)
	assert.Same(t, source, repo)

	assert.Equal(t, "https://example.com/org/notes.git", got.URL)
	assert.Equal(t, "notes", got.Path)
	assert.Equal(t, 1, got.Depth)
	assert.True(t, got.SingleBranch)
}

func TestClone_Path(t *testing.T) {
	var got CloneOptions
	ops := &mockRemoteOps{
		cloneFunc: func(_ context.Context, _ billy.Filesystem, opts CloneOptions) (*Repository, error) {
			got = opts
			return nil, fserrors.New(fserrors.CodePermission, "denied")
		},
	}

	_, err := Clone(context.Background(), "https://example.com/a.git", WithRemoteOperations(ops), WithPath("/clones/a"))
	requireCode(t, err, fserrors.CodePermission)
	assert.Equal(t, "/clones/a", got.Path)
}

func TestClone_LocalSourceOntoMemoryStore(t *testing.T) {
	src := t.TempDir()
	upstream, err := gogit.PlainInit(src, false)
	require.NoError(t, err)
	wt, err := upstream.Worktree()
	require.NoError(t, err)

	for i, msg := range []string{"one", "two", "three"} {
		name := filepath.Join(src, "note.md")
		require.NoError(t, os.WriteFile(name, []byte(strings.Repeat("line\n", i+1)), 0o644))
		_, err = wt.Add("note.md")
		require.NoError(t, err)
		_, err = wt.Commit(msg, &gogit.CommitOptions{
			Author: &object.Signature{Name: testAuthor, Email: testEmail, When: time.Now()},
		})
		require.NoError(t, err)
	}

	store := billyplatform.NewMemory()
	repo, err := Clone(context.Background(), src, WithPlatform(store), WithPath("/clone"))
	require.NoError(t, err)
	assert.Equal(t, "/clone", repo.Path())

	var messages []string
	for c, err := range repo.WalkCommits("", "HEAD") {
		require.NoError(t, err)
		messages = append(messages, c.Message)
	}
	assert.Equal(t, []string{"three", "two", "one"}, messages)

	reopened, err := Open("/clone", WithPlatform(store))
	require.NoError(t, err)
	head, err := reopened.GetCommit("HEAD")
	require.NoError(t, err)
	assert.Equal(t, "three", head.Message)

	data, err := shim.New(store).ReadString(context.Background(), "/clone/note.md", core.ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "line\nline\nline\n", data)

	remotes, err := reopened.ListRemotes()
	require.NoError(t, err)
	require.Len(t, remotes, 1)
	assert.Equal(t, DefaultRemote, remotes[0].Name)
}
