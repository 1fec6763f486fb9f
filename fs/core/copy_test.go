package core_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fserrors "github.com/GenerousLabs/expo-fs/errors"
	"github.com/GenerousLabs/expo-fs/fs/core"
	billyplatform "github.com/GenerousLabs/expo-fs/fs/platform/billy"
	"github.com/GenerousLabs/expo-fs/fs/shim"
)

func newMemoryFS() core.FS {
	return shim.New(billyplatform.NewMemory())
}

func TestMkdirAll(t *testing.T) {
	ctx := context.Background()
	fsys := newMemoryFS()

	require.NoError(t, core.MkdirAll(ctx, fsys, "/repo/.git/refs/heads"))
	require.NoError(t, core.MkdirAll(ctx, fsys, "repo/.git/objects"))
	require.NoError(t, core.MkdirAll(ctx, fsys, "/"))

	for _, dir := range []string{"/repo", "/repo/.git", "/repo/.git/refs/heads", "/repo/.git/objects"} {
		st, err := fsys.Stat(ctx, dir)
		require.NoError(t, err, dir)
		assert.True(t, st.IsDirectory(), dir)
	}
}

func TestMkdirAll_ThroughFile(t *testing.T) {
	ctx := context.Background()
	fsys := newMemoryFS()
	require.NoError(t, fsys.WriteString(ctx, "/file", "x", core.WriteOptions{}))

	err := core.MkdirAll(ctx, fsys, "/file/sub")
	require.Error(t, err)
	assert.Equal(t, fserrors.CodeNotDir, fserrors.GetCode(err))
}

func TestExists(t *testing.T) {
	ctx := context.Background()
	fsys := newMemoryFS()
	require.NoError(t, fsys.WriteString(ctx, "/file", "x", core.WriteOptions{}))

	ok, err := core.Exists(ctx, fsys, "/file")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = core.Exists(ctx, fsys, "/missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCopyFromFS(t *testing.T) {
	ctx := context.Background()
	src := fstest.MapFS{
		"templates/README.md":      {Data: []byte("# repo\n")},
		"templates/hooks/pre-push": {Data: []byte("#!/bin/sh\n")},
		"templates/info/exclude":   {Data: []byte("*.tmp\n")},
		"other/ignored.txt":        {Data: []byte("skip")},
	}
	fsys := newMemoryFS()

	require.NoError(t, core.CopyFromFS(ctx, src, "templates", fsys, "/site"))

	data, err := fsys.ReadFile(ctx, "/site/hooks/pre-push")
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\n", string(data))

	names, err := fsys.Readdir(ctx, "/site")
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md", "hooks", "info"}, names)

	ok, err := core.Exists(ctx, fsys, "/site/other")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCopyFromFS_WholeSource(t *testing.T) {
	ctx := context.Background()
	src := fstest.MapFS{
		"a.txt":   {Data: []byte("a")},
		"b/c.txt": {Data: []byte("c")},
	}
	fsys := newMemoryFS()

	require.NoError(t, core.CopyFromFS(ctx, src, ".", fsys, "/"))

	names, err := fsys.Readdir(ctx, "/")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b"}, names)
}
