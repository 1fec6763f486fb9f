package core_test

import (
	"io/fs"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GenerousLabs/expo-fs/fs/core"
)

func TestStats_File(t *testing.T) {
	st := &core.Stats{
		Type:    core.TypeFile,
		Mode:    0o666,
		Size:    12,
		Ino:     1,
		UID:     1,
		GID:     1,
		Dev:     1,
		MtimeMs: 1700000000500,
		CtimeMs: 1700000000500,
	}

	assert.True(t, st.IsFile())
	assert.False(t, st.IsDirectory())
	assert.False(t, st.IsSymbolicLink())
	assert.Equal(t, fs.FileMode(0o666), st.FileMode())
	assert.Equal(t, time.Unix(1700000000, 500*int64(time.Millisecond)), st.ModTime())

	info := st.FileInfo("HEAD")
	assert.Equal(t, "HEAD", info.Name())
	assert.Equal(t, int64(12), info.Size())
	assert.False(t, info.IsDir())
	assert.True(t, info.Mode().IsRegular())

	sys, ok := info.Sys().(*core.Stats)
	require.True(t, ok)
	assert.Equal(t, *st, *sys)
}

func TestStats_Directory(t *testing.T) {
	st := &core.Stats{Type: core.TypeDir, Mode: 0o666}

	assert.True(t, st.IsDirectory())
	assert.False(t, st.IsFile())
	assert.Equal(t, fs.ModeDir|0o666, st.FileMode())

	info := st.FileInfo("objects")
	assert.True(t, info.IsDir())
	assert.True(t, info.Mode().IsDir())
}

func TestStats_FileInfoIsSnapshot(t *testing.T) {
	st := &core.Stats{Type: core.TypeFile, Size: 1}
	info := st.FileInfo("a")

	st.Size = 99
	assert.Equal(t, int64(1), info.Size())
}
