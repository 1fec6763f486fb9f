package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GenerousLabs/expo-fs/fs/core"
)

// setup writes a config for a local store in a temp dir and returns the
// config path and the store root.
func setup(t *testing.T) (string, string) {
	t.Helper()

	dir := t.TempDir()
	root := filepath.Join(dir, "store")
	require.NoError(t, os.MkdirAll(root, 0o755))

	cfg := "store:\n  type: local\n  root: " + root + "\nauthor:\n  name: Ada\n  email: ada@example.com\n"
	path := filepath.Join(dir, "docgit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))
	return path, root
}

func docgit(t *testing.T, cfg string, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), append([]string{"--config", cfg}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Usage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, exitUsage, run(context.Background(), nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "commands:")
	assert.Contains(t, stderr.String(), "branches")

	stderr.Reset()
	assert.Equal(t, exitUsage, run(context.Background(), []string{"frobnicate"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), `unknown command "frobnicate"`)
}

func TestRun_RepositoryWorkflow(t *testing.T) {
	cfg, root := setup(t)

	code, out, errOut := docgit(t, cfg, "init", "/notes")
	require.Equal(t, exitOK, code, errOut)
	assert.Contains(t, out, "initialized repository at /notes")

	require.NoError(t, os.WriteFile(filepath.Join(root, "notes", "todo.md"), []byte("- milk\n"), 0o644))

	code, out, errOut = docgit(t, cfg, "commit", "-m", "Add todo", "/notes", "todo.md")
	require.Equal(t, exitOK, code, errOut)
	assert.Len(t, strings.TrimSpace(out), 40)

	code, _, errOut = docgit(t, cfg, "commit", "-m", "Second", "--allow-empty", "/notes")
	require.Equal(t, exitOK, code, errOut)

	code, out, errOut = docgit(t, cfg, "log", "/notes")
	require.Equal(t, exitOK, code, errOut)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], " Second"))
	assert.True(t, strings.HasSuffix(lines[1], " Add todo"))

	code, out, _ = docgit(t, cfg, "log", "-n", "1", "/notes")
	require.Equal(t, exitOK, code)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 1)

	code, out, errOut = docgit(t, cfg, "branches", "/notes")
	require.Equal(t, exitOK, code, errOut)
	assert.True(t, strings.HasPrefix(out, "* master "))

	code, out, errOut = docgit(t, cfg, "cat", "/notes/todo.md")
	require.Equal(t, exitOK, code, errOut)
	assert.Equal(t, "- milk\n", out)
}

func TestRun_Ls(t *testing.T) {
	cfg, root := setup(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.md"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.txt"), []byte("b"), 0o644))

	code, out, errOut := docgit(t, cfg, "ls")
	require.Equal(t, exitOK, code, errOut)
	assert.Equal(t, "a.md\nb.txt\ndocs/\n", out)

	code, out, errOut = docgit(t, cfg, "ls", "--match", "*.md", "/")
	require.Equal(t, exitOK, code, errOut)
	assert.Equal(t, "a.md\n", out)

	code, _, errOut = docgit(t, cfg, "ls", "--match", "[", "/")
	assert.Equal(t, exitError, code)
	assert.Contains(t, errOut, "EINVAL")
}

func TestRun_Stat(t *testing.T) {
	cfg, root := setup(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.md"), []byte("abc"), 0o644))

	code, out, errOut := docgit(t, cfg, "stat", "/a.md")
	require.Equal(t, exitOK, code, errOut)

	var st core.Stats
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.Equal(t, core.TypeFile, st.Type)
	assert.Equal(t, int64(3), st.Size)
	assert.Equal(t, uint32(0o666), st.Mode)
}

func TestRun_ErrorsAsJSON(t *testing.T) {
	cfg, _ := setup(t)

	code, _, errOut := docgit(t, cfg, "--json", "cat", "/missing.txt")
	require.Equal(t, exitError, code)

	var resp struct {
		Code    string                 `json:"code"`
		Context map[string]interface{} `json:"context"`
	}
	require.NoError(t, json.Unmarshal([]byte(errOut), &resp))
	assert.Equal(t, "ENOENT", resp.Code)
	assert.Equal(t, "/missing.txt", resp.Context["path"])
}

func TestRun_BadArguments(t *testing.T) {
	cfg, _ := setup(t)

	code, _, errOut := docgit(t, cfg, "commit", "/notes")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, errOut, "-m is required")

	code, _, _ = docgit(t, cfg, "cat")
	assert.Equal(t, exitUsage, code)
}

func TestRun_Import(t *testing.T) {
	cfg, root := setup(t)

	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "guides"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "guides", "start.md"), []byte("# start\n"), 0o644))

	code, _, errOut := docgit(t, cfg, "import", src, "/site")
	require.Equal(t, exitOK, code, errOut)

	data, err := os.ReadFile(filepath.Join(root, "site", "guides", "start.md"))
	require.NoError(t, err)
	assert.Equal(t, "# start\n", string(data))

	code, _, errOut = docgit(t, cfg, "import", src, "/site")
	assert.Equal(t, exitError, code)
	assert.Contains(t, errOut, "EEXIST")

	code, _, errOut = docgit(t, cfg, "import", "--force", src, "/site")
	assert.Equal(t, exitOK, code, errOut)
}
