package core

import (
	"context"
	"io/fs"
	"path"
	"strings"

	fserrors "github.com/GenerousLabs/expo-fs/errors"
)

// MkdirAll creates dir and any missing parents, one Mkdir at a time.
// Existing directories along the way are not an error; an existing file is
// ENOTDIR.
func MkdirAll(ctx context.Context, fsys FS, dir string) error {
	dir = path.Clean("/" + dir)
	if dir == "/" {
		return nil
	}

	current := ""
	for _, part := range strings.Split(strings.TrimPrefix(dir, "/"), "/") {
		current += "/" + part

		err := fsys.Mkdir(ctx, current, 0o777)
		if err == nil {
			continue
		}
		if !fserrors.HasCode(err, fserrors.CodeExist) {
			return err
		}

		st, statErr := fsys.Stat(ctx, current)
		if statErr != nil {
			return statErr
		}
		if !st.IsDirectory() {
			return fserrors.New(fserrors.CodeNotDir, current)
		}
	}
	return nil
}

// Exists reports whether p exists. A missing path is (false, nil); other
// failures are returned.
func Exists(ctx context.Context, fsys FS, p string) (bool, error) {
	_, err := fsys.Stat(ctx, p)
	if err == nil {
		return true, nil
	}
	if fserrors.HasCode(err, fserrors.CodeNotExist) {
		return false, nil
	}
	return false, err
}

// CopyFromFS copies all files from a read-only filesystem (typically
// embed.FS or os.DirFS) into dst under dstRoot, preserving the directory
// structure.
//
// Use "." as srcRoot to copy the entire source filesystem.
//
// Example:
//
//	//go:embed templates/*
//	var templatesFS embed.FS
//
//	err := core.CopyFromFS(ctx, templatesFS, "templates", store, "/site")
func CopyFromFS(ctx context.Context, src fs.FS, srcRoot string, dst FS, dstRoot string) error {
	return fs.WalkDir(src, srcRoot, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel := filePath
		if srcRoot != "." && srcRoot != "" {
			rel = strings.TrimPrefix(strings.TrimPrefix(filePath, srcRoot), "/")
		}
		target := path.Join("/", dstRoot, rel)

		if d.IsDir() {
			return MkdirAll(ctx, dst, target)
		}

		data, err := fs.ReadFile(src, filePath)
		if err != nil {
			return err
		}
		return dst.WriteFile(ctx, target, data, WriteOptions{})
	})
}
