package billy

import (
	"context"
	"os"
	"path"
	"strings"

	"github.com/GenerousLabs/expo-fs/fs/platform"
)

// Delete removes the file or directory tree at uri.
func (p *Platform) Delete(ctx context.Context, uri string, opts platform.DeleteOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name, err := p.resolve(uri)
	if err != nil {
		return err
	}
	if name == "/" {
		return platform.NewError(platform.ErrCannotWrite, uri, "cannot delete the document directory")
	}

	info, err := p.stat(name)
	if err != nil {
		return platform.WrapError(err, platform.ErrCannotRead, uri, "stat failed")
	}
	if info == nil {
		if opts.Idempotent {
			return nil
		}
		return platform.NewError(platform.ErrNotFound, uri, "entry does not exist")
	}

	if err := p.removeAll(ctx, name); err != nil {
		return platform.WrapError(err, platform.ErrCannotWrite, uri, "delete failed")
	}
	return nil
}

// removeAll removes name and any children it contains, depth first.
func (p *Platform) removeAll(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := p.stat(name)
	if err != nil || info == nil {
		return err
	}

	if info.IsDir() {
		entries, err := p.bfs.ReadDir(name)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if err := p.removeAll(ctx, path.Join(name, entry.Name())); err != nil {
				return err
			}
		}
	}

	return p.bfs.Remove(name)
}

// Move renames from to to. An existing file at to is replaced; an existing
// empty directory is replaced by a directory.
func (p *Platform) Move(ctx context.Context, from, to string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	src, dst, srcInfo, err := p.prepareTransfer(from, to)
	if err != nil {
		return err
	}
	if src == dst {
		return nil
	}

	dstInfo, err := p.stat(dst)
	if err != nil {
		return platform.WrapError(err, platform.ErrCannotRead, to, "stat failed")
	}
	if dstInfo != nil {
		switch {
		case srcInfo.IsDir() != dstInfo.IsDir():
			return platform.NewError(platform.ErrAlreadyExists, to, "destination exists with a different type")
		case dstInfo.IsDir():
			entries, err := p.bfs.ReadDir(dst)
			if err != nil {
				return platform.WrapError(err, platform.ErrCannotRead, to, "readdir failed")
			}
			if len(entries) > 0 {
				return platform.NewError(platform.ErrAlreadyExists, to, "destination directory is not empty")
			}
		}
		if err := p.bfs.Remove(dst); err != nil {
			return platform.WrapError(err, platform.ErrCannotWrite, to, "replace failed")
		}
	}

	if err := p.bfs.Rename(src, dst); err != nil {
		return platform.WrapError(err, platform.ErrCannotWrite, from, "move failed")
	}
	return nil
}

// Copy duplicates the file or directory tree at from to to. Existing files
// under to are overwritten.
func (p *Platform) Copy(ctx context.Context, from, to string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	src, dst, srcInfo, err := p.prepareTransfer(from, to)
	if err != nil {
		return err
	}
	if src == dst {
		return nil
	}
	return p.copyTree(ctx, from, to, src, dst, srcInfo.IsDir())
}

func (p *Platform) copyTree(ctx context.Context, fromURI, toURI, src, dst string, isDir bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if !isDir {
		data, err := p.readFile(fromURI, src)
		if err != nil {
			return err
		}
		dstInfo, err := p.stat(dst)
		if err != nil {
			return platform.WrapError(err, platform.ErrCannotRead, toURI, "stat failed")
		}
		if dstInfo != nil && dstInfo.IsDir() {
			return platform.NewError(platform.ErrIsDirectory, toURI, "is a directory")
		}
		return p.writeFile(toURI, dst, data)
	}

	if err := p.bfs.MkdirAll(dst, 0o755); err != nil {
		return platform.WrapError(err, platform.ErrCannotWrite, toURI, "mkdir failed")
	}
	entries, err := p.bfs.ReadDir(src)
	if err != nil {
		return platform.WrapError(err, platform.ErrCannotRead, fromURI, "readdir failed")
	}
	for _, entry := range entries {
		err := p.copyTree(ctx,
			platform.Join(fromURI, entry.Name()), platform.Join(toURI, entry.Name()),
			path.Join(src, entry.Name()), path.Join(dst, entry.Name()),
			entry.IsDir())
		if err != nil {
			return err
		}
	}
	return nil
}

// prepareTransfer resolves both ends of a move or copy and checks that the
// source exists, the destination parent is a directory and the destination
// is not inside the source.
func (p *Platform) prepareTransfer(from, to string) (string, string, os.FileInfo, error) {
	src, err := p.resolve(from)
	if err != nil {
		return "", "", nil, err
	}
	dst, err := p.resolve(to)
	if err != nil {
		return "", "", nil, err
	}

	srcInfo, err := p.stat(src)
	if err != nil {
		return "", "", nil, platform.WrapError(err, platform.ErrCannotRead, from, "stat failed")
	}
	if srcInfo == nil {
		return "", "", nil, platform.NewError(platform.ErrNotFound, from, "source does not exist")
	}
	if src == "/" || dst == "/" {
		return "", "", nil, platform.NewError(platform.ErrCannotWrite, to, "cannot replace the document directory")
	}
	if src != dst && strings.HasPrefix(dst, src+"/") {
		return "", "", nil, platform.NewError(platform.ErrCannotWrite, to, "cannot move a directory into itself")
	}
	if err := p.checkParent(to, dst); err != nil {
		return "", "", nil, err
	}
	return src, dst, srcInfo, nil
}
