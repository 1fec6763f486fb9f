package shim

import (
	"context"
	"io/fs"

	fserrors "github.com/GenerousLabs/expo-fs/errors"
	"github.com/GenerousLabs/expo-fs/fs/platform"
)

// Mkdir creates a single directory. mode is ignored.
func (f *FS) Mkdir(ctx context.Context, p string, _ fs.FileMode) error {
	return f.do(ctx, "mkdir", p, func(ctx context.Context) error {
		if err := f.requireParent(ctx, p); err != nil {
			return err
		}
		if f.opts.existenceCheck {
			target, err := f.info(ctx, p)
			if err != nil {
				return err
			}
			if target.Exists {
				return fserrors.New(fserrors.CodeExist, p)
			}
		}
		return f.store.MakeDirectory(ctx, f.URI(p), platform.MakeDirectoryOptions{})
	})
}

// Rmdir removes an empty directory.
//
// With existence checks disabled the store deletes the directory and its
// contents.
func (f *FS) Rmdir(ctx context.Context, p string) error {
	return f.do(ctx, "rmdir", p, func(ctx context.Context) error {
		if f.opts.existenceCheck {
			if err := f.requireDir(ctx, p); err != nil {
				return err
			}
			names, err := f.store.ReadDirectory(ctx, f.URI(p))
			if err != nil {
				return err
			}
			if len(names) > 0 {
				return fserrors.New(fserrors.CodeNotEmpty, p)
			}
		}
		return f.store.Delete(ctx, f.URI(p), platform.DeleteOptions{})
	})
}

// Readdir returns the sorted names of the entries in a directory.
func (f *FS) Readdir(ctx context.Context, p string) ([]string, error) {
	var names []string
	err := f.do(ctx, "readdir", p, func(ctx context.Context) error {
		if f.opts.existenceCheck {
			if err := f.requireDir(ctx, p); err != nil {
				return err
			}
		}
		var err error
		names, err = f.store.ReadDirectory(ctx, f.URI(p))
		return err
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// requireDir fails with ENOENT when p is missing and ENOTDIR when it is a
// file.
func (f *FS) requireDir(ctx context.Context, p string) error {
	target, err := f.info(ctx, p)
	if err != nil {
		return err
	}
	if !target.Exists {
		return fserrors.New(fserrors.CodeNotExist, p)
	}
	if !target.IsDirectory {
		return fserrors.New(fserrors.CodeNotDir, p)
	}
	return nil
}
