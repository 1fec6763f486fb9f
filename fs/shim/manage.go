package shim

import (
	"context"
	"strings"

	fserrors "github.com/GenerousLabs/expo-fs/errors"
	"github.com/GenerousLabs/expo-fs/fs/core"
	"github.com/GenerousLabs/expo-fs/fs/platform"
)

// Unlink removes a file.
func (f *FS) Unlink(ctx context.Context, p string) error {
	return f.do(ctx, "unlink", p, func(ctx context.Context) error {
		if f.opts.existenceCheck {
			target, err := f.info(ctx, p)
			if err != nil {
				return err
			}
			if !target.Exists {
				return fserrors.New(fserrors.CodeNotExist, p)
			}
			if target.IsDirectory {
				return fserrors.New(fserrors.CodeIsDir, p)
			}
		}
		return f.store.Delete(ctx, f.URI(p), platform.DeleteOptions{})
	})
}

// Rename moves oldPath to newPath. An existing file at newPath is replaced,
// as is an empty directory when oldPath is a directory.
func (f *FS) Rename(ctx context.Context, oldPath, newPath string) error {
	from, to := cleanPath(oldPath), cleanPath(newPath)
	if strings.HasPrefix(to, from+"/") {
		err := fserrors.WithContext(fserrors.New(fserrors.CodeInvalid, newPath), "from", oldPath)
		return f.relabel("rename", newPath, err)
	}

	return f.do(ctx, "rename", oldPath, func(ctx context.Context) error {
		var src *platform.Info
		if f.opts.existenceCheck || from == to {
			var err error
			if src, err = f.info(ctx, from); err != nil {
				return err
			}
			if !src.Exists {
				return fserrors.New(fserrors.CodeNotExist, oldPath)
			}
		}
		if from == to {
			return nil
		}

		if err := f.requireParent(ctx, newPath); err != nil {
			return err
		}

		if f.opts.existenceCheck {
			if err := f.checkReplace(ctx, src, newPath); err != nil {
				return err
			}
		}
		return f.store.Move(ctx, f.URI(from), f.URI(to))
	})
}

// checkReplace validates that src may replace whatever exists at p.
func (f *FS) checkReplace(ctx context.Context, src *platform.Info, p string) error {
	dst, err := f.info(ctx, p)
	if err != nil {
		return err
	}
	if !dst.Exists {
		return nil
	}

	switch {
	case !src.IsDirectory && dst.IsDirectory:
		return fserrors.New(fserrors.CodeIsDir, p)
	case src.IsDirectory && !dst.IsDirectory:
		return fserrors.New(fserrors.CodeNotDir, p)
	case dst.IsDirectory:
		names, err := f.store.ReadDirectory(ctx, f.URI(p))
		if err != nil {
			return err
		}
		if len(names) > 0 {
			return fserrors.New(fserrors.CodeNotEmpty, p)
		}
	}
	return nil
}

// Stat returns metadata for p.
func (f *FS) Stat(ctx context.Context, p string) (*core.Stats, error) {
	return f.stat(ctx, "stat", p)
}

// Lstat is identical to Stat; stores have no links.
func (f *FS) Lstat(ctx context.Context, p string) (*core.Stats, error) {
	return f.stat(ctx, "lstat", p)
}

func (f *FS) stat(ctx context.Context, op, p string) (*core.Stats, error) {
	var stats *core.Stats
	err := f.do(ctx, op, p, func(ctx context.Context) error {
		info, err := f.info(ctx, p)
		if err != nil {
			return err
		}
		if !info.Exists {
			return fserrors.New(fserrors.CodeNotExist, p)
		}
		stats = f.toStats(info)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (f *FS) toStats(info *platform.Info) *core.Stats {
	stats := &core.Stats{
		Type:    core.TypeFile,
		Mode:    f.opts.fileMode,
		Size:    info.Size,
		Ino:     1,
		UID:     1,
		GID:     1,
		Dev:     1,
		MtimeMs: info.ModificationTime * 1000,
		CtimeMs: info.ModificationTime * 1000,
	}
	if info.IsDirectory {
		stats.Type = core.TypeDir
		stats.Mode = f.opts.dirMode
	}
	return stats
}

// Symlink always fails with ENOTSUP.
func (f *FS) Symlink(_ context.Context, target, p string) error {
	return f.unsupported("symlink", p, target)
}

// Readlink always fails with ENOTSUP.
func (f *FS) Readlink(_ context.Context, p string) (string, error) {
	return "", f.unsupported("readlink", p, "")
}

func (f *FS) unsupported(op, p, target string) error {
	f.opts.logger.Debug("fs call", "op", op, "path", p, "target", target)

	err := fserrors.Wrap(core.ErrUnsupported, fserrors.CodeNotSupported, "symlinks are not supported")
	return fserrors.WithContextMap(err, map[string]interface{}{
		"op":   op,
		"path": p,
		"uri":  f.URI(p),
	})
}
