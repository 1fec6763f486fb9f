package shim

import (
	"context"
	"path"
	"time"

	"golang.org/x/sync/semaphore"

	fserrors "github.com/GenerousLabs/expo-fs/errors"
	"github.com/GenerousLabs/expo-fs/fs/core"
	"github.com/GenerousLabs/expo-fs/fs/platform"
)

// FS implements core.FS on top of a document store.
//
// Only one store operation is in flight at a time; callers queue on a gate
// that honours their context. FS is safe for concurrent use.
type FS struct {
	store platform.Platform
	opts  options
	gate  *semaphore.Weighted
}

// New creates an FS backed by store.
func New(store platform.Platform, opts ...Option) *FS {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &FS{
		store: store,
		opts:  o,
		gate:  semaphore.NewWeighted(1),
	}
}

// Platform returns the underlying store.
func (f *FS) Platform() platform.Platform {
	return f.store
}

// Type returns the type of the underlying store.
func (f *FS) Type() core.FSType {
	return f.store.Type()
}

// URI returns the store URI for a filesystem path. Paths are cleaned and
// treated as absolute; "/" maps to the document directory. Without a
// document directory the URI is "file://" followed by the path.
func (f *FS) URI(p string) string {
	clean := cleanPath(p)
	dir := f.store.DocumentDirectory()
	if dir == "" {
		return "file://" + clean
	}
	if clean == "/" {
		return dir
	}
	return platform.Join(dir, clean)
}

func cleanPath(p string) string {
	return path.Clean("/" + p)
}

// dirname returns everything before the last slash of the cleaned path.
func dirname(p string) string {
	return path.Dir(cleanPath(p))
}

// do runs fn under the gate and relabels its error. p names the path the
// error message reports.
func (f *FS) do(ctx context.Context, op, p string, fn func(ctx context.Context) error) error {
	if f.opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.opts.timeout)
		defer cancel()
	}

	start := time.Now()
	f.opts.logger.Debug("fs call", "op", op, "path", p, "uri", f.URI(p))

	err := f.gate.Acquire(ctx, 1)
	if err == nil {
		err = fn(ctx)
		f.gate.Release(1)
	}

	if err != nil {
		err = f.relabel(op, p, err)
		f.opts.logger.Debug("fs error", "op", op, "path", p,
			"code", fserrors.GetCode(err), "duration", time.Since(start), "error", err)
		return err
	}

	f.opts.logger.Debug("fs done", "op", op, "path", p, "duration", time.Since(start))
	return nil
}

// info describes p. Missing entries are reported with Exists false.
func (f *FS) info(ctx context.Context, p string) (*platform.Info, error) {
	return f.store.GetInfo(ctx, f.URI(p))
}

// requireParent fails with ENOENT when the parent of p is missing and
// ENOTDIR when it is a file. It is a no-op when parent checks are disabled.
func (f *FS) requireParent(ctx context.Context, p string) error {
	if !f.opts.parentCheck {
		return nil
	}
	parent, err := f.info(ctx, dirname(p))
	if err != nil {
		return err
	}
	if !parent.Exists {
		return fserrors.New(fserrors.CodeNotExist, p)
	}
	if !parent.IsDirectory {
		return fserrors.New(fserrors.CodeNotDir, p)
	}
	return nil
}

// Compile-time interface check.
var _ core.FS = (*FS)(nil)
