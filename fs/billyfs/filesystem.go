package billyfs

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/helper/chroot"

	fserrors "github.com/GenerousLabs/expo-fs/errors"
	"github.com/GenerousLabs/expo-fs/fs/core"
)

// Filesystem implements billy.Filesystem over a core.FS.
//
// Files are read whole on open and written whole on close. Handles open on
// the same path share one buffer, so a reader sees bytes a concurrent writer
// has not flushed yet.
type Filesystem struct {
	fsys   core.FS
	ctx    context.Context
	logger *slog.Logger

	mu    sync.Mutex
	nodes map[string]*node
}

// Option configures a Filesystem.
type Option func(*Filesystem)

// WithContext sets the context passed to every core.FS call. billy has no
// per-call context, so cancelling it fails all later calls.
func WithContext(ctx context.Context) Option {
	return func(f *Filesystem) {
		f.ctx = ctx
	}
}

// WithLogger logs flushes at debug level. A nil logger discards.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Filesystem) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// New creates a Filesystem on top of fsys.
func New(fsys core.FS, opts ...Option) *Filesystem {
	f := &Filesystem{
		fsys:   fsys,
		ctx:    context.Background(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		nodes:  make(map[string]*node),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Unwrap returns the core.FS this filesystem writes through.
func (f *Filesystem) Unwrap() core.FS {
	return f.fsys
}

func clean(name string) string {
	return path.Clean("/" + filepath.ToSlash(name))
}

// Create creates or truncates the named file for reading and writing.
func (f *Filesystem) Create(filename string) (billy.File, error) {
	return f.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o666)
}

// Open opens the named file for reading.
func (f *Filesystem) Open(filename string) (billy.File, error) {
	return f.OpenFile(filename, os.O_RDONLY, 0)
}

// OpenFile opens the named file with the given flags. O_CREATE creates
// missing parent directories.
func (f *Filesystem) OpenFile(filename string, flag int, _ os.FileMode) (billy.File, error) {
	p := clean(filename)

	f.mu.Lock()
	defer f.mu.Unlock()

	n, ok := f.nodes[p]
	if ok {
		if flag&os.O_CREATE != 0 && flag&os.O_EXCL != 0 {
			return nil, pathError("open", filename, fserrors.New(fserrors.CodeExist, p))
		}
		if flag&os.O_TRUNC != 0 && writable(flag) {
			n.truncate(0)
		}
	} else {
		var err error
		if n, err = f.load(p, flag); err != nil {
			return nil, pathError("open", filename, err)
		}
		f.nodes[p] = n
	}

	n.refs++
	return &file{fs: f, node: n, name: filename, flag: flag}, nil
}

// load reads p from the store into a new node, creating it when flag asks
// for that.
func (f *Filesystem) load(p string, flag int) (*node, error) {
	st, err := f.fsys.Stat(f.ctx, p)
	switch {
	case fserrors.HasCode(err, fserrors.CodeNotExist):
		if flag&os.O_CREATE == 0 {
			return nil, err
		}
		if err := core.MkdirAll(f.ctx, f.fsys, path.Dir(p)); err != nil {
			return nil, err
		}
		if err := f.fsys.WriteFile(f.ctx, p, nil, core.WriteOptions{}); err != nil {
			return nil, err
		}
		return &node{path: p}, nil
	case err != nil:
		return nil, err
	}

	if st.IsDirectory() {
		return nil, fserrors.New(fserrors.CodeIsDir, p)
	}
	if flag&os.O_CREATE != 0 && flag&os.O_EXCL != 0 {
		return nil, fserrors.New(fserrors.CodeExist, p)
	}
	if flag&os.O_TRUNC != 0 && writable(flag) {
		if err := f.fsys.WriteFile(f.ctx, p, nil, core.WriteOptions{}); err != nil {
			return nil, err
		}
		return &node{path: p}, nil
	}

	data, err := f.fsys.ReadFile(f.ctx, p)
	if err != nil {
		return nil, err
	}
	return &node{path: p, data: data}, nil
}

// release drops a handle's reference to its node, flushing it when the
// handle could write.
func (f *Filesystem) release(h *file) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := h.node
	n.refs--

	var err error
	if writable(h.flag) && !n.detached {
		err = f.flush(n)
	}
	if n.refs == 0 && f.nodes[n.path] == n {
		delete(f.nodes, n.path)
	}
	return err
}

// flush writes a dirty node to the store. Callers hold f.mu.
func (f *Filesystem) flush(n *node) error {
	data, dirty := n.snapshot()
	if !dirty {
		return nil
	}
	if err := f.fsys.WriteFile(f.ctx, n.path, data, core.WriteOptions{}); err != nil {
		return err
	}
	n.markClean()
	f.logger.Debug("flushed file", "path", n.path, "size", len(data))
	return nil
}

// Stat returns a FileInfo describing the named file. Open files report the
// size of their unflushed contents.
func (f *Filesystem) Stat(filename string) (os.FileInfo, error) {
	p := clean(filename)

	f.mu.Lock()
	defer f.mu.Unlock()

	st, err := f.fsys.Stat(f.ctx, p)
	if err != nil {
		return nil, pathError("stat", filename, err)
	}
	if n, ok := f.nodes[p]; ok {
		st.Size = n.size()
	}
	return st.FileInfo(path.Base(p)), nil
}

// Lstat is Stat; there are no links.
func (f *Filesystem) Lstat(filename string) (os.FileInfo, error) {
	return f.Stat(filename)
}

// Rename moves oldpath to newpath, creating newpath's parents.
func (f *Filesystem) Rename(oldpath, newpath string) error {
	from, to := clean(oldpath), clean(newpath)

	f.mu.Lock()
	defer f.mu.Unlock()

	moved := f.nodesUnder(from)
	for _, n := range moved {
		if err := f.flush(n); err != nil {
			return pathError("rename", oldpath, err)
		}
	}
	if err := core.MkdirAll(f.ctx, f.fsys, path.Dir(to)); err != nil {
		return pathError("rename", newpath, err)
	}
	if err := f.fsys.Rename(f.ctx, from, to); err != nil {
		return pathError("rename", oldpath, err)
	}

	for _, old := range f.nodesUnder(to) {
		old.detached = true
		delete(f.nodes, old.path)
	}
	for _, n := range moved {
		delete(f.nodes, n.path)
	}
	for _, n := range moved {
		n.path = to + strings.TrimPrefix(n.path, from)
		f.nodes[n.path] = n
	}
	return nil
}

// nodesUnder returns the open nodes at p and below it. f.mu must be held.
func (f *Filesystem) nodesUnder(p string) []*node {
	prefix := p + "/"
	if p == "/" {
		prefix = "/"
	}

	var out []*node
	for key, n := range f.nodes {
		if key == p || strings.HasPrefix(key, prefix) {
			out = append(out, n)
		}
	}
	return out
}

// Remove removes the named file or empty directory.
func (f *Filesystem) Remove(filename string) error {
	p := clean(filename)

	f.mu.Lock()
	defer f.mu.Unlock()

	st, err := f.fsys.Stat(f.ctx, p)
	if err != nil {
		return pathError("remove", filename, err)
	}
	if st.IsDirectory() {
		err = f.fsys.Rmdir(f.ctx, p)
	} else {
		err = f.fsys.Unlink(f.ctx, p)
	}
	if err != nil {
		return pathError("remove", filename, err)
	}

	if n, ok := f.nodes[p]; ok {
		n.detached = true
		delete(f.nodes, p)
	}
	return nil
}

// Join joins path elements with slashes.
func (f *Filesystem) Join(elem ...string) string {
	return path.Join(elem...)
}

// TempFile creates a new file in dir whose name begins with prefix.
func (f *Filesystem) TempFile(dir, prefix string) (billy.File, error) {
	for i := 0; i < 100; i++ {
		name := path.Join(dir, prefix+randomSuffix())
		fh, err := f.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		return fh, err
	}
	return nil, pathError("tempfile", path.Join(dir, prefix), fserrors.New(fserrors.CodeExist, dir))
}

func randomSuffix() string {
	var b [6]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

// ReadDir returns the entries of a directory sorted by name.
func (f *Filesystem) ReadDir(dirname string) ([]os.FileInfo, error) {
	p := clean(dirname)

	f.mu.Lock()
	defer f.mu.Unlock()

	names, err := f.fsys.Readdir(f.ctx, p)
	if err != nil {
		return nil, pathError("readdir", dirname, err)
	}

	infos := make([]os.FileInfo, 0, len(names))
	for _, name := range names {
		child := path.Join(p, name)
		st, err := f.fsys.Stat(f.ctx, child)
		if fserrors.HasCode(err, fserrors.CodeNotExist) {
			continue
		}
		if err != nil {
			return nil, pathError("readdir", dirname, err)
		}
		if n, ok := f.nodes[child]; ok {
			st.Size = n.size()
		}
		infos = append(infos, st.FileInfo(name))
	}
	return infos, nil
}

// MkdirAll creates a directory and any missing parents.
func (f *Filesystem) MkdirAll(filename string, _ os.FileMode) error {
	if err := core.MkdirAll(f.ctx, f.fsys, clean(filename)); err != nil {
		return pathError("mkdir", filename, err)
	}
	return nil
}

// Symlink is not supported.
func (f *Filesystem) Symlink(_, link string) error {
	return pathError("symlink", link, billy.ErrNotSupported)
}

// Readlink is not supported.
func (f *Filesystem) Readlink(link string) (string, error) {
	return "", pathError("readlink", link, billy.ErrNotSupported)
}

// Chroot returns a filesystem rooted at p.
func (f *Filesystem) Chroot(p string) (billy.Filesystem, error) {
	return chroot.New(f, p), nil
}

// Root returns "/".
func (f *Filesystem) Root() string {
	return "/"
}

// Capabilities reports read, write, seek and truncate support. Locking is
// not supported.
func (f *Filesystem) Capabilities() billy.Capability {
	return billy.ReadCapability |
		billy.WriteCapability |
		billy.ReadAndWriteCapability |
		billy.SeekCapability |
		billy.TruncateCapability
}

func writable(flag int) bool {
	return flag&(os.O_WRONLY|os.O_RDWR) != 0
}

// Compile-time interface checks.
var (
	_ billy.Filesystem = (*Filesystem)(nil)
	_ billy.Capable    = (*Filesystem)(nil)
)
