package billy

import (
	"context"
	"errors"
	"os"
	"path"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/GenerousLabs/expo-fs/fs/core"
	"github.com/GenerousLabs/expo-fs/fs/platform"
)

// MemoryDocumentDirectory is the document directory of NewMemory stores.
const MemoryDocumentDirectory = "file:///documents/"

// Platform is a document store backed by a go-billy filesystem.
// It is safe for concurrent use when the underlying filesystem is.
type Platform struct {
	bfs    billy.Filesystem
	docDir string
	fsType core.FSType
}

// Option configures a Platform.
type Option func(*Platform)

// WithDocumentDirectory sets the URI that maps to the billy root.
func WithDocumentDirectory(uri string) Option {
	return func(p *Platform) {
		p.docDir = uri
	}
}

// WithType sets the FSType reported by Type.
func WithType(t core.FSType) Option {
	return func(p *Platform) {
		p.fsType = t
	}
}

// New wraps bfs. The document directory defaults to "file:///".
func New(bfs billy.Filesystem, opts ...Option) *Platform {
	p := &Platform{
		bfs:    bfs,
		docDir: "file:///",
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.docDir != "" && p.docDir[len(p.docDir)-1] != '/' {
		p.docDir += "/"
	}
	return p
}

// NewLocal creates a store on the local disk rooted at root. Its document
// directory is "file://<root>/".
func NewLocal(root string, opts ...Option) *Platform {
	root = filepath.ToSlash(filepath.Clean(root))
	base := []Option{
		WithDocumentDirectory("file://" + path.Clean("/"+root) + "/"),
		WithType(core.FSTypeLocal),
	}
	return New(osfs.New(root), append(base, opts...)...)
}

// NewMemory creates an empty in-memory store whose document directory is
// MemoryDocumentDirectory.
func NewMemory(opts ...Option) *Platform {
	bfs := memfs.New()
	_ = bfs.MkdirAll("/", 0o755)

	base := []Option{
		WithDocumentDirectory(MemoryDocumentDirectory),
		WithType(core.FSTypeMemory),
	}
	return New(bfs, append(base, opts...)...)
}

// Unwrap returns the underlying billy.Filesystem.
func (p *Platform) Unwrap() billy.Filesystem {
	return p.bfs
}

// DocumentDirectory returns the URI of the billy root.
func (p *Platform) DocumentDirectory() string {
	return p.docDir
}

// Type returns the configured FSType.
func (p *Platform) Type() core.FSType {
	return p.fsType
}

// resolve maps a URI to a billy path. The root is "/".
func (p *Platform) resolve(uri string) (string, error) {
	rel, err := platform.Resolve(p.docDir, uri)
	if err != nil {
		return "", err
	}
	return "/" + rel, nil
}

// stat returns nil info and no error when name does not exist, including
// when an ancestor is a file.
func (p *Platform) stat(name string) (os.FileInfo, error) {
	if name == "/" {
		return rootInfo{}, nil
	}
	info, err := p.bfs.Stat(name)
	if os.IsNotExist(err) || errors.Is(err, syscall.ENOTDIR) {
		return nil, nil
	}
	return info, err
}

// GetInfo describes the entry at uri.
func (p *Platform) GetInfo(ctx context.Context, uri string) (*platform.Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name, err := p.resolve(uri)
	if err != nil {
		return nil, err
	}

	info, err := p.stat(name)
	if err != nil {
		return nil, platform.WrapError(err, platform.ErrCannotRead, uri, "stat failed")
	}
	if info == nil {
		return &platform.Info{Exists: false, URI: uri}, nil
	}

	result := &platform.Info{
		Exists:           true,
		URI:              uri,
		IsDirectory:      info.IsDir(),
		ModificationTime: float64(info.ModTime().UnixNano()) / 1e9,
	}
	if !info.IsDir() {
		result.Size = info.Size()
	}
	return result, nil
}

// MakeDirectory creates the directory at uri.
func (p *Platform) MakeDirectory(ctx context.Context, uri string, opts platform.MakeDirectoryOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name, err := p.resolve(uri)
	if err != nil {
		return err
	}

	existing, err := p.stat(name)
	if err != nil {
		return platform.WrapError(err, platform.ErrCannotRead, uri, "stat failed")
	}
	if existing != nil {
		if opts.Intermediates && existing.IsDir() {
			return nil
		}
		return platform.NewError(platform.ErrAlreadyExists, uri, "entry already exists")
	}

	if opts.Intermediates {
		// Every existing ancestor must be a directory.
		for dir := path.Dir(name); dir != "/"; dir = path.Dir(dir) {
			info, err := p.stat(dir)
			if err != nil {
				return platform.WrapError(err, platform.ErrCannotRead, uri, "stat failed")
			}
			if info != nil && !info.IsDir() {
				return platform.NewError(platform.ErrNotADirectory, uri, "%s is not a directory", dir)
			}
		}
	} else if err := p.checkParent(uri, name); err != nil {
		return err
	}

	if err := p.bfs.MkdirAll(name, 0o755); err != nil {
		return platform.WrapError(err, platform.ErrCannotWrite, uri, "mkdir failed")
	}
	return nil
}

// checkParent verifies that the parent of name is an existing directory.
func (p *Platform) checkParent(uri, name string) error {
	parent, err := p.stat(path.Dir(name))
	if err != nil {
		return platform.WrapError(err, platform.ErrCannotRead, uri, "stat failed")
	}
	if parent == nil {
		return platform.NewError(platform.ErrNotFound, uri, "parent directory does not exist")
	}
	if !parent.IsDir() {
		return platform.NewError(platform.ErrNotADirectory, uri, "parent is not a directory")
	}
	return nil
}

// ReadDirectory returns the sorted entry names of the directory at uri.
func (p *Platform) ReadDirectory(ctx context.Context, uri string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name, err := p.resolve(uri)
	if err != nil {
		return nil, err
	}

	info, err := p.stat(name)
	if err != nil {
		return nil, platform.WrapError(err, platform.ErrCannotRead, uri, "stat failed")
	}
	if info == nil {
		return nil, platform.NewError(platform.ErrNotFound, uri, "directory does not exist")
	}
	if !info.IsDir() {
		return nil, platform.NewError(platform.ErrNotADirectory, uri, "not a directory")
	}

	infos, err := p.bfs.ReadDir(name)
	if err != nil {
		if os.IsNotExist(err) && name == "/" {
			return []string{}, nil
		}
		return nil, platform.WrapError(err, platform.ErrCannotRead, uri, "readdir failed")
	}

	names := make([]string, 0, len(infos))
	for _, fi := range infos {
		names = append(names, fi.Name())
	}
	sort.Strings(names)
	return names, nil
}

// rootInfo stands in for the billy root, which some backends cannot stat.
type rootInfo struct{}

func (rootInfo) Name() string       { return "/" }
func (rootInfo) Size() int64        { return 0 }
func (rootInfo) Mode() os.FileMode  { return os.ModeDir | 0o755 }
func (rootInfo) ModTime() time.Time { return time.Unix(0, 0) }
func (rootInfo) IsDir() bool        { return true }
func (rootInfo) Sys() interface{}   { return nil }

// Compile-time interface check.
var _ platform.Platform = (*Platform)(nil)
