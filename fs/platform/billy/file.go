package billy

import (
	"context"
	"io"
	"os"

	"github.com/GenerousLabs/expo-fs/fs/platform"
)

// ReadAsString returns the contents of the file at uri.
func (p *Platform) ReadAsString(ctx context.Context, uri string, opts platform.ReadOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name, err := p.resolve(uri)
	if err != nil {
		return "", err
	}

	data, err := p.readFile(uri, name)
	if err != nil {
		return "", err
	}

	out, err := platform.Encode(data, opts)
	if err != nil {
		return "", platform.WrapError(err, platform.ErrCannotRead, uri, "encode failed")
	}
	return out, nil
}

func (p *Platform) readFile(uri, name string) ([]byte, error) {
	info, err := p.stat(name)
	if err != nil {
		return nil, platform.WrapError(err, platform.ErrCannotRead, uri, "stat failed")
	}
	if info == nil {
		return nil, platform.NewError(platform.ErrNotFound, uri, "file does not exist")
	}
	if info.IsDir() {
		return nil, platform.NewError(platform.ErrIsDirectory, uri, "is a directory")
	}

	f, err := p.bfs.Open(name)
	if err != nil {
		return nil, platform.WrapError(err, platform.ErrCannotRead, uri, "open failed")
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, platform.WrapError(err, platform.ErrCannotRead, uri, "read failed")
	}
	return data, nil
}

// WriteAsString replaces the contents of the file at uri. The parent
// directory must exist.
func (p *Platform) WriteAsString(ctx context.Context, uri string, contents string, opts platform.WriteOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name, err := p.resolve(uri)
	if err != nil {
		return err
	}
	if name == "/" {
		return platform.NewError(platform.ErrIsDirectory, uri, "is a directory")
	}

	data, err := platform.Decode(contents, opts.Encoding)
	if err != nil {
		return platform.WrapError(err, platform.ErrCannotWrite, uri, "decode failed")
	}

	if err := p.checkParent(uri, name); err != nil {
		return err
	}
	info, err := p.stat(name)
	if err != nil {
		return platform.WrapError(err, platform.ErrCannotRead, uri, "stat failed")
	}
	if info != nil && info.IsDir() {
		return platform.NewError(platform.ErrIsDirectory, uri, "is a directory")
	}

	return p.writeFile(uri, name, data)
}

func (p *Platform) writeFile(uri, name string, data []byte) error {
	f, err := p.bfs.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return platform.WrapError(err, platform.ErrCannotWrite, uri, "open failed")
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return platform.WrapError(err, platform.ErrCannotWrite, uri, "write failed")
	}

	// osfs files support Sync; memfs files do not need it.
	if syncer, ok := f.(interface{ Sync() error }); ok {
		if err := syncer.Sync(); err != nil {
			_ = f.Close()
			return platform.WrapError(err, platform.ErrCannotWrite, uri, "sync failed")
		}
	}

	if err := f.Close(); err != nil {
		return platform.WrapError(err, platform.ErrCannotWrite, uri, "close failed")
	}
	return nil
}
