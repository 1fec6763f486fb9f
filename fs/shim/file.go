package shim

import (
	"context"
	"encoding/base64"

	fserrors "github.com/GenerousLabs/expo-fs/errors"
	"github.com/GenerousLabs/expo-fs/fs/core"
	"github.com/GenerousLabs/expo-fs/fs/platform"
)

// WriteFile writes data to a file, replacing existing contents. Bytes cross
// to the store base64 encoded.
func (f *FS) WriteFile(ctx context.Context, p string, data []byte, _ core.WriteOptions) error {
	return f.write(ctx, "writeFile", p, base64.StdEncoding.EncodeToString(data), platform.EncodingBase64)
}

// WriteString writes a UTF-8 string to a file.
func (f *FS) WriteString(ctx context.Context, p string, data string, opts core.WriteOptions) error {
	if !isUTF8(opts.Encoding) {
		return f.invalidEncoding("writeFile", p, opts.Encoding)
	}
	return f.write(ctx, "writeFile", p, data, platform.EncodingUTF8)
}

func (f *FS) write(ctx context.Context, op, p, contents string, enc platform.Encoding) error {
	return f.do(ctx, op, p, func(ctx context.Context) error {
		if err := f.requireParent(ctx, p); err != nil {
			return err
		}
		if f.opts.existenceCheck {
			target, err := f.info(ctx, p)
			if err != nil {
				return err
			}
			if target.Exists && target.IsDirectory {
				return fserrors.New(fserrors.CodeIsDir, p)
			}
		}
		return f.store.WriteAsString(ctx, f.URI(p), contents, platform.WriteOptions{Encoding: enc})
	})
}

// ReadFile reads the whole file as bytes.
func (f *FS) ReadFile(ctx context.Context, p string) ([]byte, error) {
	contents, err := f.read(ctx, "readFile", p, platform.EncodingBase64)
	if err != nil {
		return nil, err
	}
	data, err := base64.StdEncoding.DecodeString(contents)
	if err != nil {
		return nil, f.relabel("readFile", p, fserrors.Wrap(err, fserrors.CodeIO, p))
	}
	return data, nil
}

// ReadString reads the whole file as a UTF-8 string.
func (f *FS) ReadString(ctx context.Context, p string, opts core.ReadOptions) (string, error) {
	if !isUTF8(opts.Encoding) {
		return "", f.invalidEncoding("readFile", p, opts.Encoding)
	}
	return f.read(ctx, "readFile", p, platform.EncodingUTF8)
}

func (f *FS) read(ctx context.Context, op, p string, enc platform.Encoding) (string, error) {
	var contents string
	err := f.do(ctx, op, p, func(ctx context.Context) error {
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
		var err error
		contents, err = f.store.ReadAsString(ctx, f.URI(p), platform.ReadOptions{Encoding: enc})
		return err
	})
	if err != nil {
		return "", err
	}
	return contents, nil
}

func isUTF8(enc core.Encoding) bool {
	return enc == core.EncodingNone || enc == core.EncodingUTF8
}

func (f *FS) invalidEncoding(op, p string, enc core.Encoding) error {
	err := fserrors.WithContext(fserrors.New(fserrors.CodeInvalid, p), "encoding", string(enc))
	return f.relabel(op, p, err)
}
