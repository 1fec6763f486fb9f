package minio

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"

	"github.com/minio/minio-go/v7"

	"github.com/GenerousLabs/expo-fs/fs/platform"
	"github.com/GenerousLabs/expo-fs/fs/platform/minio/internal/errs"
	"github.com/GenerousLabs/expo-fs/fs/platform/minio/internal/types"
)

// ReadAsString downloads the object at uri. Ranged base64 reads are served
// with an HTTP range request.
func (p *Platform) ReadAsString(ctx context.Context, uri string, opts platform.ReadOptions) (string, error) {
	rel, err := p.resolve(uri)
	if err != nil {
		return "", err
	}

	entry, err := p.fileEntry(ctx, uri, rel)
	if err != nil {
		return "", err
	}

	ranged := opts.Encoding == platform.EncodingBase64 && (opts.Position > 0 || opts.Length > 0)
	if !ranged {
		data, err := p.getObject(ctx, uri, entry.Key, minio.GetObjectOptions{})
		if err != nil {
			return "", err
		}
		out, err := platform.Encode(data, opts)
		if err != nil {
			return "", platform.WrapError(err, platform.ErrCannotRead, uri, "encode failed")
		}
		return out, nil
	}

	start := opts.Position
	if start < 0 {
		start = 0
	}
	end := entry.Size
	if opts.Length > 0 && opts.Length < end-start {
		end = start + opts.Length
	}
	if start >= end {
		return "", nil
	}

	getOpts := minio.GetObjectOptions{}
	if err := getOpts.SetRange(start, end-1); err != nil {
		return "", platform.WrapError(err, platform.ErrCannotRead, uri, "invalid range")
	}
	data, err := p.getObject(ctx, uri, entry.Key, getOpts)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// fileEntry looks up rel and requires it to be a file.
func (p *Platform) fileEntry(ctx context.Context, uri, rel string) (*types.Entry, error) {
	entry, err := p.lookup(ctx, uri, rel)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, platform.NewError(platform.ErrNotFound, uri, "file does not exist")
	}
	if entry.IsDir {
		return nil, platform.NewError(platform.ErrIsDirectory, uri, "is a directory")
	}
	return entry, nil
}

func (p *Platform) getObject(ctx context.Context, uri, key string, opts minio.GetObjectOptions) ([]byte, error) {
	obj, err := p.client.GetObject(ctx, p.bucket, key, opts)
	if err != nil {
		return nil, errs.Translate(err, platform.ErrCannotRead, uri)
	}
	defer func() {
		_ = obj.Close()
	}()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, errs.Translate(err, platform.ErrCannotRead, uri)
	}
	return data, nil
}

// WriteAsString uploads contents to the object at uri.
func (p *Platform) WriteAsString(ctx context.Context, uri string, contents string, opts platform.WriteOptions) error {
	rel, err := p.resolve(uri)
	if err != nil {
		return err
	}
	if rel == "" {
		return platform.NewError(platform.ErrIsDirectory, uri, "is a directory")
	}

	data, err := platform.Decode(contents, opts.Encoding)
	if err != nil {
		return platform.WrapError(err, platform.ErrCannotWrite, uri, "decode failed")
	}

	if err := p.checkParent(ctx, uri, rel); err != nil {
		return err
	}
	existing, err := p.lookup(ctx, uri, rel)
	if err != nil {
		return err
	}
	if existing != nil && existing.IsDir {
		return platform.NewError(platform.ErrIsDirectory, uri, "is a directory")
	}

	return p.putObject(ctx, uri, p.key(rel), data)
}

func (p *Platform) putObject(ctx context.Context, uri, key string, data []byte) error {
	_, err := p.client.PutObject(
		ctx,
		p.bucket,
		key,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{
			ContentType: "application/octet-stream",
			PartSize:    uint64(p.partSize),
		},
	)
	return errs.Translate(err, platform.ErrCannotWrite, uri)
}
