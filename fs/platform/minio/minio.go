package minio

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/GenerousLabs/expo-fs/fs/core"
	"github.com/GenerousLabs/expo-fs/fs/platform"
	"github.com/GenerousLabs/expo-fs/fs/platform/minio/internal/errs"
	"github.com/GenerousLabs/expo-fs/fs/platform/minio/internal/pathutil"
	"github.com/GenerousLabs/expo-fs/fs/platform/minio/internal/types"
)

// Platform is a document store kept in a MinIO/S3 bucket.
//
// Files are objects. Directories are zero-byte marker objects whose key ends
// in a slash; key prefixes without a marker (written by other tools) are
// treated as directories too.
type Platform struct {
	client            *minio.Client
	bucket            string
	prefix            string
	partSize          int64
	renameConcurrency int
	logger            *slog.Logger
}

// New creates a MinIO-backed store.
// Returns error if configuration is invalid or the client cannot be built.
func New(cfg Config) (*Platform, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	client := cfg.Client
	if client == nil {
		var err error
		client, err = minio.New(cfg.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
			Secure: cfg.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create minio client: %w", err)
		}
	}

	partSize := cfg.MultipartThreshold
	if partSize == 0 {
		partSize = minPartSize
	}

	renameConcurrency := cfg.MaxRenameConcurrency
	if renameConcurrency == 0 {
		renameConcurrency = 10
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Platform{
		client:            client,
		bucket:            cfg.Bucket,
		prefix:            pathutil.NormalizePrefix(cfg.Prefix),
		partSize:          partSize,
		renameConcurrency: renameConcurrency,
		logger:            logger,
	}, nil
}

// EnsureBucket creates the bucket when it does not exist.
func (p *Platform) EnsureBucket(ctx context.Context) error {
	exists, err := p.client.BucketExists(ctx, p.bucket)
	if err != nil {
		return errs.Translate(err, platform.ErrUnavailable, p.DocumentDirectory())
	}
	if exists {
		return nil
	}
	if err := p.client.MakeBucket(ctx, p.bucket, minio.MakeBucketOptions{}); err != nil {
		return errs.Translate(err, platform.ErrCannotWrite, p.DocumentDirectory())
	}
	p.logger.Debug("created bucket", "bucket", p.bucket)
	return nil
}

// DocumentDirectory returns "s3://<bucket>/<prefix>/".
func (p *Platform) DocumentDirectory() string {
	if p.prefix == "" {
		return "s3://" + p.bucket + "/"
	}
	return "s3://" + p.bucket + "/" + p.prefix + "/"
}

// Type returns FSTypeRemote.
func (p *Platform) Type() core.FSType {
	return core.FSTypeRemote
}

// resolve maps a URI to a path relative to the prefix.
func (p *Platform) resolve(uri string) (string, error) {
	return platform.Resolve(p.DocumentDirectory(), uri)
}

func (p *Platform) key(rel string) string {
	return pathutil.JoinPath(p.prefix, rel)
}

// lookup returns the entry at rel, or nil when nothing exists there.
func (p *Platform) lookup(ctx context.Context, uri, rel string) (*types.Entry, error) {
	key := p.key(rel)
	if rel == "" {
		return types.NewDirEntry(key, time.Time{}), nil
	}

	info, err := p.client.StatObject(ctx, p.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return types.NewFileEntry(key, info.Size, info.LastModified), nil
	}
	if !errs.IsNotFound(err) {
		return nil, errs.Translate(err, platform.ErrCannotRead, uri)
	}

	info, err = p.client.StatObject(ctx, p.bucket, pathutil.MarkerKey(key), minio.StatObjectOptions{})
	if err == nil {
		return types.NewDirEntry(key, info.LastModified), nil
	}
	if !errs.IsNotFound(err) {
		return nil, errs.Translate(err, platform.ErrCannotRead, uri)
	}

	// Implicit directory: any object below the prefix.
	listCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	for object := range p.client.ListObjects(listCtx, p.bucket, minio.ListObjectsOptions{
		Prefix:    pathutil.DirPrefix(key),
		Recursive: true,
		MaxKeys:   1,
	}) {
		if object.Err != nil {
			return nil, errs.Translate(object.Err, platform.ErrCannotRead, uri)
		}
		return types.NewDirEntry(key, time.Time{}), nil
	}
	return nil, nil
}

// checkParent verifies that the parent of rel is an existing directory.
func (p *Platform) checkParent(ctx context.Context, uri, rel string) error {
	parent, err := p.lookup(ctx, uri, pathutil.Parent(rel))
	if err != nil {
		return err
	}
	if parent == nil {
		return platform.NewError(platform.ErrNotFound, uri, "parent directory does not exist")
	}
	if !parent.IsDir {
		return platform.NewError(platform.ErrNotADirectory, uri, "parent is not a directory")
	}
	return nil
}

// GetInfo describes the entry at uri.
func (p *Platform) GetInfo(ctx context.Context, uri string) (*platform.Info, error) {
	rel, err := p.resolve(uri)
	if err != nil {
		return nil, err
	}

	entry, err := p.lookup(ctx, uri, rel)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return &platform.Info{Exists: false, URI: uri}, nil
	}

	return &platform.Info{
		Exists:           true,
		URI:              uri,
		IsDirectory:      entry.IsDir,
		Size:             entry.Size,
		ModificationTime: entry.ModificationTime(),
	}, nil
}

// ensureMarkers makes sure every proper ancestor of rel exists as a
// directory, creating markers top down.
func (p *Platform) ensureMarkers(ctx context.Context, uri, rel string) error {
	for _, dir := range pathutil.Ancestors(rel) {
		entry, err := p.lookup(ctx, uri, dir)
		if err != nil {
			return err
		}
		if entry == nil {
			if err := p.putMarker(ctx, uri, dir); err != nil {
				return err
			}
			continue
		}
		if !entry.IsDir {
			return platform.NewError(platform.ErrNotADirectory, uri, "%s is not a directory", dir)
		}
	}
	return nil
}

func (p *Platform) putMarker(ctx context.Context, uri, rel string) error {
	return p.putMarkerKey(ctx, uri, p.key(rel))
}

// Compile-time interface check.
var _ platform.Platform = (*Platform)(nil)
