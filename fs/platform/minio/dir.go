package minio

import (
	"context"
	"sort"

	"github.com/minio/minio-go/v7"

	"github.com/GenerousLabs/expo-fs/fs/platform"
	"github.com/GenerousLabs/expo-fs/fs/platform/minio/internal/errs"
	"github.com/GenerousLabs/expo-fs/fs/platform/minio/internal/pathutil"
)

// MakeDirectory writes a directory marker for uri.
func (p *Platform) MakeDirectory(ctx context.Context, uri string, opts platform.MakeDirectoryOptions) error {
	rel, err := p.resolve(uri)
	if err != nil {
		return err
	}

	existing, err := p.lookup(ctx, uri, rel)
	if err != nil {
		return err
	}
	if existing != nil {
		if opts.Intermediates && existing.IsDir {
			return nil
		}
		return platform.NewError(platform.ErrAlreadyExists, uri, "entry already exists")
	}

	if opts.Intermediates {
		err = p.ensureMarkers(ctx, uri, rel)
	} else {
		err = p.checkParent(ctx, uri, rel)
	}
	if err != nil {
		return err
	}

	return p.putMarker(ctx, uri, rel)
}

// ReadDirectory lists the immediate children of the directory at uri.
func (p *Platform) ReadDirectory(ctx context.Context, uri string) ([]string, error) {
	rel, err := p.resolve(uri)
	if err != nil {
		return nil, err
	}

	entry, err := p.lookup(ctx, uri, rel)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, platform.NewError(platform.ErrNotFound, uri, "directory does not exist")
	}
	if !entry.IsDir {
		return nil, platform.NewError(platform.ErrNotADirectory, uri, "not a directory")
	}

	prefix := pathutil.DirPrefix(entry.Key)
	seen := make(map[string]struct{})
	names := []string{}

	// List objects with delimiter to get directory structure
	for object := range p.client.ListObjects(ctx, p.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: false,
	}) {
		if object.Err != nil {
			return nil, errs.Translate(object.Err, platform.ErrCannotRead, uri)
		}

		// Skip the directory marker itself
		if object.Key == prefix {
			continue
		}

		name, _ := pathutil.ChildName(prefix, object.Key)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	// MinIO returns keys sorted, but "a/" sorts after "a.txt" as a key
	// while names compare without the slash.
	sort.Strings(names)
	return names, nil
}
