package minio

import (
	"context"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"golang.org/x/sync/errgroup"

	"github.com/GenerousLabs/expo-fs/fs/platform"
	"github.com/GenerousLabs/expo-fs/fs/platform/minio/internal/errs"
	"github.com/GenerousLabs/expo-fs/fs/platform/minio/internal/pathutil"
	"github.com/GenerousLabs/expo-fs/fs/platform/minio/internal/types"
)

// Delete removes the object or directory tree at uri.
func (p *Platform) Delete(ctx context.Context, uri string, opts platform.DeleteOptions) error {
	rel, err := p.resolve(uri)
	if err != nil {
		return err
	}
	if rel == "" {
		return platform.NewError(platform.ErrCannotWrite, uri, "cannot delete the document directory")
	}

	entry, err := p.lookup(ctx, uri, rel)
	if err != nil {
		return err
	}
	if entry == nil {
		if opts.Idempotent {
			return nil
		}
		return platform.NewError(platform.ErrNotFound, uri, "entry does not exist")
	}

	if !entry.IsDir {
		err := p.client.RemoveObject(ctx, p.bucket, entry.Key, minio.RemoveObjectOptions{})
		return errs.Translate(err, platform.ErrCannotWrite, uri)
	}
	return p.removePrefix(ctx, uri, pathutil.DirPrefix(entry.Key))
}

// removePrefix deletes every object under prefix with the batch API.
func (p *Platform) removePrefix(ctx context.Context, uri, prefix string) error {
	objectsCh := make(chan minio.ObjectInfo, 100)
	listDone := make(chan struct{})

	var listErr error
	go func() {
		defer close(listDone)
		defer close(objectsCh)
		listErr = sendObjects(ctx, p.client.ListObjects(ctx, p.bucket, minio.ListObjectsOptions{
			Prefix:    prefix,
			Recursive: true,
		}), objectsCh)
	}()

	errorCh := p.client.RemoveObjects(ctx, p.bucket, objectsCh, minio.RemoveObjectsOptions{})

	var firstErr error
	removed := 0
	for rerr := range errorCh {
		if rerr.Err != nil && firstErr == nil {
			firstErr = rerr.Err
		}
		removed++
	}
	<-listDone

	if listErr != nil {
		return errs.Translate(listErr, platform.ErrCannotRead, uri)
	}
	if firstErr != nil {
		return errs.Translate(firstErr, platform.ErrCannotWrite, uri)
	}

	p.logger.Debug("removed directory tree", "prefix", prefix, "results", removed)
	return nil
}

// Move renames from to to. Files are copied server side then removed;
// directory trees are copied by a bounded worker pool, then batch deleted.
//
// Move is NOT atomic. A failure during the copy phase can leave a partial
// copy at to; a failure during the delete phase leaves objects at both.
func (p *Platform) Move(ctx context.Context, from, to string) error {
	src, dst, err := p.prepareTransfer(ctx, from, to)
	if err != nil || src == nil {
		return err
	}

	if dst != nil {
		if src.IsDir != dst.IsDir {
			return platform.NewError(platform.ErrAlreadyExists, to, "destination exists with a different type")
		}
		if dst.IsDir {
			names, err := p.ReadDirectory(ctx, to)
			if err != nil {
				return err
			}
			if len(names) > 0 {
				return platform.NewError(platform.ErrAlreadyExists, to, "destination directory is not empty")
			}
		}
	}

	dstKey, err := p.destinationKey(to)
	if err != nil {
		return err
	}

	if !src.IsDir {
		if err := p.copyObject(ctx, from, src.Key, dstKey); err != nil {
			return err
		}
		err := p.client.RemoveObject(ctx, p.bucket, src.Key, minio.RemoveObjectOptions{})
		return errs.Translate(err, platform.ErrCannotWrite, from)
	}

	copied, err := p.parallelCopy(ctx, from, pathutil.DirPrefix(src.Key), pathutil.DirPrefix(dstKey))
	if err != nil {
		return err
	}
	if err := p.putMarkerKey(ctx, to, dstKey); err != nil {
		return err
	}

	// Batch delete old objects
	toDelete := make(chan minio.ObjectInfo, len(copied))
	for _, key := range copied {
		toDelete <- minio.ObjectInfo{Key: key}
	}
	close(toDelete)

	for rerr := range p.client.RemoveObjects(ctx, p.bucket, toDelete, minio.RemoveObjectsOptions{}) {
		if rerr.Err != nil {
			// Copy succeeded but delete failed - partial state
			return errs.Translate(rerr.Err, platform.ErrCannotWrite, from)
		}
	}
	// Implicit source directories have no marker to copy or delete.
	err = p.client.RemoveObject(ctx, p.bucket, pathutil.MarkerKey(src.Key), minio.RemoveObjectOptions{})
	if err != nil && !errs.IsNotFound(err) {
		return errs.Translate(err, platform.ErrCannotWrite, from)
	}

	p.logger.Debug("moved directory tree", "from", from, "to", to, "objects", len(copied))
	return nil
}

// Copy duplicates the object or directory tree at from to to. Existing
// objects under to are overwritten.
func (p *Platform) Copy(ctx context.Context, from, to string) error {
	src, dst, err := p.prepareTransfer(ctx, from, to)
	if err != nil || src == nil {
		return err
	}

	dstKey, err := p.destinationKey(to)
	if err != nil {
		return err
	}

	if !src.IsDir {
		if dst != nil && dst.IsDir {
			return platform.NewError(platform.ErrIsDirectory, to, "is a directory")
		}
		return p.copyObject(ctx, from, src.Key, dstKey)
	}

	if dst != nil && !dst.IsDir {
		return platform.NewError(platform.ErrAlreadyExists, to, "destination is a file")
	}
	if err := p.putMarkerKey(ctx, to, dstKey); err != nil {
		return err
	}
	copied, err := p.parallelCopy(ctx, from, pathutil.DirPrefix(src.Key), pathutil.DirPrefix(dstKey))
	if err != nil {
		return err
	}

	p.logger.Debug("copied directory tree", "from", from, "to", to, "objects", len(copied))
	return nil
}

// prepareTransfer checks both ends of a move or copy. It returns a nil
// source entry and no error when from and to are the same entry.
func (p *Platform) prepareTransfer(ctx context.Context, from, to string) (*types.Entry, *types.Entry, error) {
	srcRel, err := p.resolve(from)
	if err != nil {
		return nil, nil, err
	}
	dstRel, err := p.resolve(to)
	if err != nil {
		return nil, nil, err
	}

	src, err := p.lookup(ctx, from, srcRel)
	if err != nil {
		return nil, nil, err
	}
	if src == nil {
		return nil, nil, platform.NewError(platform.ErrNotFound, from, "source does not exist")
	}
	if srcRel == "" || dstRel == "" {
		return nil, nil, platform.NewError(platform.ErrCannotWrite, to, "cannot replace the document directory")
	}
	if srcRel == dstRel {
		return nil, nil, nil
	}
	if strings.HasPrefix(dstRel, srcRel+"/") {
		return nil, nil, platform.NewError(platform.ErrCannotWrite, to, "cannot move a directory into itself")
	}
	if err := p.checkParent(ctx, to, dstRel); err != nil {
		return nil, nil, err
	}

	dst, err := p.lookup(ctx, to, dstRel)
	if err != nil {
		return nil, nil, err
	}
	return src, dst, nil
}

func (p *Platform) destinationKey(uri string) (string, error) {
	rel, err := p.resolve(uri)
	if err != nil {
		return "", err
	}
	return p.key(rel), nil
}

func (p *Platform) putMarkerKey(ctx context.Context, uri, key string) error {
	_, err := p.client.PutObject(ctx, p.bucket, pathutil.MarkerKey(key),
		strings.NewReader(""), 0, minio.PutObjectOptions{ContentType: "application/x-directory"})
	return errs.Translate(err, platform.ErrCannotWrite, uri)
}

func (p *Platform) copyObject(ctx context.Context, uri, srcKey, dstKey string) error {
	src := minio.CopySrcOptions{Bucket: p.bucket, Object: srcKey}
	dst := minio.CopyDestOptions{Bucket: p.bucket, Object: dstKey}

	_, err := p.client.CopyObject(ctx, dst, src)
	return errs.Translate(err, platform.ErrCannotWrite, uri)
}

// parallelCopy copies objects from old to new prefix using a worker pool.
// Returns the list of successfully copied object keys for cleanup.
func (p *Platform) parallelCopy(ctx context.Context, uri, oldPrefix, newPrefix string) ([]string, error) {
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(p.renameConcurrency)

	var copiedMu sync.Mutex
	var copied []string

	for object := range p.client.ListObjects(egCtx, p.bucket, minio.ListObjectsOptions{
		Prefix:    oldPrefix,
		Recursive: true,
	}) {
		if object.Err != nil {
			_ = eg.Wait()
			return copied, errs.Translate(object.Err, platform.ErrCannotRead, uri)
		}

		objectKey := object.Key
		eg.Go(func() error {
			newKey := newPrefix + strings.TrimPrefix(objectKey, oldPrefix)

			src := minio.CopySrcOptions{Bucket: p.bucket, Object: objectKey}
			dst := minio.CopyDestOptions{Bucket: p.bucket, Object: newKey}
			if _, err := p.client.CopyObject(egCtx, dst, src); err != nil {
				return err
			}

			copiedMu.Lock()
			copied = append(copied, objectKey)
			copiedMu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return copied, errs.Translate(err, platform.ErrCannotWrite, uri)
	}
	return copied, nil
}

// sendObjects forwards listed objects to out until the listing ends, an
// entry carries an error, or ctx is done.
func sendObjects(ctx context.Context, listed <-chan minio.ObjectInfo, out chan<- minio.ObjectInfo) error {
	for object := range listed {
		if object.Err != nil {
			return object.Err
		}
		select {
		case out <- object:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
