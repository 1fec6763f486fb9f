package shim_test

import (
	"context"

	"github.com/GenerousLabs/expo-fs/fs/platform"
	billyplatform "github.com/GenerousLabs/expo-fs/fs/platform/billy"
)

// blockingStore holds every GetInfo call until release is closed or the
// caller's context ends.
type blockingStore struct {
	platform.Platform
	entered chan struct{}
	release chan struct{}
}

func newBlockingStore() *blockingStore {
	return &blockingStore{
		Platform: billyplatform.NewMemory(),
		entered:  make(chan struct{}, 1),
		release:  make(chan struct{}),
	}
}

func (s *blockingStore) GetInfo(ctx context.Context, uri string) (*platform.Info, error) {
	select {
	case s.entered <- struct{}{}:
	default:
	}

	select {
	case <-s.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return s.Platform.GetInfo(ctx, uri)
}
