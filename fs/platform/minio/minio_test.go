package minio

import (
	"context"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GenerousLabs/expo-fs/fs/core"
	"github.com/GenerousLabs/expo-fs/fs/platform"
	"github.com/GenerousLabs/expo-fs/fs/platform/minio/internal/errs"
	"github.com/GenerousLabs/expo-fs/fs/platform/minio/internal/pathutil"
	"github.com/GenerousLabs/expo-fs/fs/platform/minio/internal/types"
)

// TestConfigValidation tests Config.validate() with various scenarios.
func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid config with credentials",
			config: Config{
				Endpoint:  "localhost:9000",
				Bucket:    "test-bucket",
				AccessKey: "minioadmin",
				SecretKey: "minioadmin",
				UseSSL:    false,
			},
			wantErr: false,
		},
		{
			name: "valid config with client",
			config: Config{
				Client: &minio.Client{}, // Mock client
				Bucket: "test-bucket",
			},
			wantErr: false,
		},
		{
			name: "missing bucket",
			config: Config{
				Endpoint:  "localhost:9000",
				AccessKey: "minioadmin",
				SecretKey: "minioadmin",
			},
			wantErr: true,
			errMsg:  "bucket is required",
		},
		{
			name: "missing endpoint without client",
			config: Config{
				Bucket:    "test-bucket",
				AccessKey: "minioadmin",
				SecretKey: "minioadmin",
			},
			wantErr: true,
			errMsg:  "endpoint is required when client is not provided",
		},
		{
			name: "missing access key without client",
			config: Config{
				Endpoint:  "localhost:9000",
				Bucket:    "test-bucket",
				SecretKey: "minioadmin",
			},
			wantErr: true,
			errMsg:  "access key is required when client is not provided",
		},
		{
			name: "missing secret key without client",
			config: Config{
				Endpoint:  "localhost:9000",
				Bucket:    "test-bucket",
				AccessKey: "minioadmin",
			},
			wantErr: true,
			errMsg:  "secret key is required when client is not provided",
		},
		{
			name: "multipart threshold below minimum",
			config: Config{
				Client:             &minio.Client{},
				Bucket:             "test-bucket",
				MultipartThreshold: 1024,
			},
			wantErr: true,
			errMsg:  "multipart threshold must be at least",
		},
		{
			name: "negative concurrency",
			config: Config{
				Client:               &minio.Client{},
				Bucket:               "test-bucket",
				MaxRenameConcurrency: -1,
			},
			wantErr: true,
			errMsg:  "max rename concurrency must not be negative",
		},
		{
			name: "client provided ignores missing credentials",
			config: Config{
				Client: &minio.Client{}, // Mock client
				Bucket: "test-bucket",
				// No Endpoint, AccessKey, SecretKey - should still be valid
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

// TestNew tests the New constructor.
func TestNew(t *testing.T) {
	t.Run("invalid config returns error", func(t *testing.T) {
		p, err := New(Config{Endpoint: "localhost:9000"})
		require.Error(t, err)
		assert.Nil(t, p)
		assert.Contains(t, err.Error(), "invalid config")
	})

	t.Run("defaults", func(t *testing.T) {
		p, err := New(Config{Client: &minio.Client{}, Bucket: "test-bucket"})
		require.NoError(t, err)
		assert.Equal(t, "test-bucket", p.bucket)
		assert.Equal(t, "", p.prefix)
		assert.Equal(t, int64(5*1024*1024), p.partSize)
		assert.Equal(t, 10, p.renameConcurrency)
		assert.NotNil(t, p.logger)
		assert.Equal(t, core.FSTypeRemote, p.Type())
	})

	t.Run("credentials build a client", func(t *testing.T) {
		p, err := New(Config{
			Endpoint:  "localhost:9000",
			Bucket:    "test-bucket",
			AccessKey: "minioadmin",
			SecretKey: "minioadmin",
		})
		require.NoError(t, err)
		assert.NotNil(t, p.client)
	})
}

// TestDocumentDirectory tests the URI of the store root.
func TestDocumentDirectory(t *testing.T) {
	tests := []struct {
		prefix string
		want   string
	}{
		{"", "s3://docs/"},
		{".", "s3://docs/"},
		{"myapp", "s3://docs/myapp/"},
		{"/myapp/data/", "s3://docs/myapp/data/"},
		{"myapp\\data", "s3://docs/myapp/data/"},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			p, err := New(Config{Client: &minio.Client{}, Bucket: "docs", Prefix: tt.prefix})
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.DocumentDirectory())
		})
	}
}

// TestResolveRejectsForeignURIs checks sandboxing before any request is made.
func TestResolveRejectsForeignURIs(t *testing.T) {
	p, err := New(Config{Client: &minio.Client{}, Bucket: "docs", Prefix: "app"})
	require.NoError(t, err)

	for _, uri := range []string{
		"s3://other/app/x",
		"s3://docs/elsewhere/x",
		"file:///docs/app/x",
		"s3://docs/app/../x",
	} {
		_, err := p.GetInfo(context.Background(), uri)
		assert.True(t, platform.IsCode(err, platform.ErrInvalidURI), uri)
	}
}

// TestNormalizePrefix tests prefix normalization.
func TestNormalizePrefix(t *testing.T) {
	tests := []struct {
		prefix string
		want   string
	}{
		{"", ""},
		{".", ""},
		{"myapp", "myapp"},
		{"/myapp/data", "myapp/data"},
		{"myapp/data/", "myapp/data"},
		{"myapp\\data", "myapp/data"},
		{"myapp/../data/./files", "data/files"},
		{"../..", ""},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			assert.Equal(t, tt.want, pathutil.NormalizePrefix(tt.prefix))
		})
	}
}

// TestPathHelpers tests key construction helpers.
func TestPathHelpers(t *testing.T) {
	assert.Equal(t, "", pathutil.JoinPath("", ""))
	assert.Equal(t, "app", pathutil.JoinPath("app", ""))
	assert.Equal(t, "a/b", pathutil.JoinPath("", "a/b"))
	assert.Equal(t, "app/a/b", pathutil.JoinPath("app", "/a/b/"))

	assert.Equal(t, "", pathutil.DirPrefix(""))
	assert.Equal(t, "app/", pathutil.DirPrefix("app"))
	assert.Equal(t, "app/", pathutil.DirPrefix("app/"))
	assert.Equal(t, "app/dir/", pathutil.MarkerKey("app/dir"))

	name, isDir := pathutil.ChildName("app/", "app/dir/file.txt")
	assert.Equal(t, "dir", name)
	assert.True(t, isDir)
	name, isDir = pathutil.ChildName("app/", "app/file.txt")
	assert.Equal(t, "file.txt", name)
	assert.False(t, isDir)

	assert.Equal(t, []string{"a", "a/b"}, pathutil.Ancestors("a/b/c"))
	assert.Nil(t, pathutil.Ancestors("a"))
	assert.Equal(t, "a/b", pathutil.Parent("a/b/c"))
	assert.Equal(t, "", pathutil.Parent("a"))
}

// TestTranslateError tests MinIO error translation.
func TestTranslateError(t *testing.T) {
	const uri = "s3://docs/a"

	t.Run("nil error returns nil", func(t *testing.T) {
		assert.Nil(t, errs.Translate(nil, platform.ErrCannotRead, uri))
	})

	t.Run("NoSuchKey maps to not found", func(t *testing.T) {
		err := errs.Translate(minio.ErrorResponse{Code: "NoSuchKey"}, platform.ErrCannotRead, uri)
		assert.True(t, platform.IsCode(err, platform.ErrNotFound))
		assert.True(t, errs.IsNotFound(minio.ErrorResponse{Code: "NoSuchKey"}))
	})

	t.Run("NoSuchBucket maps to unavailable", func(t *testing.T) {
		err := errs.Translate(minio.ErrorResponse{Code: "NoSuchBucket"}, platform.ErrCannotRead, uri)
		assert.True(t, platform.IsCode(err, platform.ErrUnavailable))
	})

	t.Run("AccessDenied uses the fallback", func(t *testing.T) {
		err := errs.Translate(minio.ErrorResponse{Code: "AccessDenied"}, platform.ErrCannotWrite, uri)
		assert.True(t, platform.IsCode(err, platform.ErrCannotWrite))
	})

	t.Run("other MinIO errors keep their code in the message", func(t *testing.T) {
		minioErr := minio.ErrorResponse{Code: "InternalError", Message: "Something went wrong"}
		err := errs.Translate(minioErr, platform.ErrCannotRead, uri)
		assert.True(t, platform.IsCode(err, platform.ErrCannotRead))
		assert.Contains(t, err.Error(), "minio: InternalError")
		assert.Contains(t, err.Error(), "Something went wrong")
	})

	t.Run("transport errors are unavailable", func(t *testing.T) {
		err := errs.Translate(assert.AnError, platform.ErrCannotRead, uri)
		assert.True(t, platform.IsCode(err, platform.ErrUnavailable))
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("deadlines stay detectable", func(t *testing.T) {
		err := errs.Translate(context.DeadlineExceeded, platform.ErrCannotRead, uri)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("store errors pass through", func(t *testing.T) {
		orig := platform.NewError(platform.ErrIsDirectory, uri, "is a directory")
		assert.Equal(t, error(orig), errs.Translate(orig, platform.ErrCannotRead, uri))
	})
}

// TestEntry tests entry helpers.
func TestEntry(t *testing.T) {
	dir := types.NewDirEntry("app/dir", time.Time{})
	assert.True(t, dir.IsDir)
	assert.Equal(t, float64(0), dir.ModificationTime())

	file := types.NewFileEntry("app/f", 3, time.Unix(1700000000, 0))
	assert.False(t, file.IsDir)
	assert.Equal(t, int64(3), file.Size)
	assert.Equal(t, float64(1700000000), file.ModificationTime())
}

// TestSendObjects tests the listing pump used by removePrefix.
func TestSendObjects(t *testing.T) {
	t.Run("forwards every object", func(t *testing.T) {
		listed := make(chan minio.ObjectInfo, 2)
		listed <- minio.ObjectInfo{Key: "a"}
		listed <- minio.ObjectInfo{Key: "b"}
		close(listed)

		out := make(chan minio.ObjectInfo, 2)
		require.NoError(t, sendObjects(context.Background(), listed, out))
		close(out)

		var keys []string
		for o := range out {
			keys = append(keys, o.Key)
		}
		assert.Equal(t, []string{"a", "b"}, keys)
	})

	t.Run("listing error stops the pump", func(t *testing.T) {
		listed := make(chan minio.ObjectInfo, 2)
		listed <- minio.ObjectInfo{Err: assert.AnError}
		listed <- minio.ObjectInfo{Key: "never"}
		close(listed)

		out := make(chan minio.ObjectInfo, 2)
		err := sendObjects(context.Background(), listed, out)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Len(t, out, 0)
	})

	t.Run("cancelled context unblocks a stalled consumer", func(t *testing.T) {
		listed := make(chan minio.ObjectInfo, 1)
		listed <- minio.ObjectInfo{Key: "a"}
		close(listed)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// Nobody reads out, so only the context can release the send.
		out := make(chan minio.ObjectInfo)
		done := make(chan error, 1)
		go func() { done <- sendObjects(ctx, listed, out) }()

		select {
		case err := <-done:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(5 * time.Second):
			t.Fatal("sendObjects did not return after cancellation")
		}
	})
}

// TestInterfaceCompliance verifies Platform implements platform.Platform.
func TestInterfaceCompliance(t *testing.T) {
	var _ platform.Platform = (*Platform)(nil)
}
