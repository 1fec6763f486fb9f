// Package errs translates MinIO errors into store errors.
package errs

import (
	"context"
	"errors"

	"github.com/minio/minio-go/v7"

	"github.com/GenerousLabs/expo-fs/fs/platform"
)

// IsNotFound reports whether err is a missing key or bucket.
func IsNotFound(err error) bool {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return true
	}
	return false
}

// Translate converts a MinIO error into a *platform.Error for uri.
// fallback is used for errors without a more specific code. Returns nil if
// err is nil.
func Translate(err error, fallback platform.ErrorCode, uri string) error {
	if err == nil {
		return nil
	}

	var perr *platform.Error
	if errors.As(err, &perr) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return platform.WrapError(err, platform.ErrUnavailable, uri, "request interrupted")
	}

	errResp := minio.ToErrorResponse(err)
	switch errResp.Code {
	case "NoSuchKey":
		return platform.WrapError(err, platform.ErrNotFound, uri, "object does not exist")
	case "NoSuchBucket":
		return platform.WrapError(err, platform.ErrUnavailable, uri, "bucket does not exist")
	case "AccessDenied":
		return platform.WrapError(err, fallback, uri, "access denied")
	case "":
		// Transport failures carry no S3 error code.
		return platform.WrapError(err, platform.ErrUnavailable, uri, "minio unavailable")
	}

	return platform.WrapError(err, fallback, uri, "minio: "+errResp.Code)
}
