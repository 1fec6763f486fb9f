package shim

import (
	"context"
	"errors"
	"io/fs"

	fserrors "github.com/GenerousLabs/expo-fs/errors"
	"github.com/GenerousLabs/expo-fs/fs/platform"
)

var storeCodes = map[platform.ErrorCode]fserrors.ErrorCode{
	platform.ErrNotFound:      fserrors.CodeNotExist,
	platform.ErrAlreadyExists: fserrors.CodeExist,
	platform.ErrNotADirectory: fserrors.CodeNotDir,
	platform.ErrIsDirectory:   fserrors.CodeIsDir,
	platform.ErrInvalidURI:    fserrors.CodeInvalid,
	platform.ErrUnavailable:   fserrors.CodeIO,
	platform.ErrCannotRead:    fserrors.CodeIO,
	platform.ErrCannotWrite:   fserrors.CodeIO,
}

// Code returns the POSIX code for an error raised by a store.
func Code(err error) fserrors.ErrorCode {
	var coded fserrors.CodedError
	switch {
	case errors.As(err, &coded):
		return coded.Code()
	case errors.Is(err, context.DeadlineExceeded):
		return fserrors.CodeTimedOut
	}

	if code, ok := platform.CodeOf(err); ok {
		if posix, ok := storeCodes[code]; ok {
			return posix
		}
		return fserrors.CodeIO
	}

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fserrors.CodeNotExist
	case errors.Is(err, fs.ErrExist):
		return fserrors.CodeExist
	}
	return fserrors.CodeIO
}

// relabel converts err into a CodedError whose message is the caller's path
// and whose context names the operation and URI.
func (f *FS) relabel(op, p string, err error) error {
	ctx := map[string]interface{}{
		"op":   op,
		"path": p,
		"uri":  f.URI(p),
	}

	var coded fserrors.CodedError
	if errors.As(err, &coded) {
		return fserrors.WithContextMap(coded, ctx)
	}
	return fserrors.WrapWithContext(err, Code(err), p, ctx)
}
