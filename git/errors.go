package git

import (
	"context"
	"errors"
	"io/fs"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"

	fserrors "github.com/GenerousLabs/expo-fs/errors"
)

// goGitCodes maps go-git sentinels to codes. Order matters only where one
// error could match several entries.
var goGitCodes = []struct {
	target error
	code   fserrors.ErrorCode
}{
	{gogit.ErrRepositoryNotExists, fserrors.CodeNotExist},
	{transport.ErrRepositoryNotFound, fserrors.CodeNotExist},
	{plumbing.ErrReferenceNotFound, fserrors.CodeNotExist},
	{plumbing.ErrObjectNotFound, fserrors.CodeNotExist},
	{gogit.ErrRemoteNotFound, fserrors.CodeNotExist},
	{gogit.ErrBranchNotFound, fserrors.CodeNotExist},
	{gogit.ErrTagNotFound, fserrors.CodeNotExist},
	{transport.ErrEmptyRemoteRepository, fserrors.CodeNotExist},

	{gogit.ErrRepositoryAlreadyExists, fserrors.CodeExist},
	{gogit.ErrRemoteExists, fserrors.CodeExist},
	{gogit.ErrBranchExists, fserrors.CodeExist},
	{gogit.ErrTagExists, fserrors.CodeExist},
	{gogit.ErrDestinationExists, fserrors.CodeExist},

	{transport.ErrAuthenticationRequired, fserrors.CodePermission},
	{transport.ErrAuthorizationFailed, fserrors.CodePermission},

	{gogit.ErrWorktreeNotClean, fserrors.CodeConflict},
	{gogit.ErrEmptyCommit, fserrors.CodeConflict},
	{gogit.ErrNonFastForwardUpdate, fserrors.CodeConflict},

	{gogit.ErrMissingURL, fserrors.CodeInvalid},
	{gogit.ErrMissingAuthor, fserrors.CodeInvalid},
	{gogit.ErrHashOrReference, fserrors.CodeInvalid},
	{gogit.ErrBranchHashExclusive, fserrors.CodeInvalid},
	{gogit.ErrMissingName, fserrors.CodeInvalid},
	{gogit.ErrIsBareRepository, fserrors.CodeInvalid},
	{config.ErrRemoteConfigEmptyName, fserrors.CodeInvalid},
	{config.ErrRemoteConfigEmptyURL, fserrors.CodeInvalid},
}

// classifyError returns the code for err. Codes raised by the filesystem
// shim win over go-git's own sentinels, which in turn win over io/fs
// sentinels.
func classifyError(err error) fserrors.ErrorCode {
	var coded fserrors.CodedError
	if errors.As(err, &coded) {
		return coded.Code()
	}

	for _, m := range goGitCodes {
		if errors.Is(err, m.target) {
			return m.code
		}
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fserrors.CodeTimedOut
	case errors.Is(err, fs.ErrNotExist):
		return fserrors.CodeNotExist
	case errors.Is(err, fs.ErrExist):
		return fserrors.CodeExist
	case errors.Is(err, fs.ErrPermission):
		return fserrors.CodePermission
	}
	return fserrors.CodeUnknown
}

// wrapError classifies err and labels it with msg. The cause chain is kept
// for errors.Is and errors.As. A nil err stays nil.
func wrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fserrors.Wrap(err, classifyError(err), msg)
}

func invalidf(format string, args ...interface{}) error {
	return fserrors.Newf(fserrors.CodeInvalid, format, args...)
}
