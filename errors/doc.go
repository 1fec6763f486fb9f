// Package errors provides POSIX-coded errors for the document-store shim.
//
// Filesystem consumers such as version-control libraries decide what to do
// next from the error code alone: a missing parent during mkdir (ENOENT)
// triggers recursive creation, an existing directory (EEXIST) is tolerated,
// and so on. The errors in this package carry that code, a retry
// classification, and context metadata, while remaining compatible with the
// standard library (errors.Is, errors.As, errors.Unwrap).
//
// # Quick Start
//
//	err := errors.New(errors.CodeNotExist, "/repo/.git/config")
//	fmt.Println(err) // ENOENT: /repo/.git/config
//
//	errors.Is(err, fs.ErrNotExist)           // true
//	errors.GetCode(err) == errors.CodeNotExist // true
//
// Wrapping a provider error:
//
//	if err := store.Move(ctx, from, to); err != nil {
//	    return errors.Wrap(err, errors.CodeIO, oldPath)
//	}
//
// Adding context:
//
//	err = errors.WithContext(err, "op", "rename")
//
// # Error Codes
//
//   - Entry errors: CodeExist, CodeNotExist, CodeNotDir, CodeIsDir, CodeNotEmpty
//   - Argument errors: CodeInvalid, CodeNotSupported, CodePermission
//   - Repository errors: CodeConflict
//   - Transport errors: CodeTimedOut, CodeIO
//   - Generic: CodeUnknown
//
// CodeTimedOut and CodeIO are retryable by default; everything else is
// permanent. Wrapping a CodedError keeps its classification.
//
// # io/fs Compatibility
//
// Codes with an io/fs counterpart match it through errors.Is: ENOENT matches
// fs.ErrNotExist, EEXIST matches fs.ErrExist, EINVAL matches fs.ErrInvalid,
// ENOTSUP matches errors.ErrUnsupported and ETIMEDOUT matches
// context.DeadlineExceeded.
package errors
