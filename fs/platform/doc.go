// Package platform defines the URI-addressed document-store API that the
// shim adapts.
//
// A Platform exposes a small set of coarse operations (info, make
// directory, read directory, read and write as string, delete, move, copy)
// over URIs rooted at a document directory such as
// "file:///data/user/0/app/files/". It has no notion of POSIX error codes,
// file modes or links; failures are *Error values carrying codes like
// ErrNotFound and ErrAlreadyExists.
//
// Providers live in subpackages:
//
//   - platform/billy wraps any go-billy filesystem (osfs, memfs)
//   - platform/minio stores entries as objects in a MinIO or S3 bucket
//
// Provider conformance is checked by package platformtest.
package platform
