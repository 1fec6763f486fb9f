package core

import (
	"errors"
	"io/fs"
)

// Sentinels for adapters that sit between an FS and callers testing errors
// with os.IsNotExist, os.IsExist or os.IsPermission. Coded errors from an FS
// already match these through errors.Is; adapters that must satisfy the os
// predicates unwrap to them explicitly (see billyfs).
var (
	ErrNotExist   = fs.ErrNotExist
	ErrExist      = fs.ErrExist
	ErrPermission = fs.ErrPermission
	ErrClosed     = fs.ErrClosed

	// ErrUnsupported is the cause of ENOTSUP errors for operations a
	// document store cannot express, such as symbolic links.
	ErrUnsupported = errors.ErrUnsupported
)
