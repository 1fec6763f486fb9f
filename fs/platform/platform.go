package platform

import (
	"context"

	"github.com/GenerousLabs/expo-fs/fs/core"
)

// Encoding selects how ReadAsString and WriteAsString encode contents.
type Encoding string

const (
	// EncodingUTF8 passes contents as a UTF-8 string.
	EncodingUTF8 Encoding = "utf8"
	// EncodingBase64 passes contents as standard base64.
	EncodingBase64 Encoding = "base64"
)

// Info describes an entry in the store. ModificationTime is in seconds since
// the Unix epoch.
type Info struct {
	Exists           bool    `json:"exists"`
	URI              string  `json:"uri"`
	IsDirectory      bool    `json:"isDirectory"`
	Size             int64   `json:"size"`
	ModificationTime float64 `json:"modificationTime"`
}

// MakeDirectoryOptions configures MakeDirectory.
type MakeDirectoryOptions struct {
	// Intermediates creates missing parents and tolerates an existing
	// directory at the target.
	Intermediates bool
}

// ReadOptions configures ReadAsString.
type ReadOptions struct {
	Encoding Encoding

	// Position and Length select a byte range. They only apply to base64
	// reads; Length 0 reads to the end.
	Position int64
	Length   int64
}

// WriteOptions configures WriteAsString.
type WriteOptions struct {
	Encoding Encoding
}

// DeleteOptions configures Delete.
type DeleteOptions struct {
	// Idempotent makes deleting a missing entry succeed.
	Idempotent bool
}

// Platform is a URI-addressed document store.
//
// Every URI must live under DocumentDirectory; anything else fails with
// ErrInvalidURI. Errors are *Error values carrying a store error code.
type Platform interface {
	// DocumentDirectory returns the URI of the writable root, ending in a
	// slash. It is empty when the host has no document store.
	DocumentDirectory() string

	// Type reports the kind of backing storage.
	Type() core.FSType

	// GetInfo describes uri. A missing entry is Info{Exists: false} and no
	// error.
	GetInfo(ctx context.Context, uri string) (*Info, error)

	// MakeDirectory creates a directory.
	MakeDirectory(ctx context.Context, uri string, opts MakeDirectoryOptions) error

	// ReadDirectory returns the sorted names of the entries in a directory.
	ReadDirectory(ctx context.Context, uri string) ([]string, error)

	// ReadAsString returns the file's contents in the requested encoding.
	ReadAsString(ctx context.Context, uri string, opts ReadOptions) (string, error)

	// WriteAsString replaces the file's contents. The parent must exist.
	WriteAsString(ctx context.Context, uri string, contents string, opts WriteOptions) error

	// Delete removes a file or a whole directory tree.
	Delete(ctx context.Context, uri string, opts DeleteOptions) error

	// Move renames from to to, replacing an existing file at to.
	Move(ctx context.Context, from, to string) error

	// Copy duplicates a file or directory tree.
	Copy(ctx context.Context, from, to string) error
}
