package core

import (
	"context"
	"io/fs"
)

// FSType represents the underlying type of filesystem implementation.
type FSType int

const (
	// FSTypeUnknown indicates the filesystem type is unknown or unspecified.
	FSTypeUnknown FSType = iota
	// FSTypeLocal indicates a local filesystem (e.g., disk-backed).
	FSTypeLocal
	// FSTypeMemory indicates an in-memory filesystem.
	FSTypeMemory
	// FSTypeRemote indicates a remote filesystem (e.g., S3, cloud storage).
	FSTypeRemote
)

// String returns a string representation of the FSType.
func (t FSType) String() string {
	switch t {
	case FSTypeLocal:
		return "local"
	case FSTypeMemory:
		return "memory"
	case FSTypeRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// ParseFSType returns the FSType named by s, or FSTypeUnknown.
func ParseFSType(s string) FSType {
	switch s {
	case "local":
		return FSTypeLocal
	case "memory":
		return FSTypeMemory
	case "remote":
		return FSTypeRemote
	default:
		return FSTypeUnknown
	}
}

// Encoding selects how file contents cross the FS boundary.
type Encoding string

const (
	// EncodingNone transfers raw bytes.
	EncodingNone Encoding = ""
	// EncodingUTF8 transfers contents as a UTF-8 string.
	EncodingUTF8 Encoding = "utf8"
	// EncodingBase64 transfers contents as a base64 string.
	EncodingBase64 Encoding = "base64"
)

// WriteOptions configures WriteFile and WriteString.
type WriteOptions struct {
	// Encoding of the string passed to WriteString. Ignored by WriteFile.
	Encoding Encoding

	// Mode is accepted for compatibility and ignored by stores without
	// permission bits.
	Mode fs.FileMode
}

// ReadOptions configures ReadString.
type ReadOptions struct {
	// Encoding of the returned string.
	Encoding Encoding
}

// FS is the POSIX-like filesystem contract.
//
// Every method takes a context and returns errors carrying a POSIX code
// (see package errors): ENOENT, EEXIST, ENOTDIR, EISDIR, ENOTEMPTY,
// ETIMEDOUT and so on. Paths are absolute slash-separated paths; relative
// paths are resolved against the root.
//
// FS is composed of four sub-interfaces so callers can depend on the
// smallest set of operations they need.
type FS interface {
	DirFS
	FileFS
	ManageFS
	LinkFS

	// Type returns the underlying filesystem type.
	Type() FSType
}

// DirFS defines directory operations.
type DirFS interface {
	// Mkdir creates a single directory. The parent must exist (ENOENT) and
	// the target must not (EEXIST). mode is ignored by stores without
	// permission bits.
	Mkdir(ctx context.Context, path string, mode fs.FileMode) error

	// Rmdir removes an empty directory. It fails with ENOENT when the path
	// is missing, ENOTDIR when it is a file and ENOTEMPTY when it has
	// entries.
	Rmdir(ctx context.Context, path string) error

	// Readdir returns the names of the entries in a directory, sorted.
	Readdir(ctx context.Context, path string) ([]string, error)
}

// FileFS defines whole-file read and write operations.
type FileFS interface {
	// WriteFile writes data to a file, replacing existing contents.
	// The parent directory must exist.
	WriteFile(ctx context.Context, path string, data []byte, opts WriteOptions) error

	// WriteString writes a UTF-8 string to a file. Encodings other than
	// utf8 are rejected with EINVAL.
	WriteString(ctx context.Context, path string, data string, opts WriteOptions) error

	// ReadFile reads the whole file as bytes.
	ReadFile(ctx context.Context, path string) ([]byte, error)

	// ReadString reads the whole file as a string. Encodings other than
	// utf8 are rejected with EINVAL.
	ReadString(ctx context.Context, path string, opts ReadOptions) (string, error)
}

// ManageFS defines removal, renaming and metadata operations.
type ManageFS interface {
	// Unlink removes a file. Directories are rejected with EISDIR.
	Unlink(ctx context.Context, path string) error

	// Rename moves oldPath to newPath, replacing an existing file at
	// newPath.
	Rename(ctx context.Context, oldPath, newPath string) error

	// Stat returns metadata for path.
	Stat(ctx context.Context, path string) (*Stats, error)

	// Lstat returns metadata for path without following symbolic links.
	// On stores without links it is identical to Stat.
	Lstat(ctx context.Context, path string) (*Stats, error)
}

// LinkFS defines symbolic link operations. Stores without links return
// ENOTSUP from both methods.
type LinkFS interface {
	Symlink(ctx context.Context, target, path string) error
	Readlink(ctx context.Context, path string) (string, error)
}
