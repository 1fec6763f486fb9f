// Package types provides shared type definitions for the minio store.
package types // nolint:revive // Internal package with clear purpose

import "time"

// Entry describes an object or a directory in the bucket.
type Entry struct {
	Key     string
	IsDir   bool
	Size    int64
	ModTime time.Time
}

// NewFileEntry creates an Entry for a regular object.
func NewFileEntry(key string, size int64, modTime time.Time) *Entry {
	return &Entry{Key: key, Size: size, ModTime: modTime}
}

// NewDirEntry creates an Entry for a directory. modTime is zero for
// implicit directories that exist only as key prefixes.
func NewDirEntry(key string, modTime time.Time) *Entry {
	return &Entry{Key: key, IsDir: true, ModTime: modTime}
}

// ModificationTime returns ModTime in seconds since the Unix epoch, or 0
// when unknown.
func (e *Entry) ModificationTime() float64 {
	if e.ModTime.IsZero() {
		return 0
	}
	return float64(e.ModTime.UnixNano()) / 1e9
}
