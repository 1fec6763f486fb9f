package core

import (
	"io/fs"
	"math"
	"time"
)

// Entry types reported in Stats.Type.
const (
	TypeFile = "file"
	TypeDir  = "dir"
)

// Stats describes a filesystem entry in the shape POSIX callers expect.
//
// Stores that lack inodes, owners and devices report 1 for Ino, UID, GID
// and Dev. Times are milliseconds since the Unix epoch.
type Stats struct {
	Type    string  `json:"type"`
	Mode    uint32  `json:"mode"`
	Size    int64   `json:"size"`
	Ino     uint64  `json:"ino"`
	UID     uint32  `json:"uid"`
	GID     uint32  `json:"gid"`
	Dev     uint64  `json:"dev"`
	MtimeMs float64 `json:"mtimeMs"`
	CtimeMs float64 `json:"ctimeMs"`
}

// IsFile reports whether the entry is a regular file.
func (s *Stats) IsFile() bool { return s.Type == TypeFile }

// IsDirectory reports whether the entry is a directory.
func (s *Stats) IsDirectory() bool { return s.Type == TypeDir }

// IsSymbolicLink always reports false; links are never surfaced.
func (s *Stats) IsSymbolicLink() bool { return false }

// ModTime converts MtimeMs to a time.Time.
func (s *Stats) ModTime() time.Time {
	return msToTime(s.MtimeMs)
}

// FileMode returns the permission bits, with fs.ModeDir set for directories.
func (s *Stats) FileMode() fs.FileMode {
	mode := fs.FileMode(s.Mode).Perm()
	if s.IsDirectory() {
		mode |= fs.ModeDir
	}
	return mode
}

// FileInfo adapts the stats to fs.FileInfo under the given base name.
func (s *Stats) FileInfo(name string) fs.FileInfo {
	return &statsInfo{name: name, stats: *s}
}

func msToTime(ms float64) time.Time {
	sec, frac := math.Modf(ms / 1000)
	return time.Unix(int64(sec), int64(frac*float64(time.Second)))
}

type statsInfo struct {
	name  string
	stats Stats
}

func (i *statsInfo) Name() string       { return i.name }
func (i *statsInfo) Size() int64        { return i.stats.Size }
func (i *statsInfo) Mode() fs.FileMode  { return i.stats.FileMode() }
func (i *statsInfo) ModTime() time.Time { return i.stats.ModTime() }
func (i *statsInfo) IsDir() bool        { return i.stats.IsDirectory() }
func (i *statsInfo) Sys() interface{}   { return &i.stats }
