// Package pathutil provides path normalization and manipulation utilities
// for MinIO/S3 object keys.
package pathutil

import (
	"path"
	"strings"
)

// NormalizePrefix normalizes the prefix path:
// - Converts backslashes to forward slashes
// - Removes leading and trailing slashes
// - Returns empty string if prefix is "." or empty.
func NormalizePrefix(prefix string) string {
	if prefix == "" || prefix == "." {
		return ""
	}

	prefix = strings.ReplaceAll(prefix, "\\", "/")
	prefix = path.Clean("/" + prefix)
	return strings.Trim(prefix, "/")
}

// JoinPath joins a prefix with a relative store path to create a full S3
// key. The store root maps to the prefix itself.
func JoinPath(prefix, rel string) string {
	rel = strings.Trim(rel, "/")
	if rel == "" {
		return prefix
	}
	if prefix == "" {
		return rel
	}
	return prefix + "/" + rel
}

// DirPrefix returns the listing prefix for the directory stored at key.
// The bucket root (empty key) lists everything.
func DirPrefix(key string) string {
	if key == "" || strings.HasSuffix(key, "/") {
		return key
	}
	return key + "/"
}

// MarkerKey returns the key of the zero-byte object that marks key as a
// directory.
func MarkerKey(key string) string {
	return DirPrefix(key)
}

// ChildName returns the name of the immediate child of dirPrefix that
// objectKey belongs to, and whether that child is a directory.
func ChildName(dirPrefix, objectKey string) (string, bool) {
	rel := strings.TrimPrefix(objectKey, dirPrefix)
	if i := strings.IndexByte(rel, '/'); i >= 0 {
		return rel[:i], true
	}
	return rel, false
}

// Ancestors returns the proper ancestors of rel from the top down,
// excluding the root. Ancestors("a/b/c") is ["a", "a/b"].
func Ancestors(rel string) []string {
	var out []string
	for i, c := range rel {
		if c == '/' {
			out = append(out, rel[:i])
		}
	}
	return out
}

// Parent returns the parent of rel, or "" for top-level entries.
func Parent(rel string) string {
	if i := strings.LastIndexByte(rel, '/'); i >= 0 {
		return rel[:i]
	}
	return ""
}
