package platform

import (
	"path"
	"strings"
)

// Resolve returns the slash path of uri relative to documentDirectory, with
// no leading slash. The document directory itself resolves to "".
//
// URIs are compared as plain strings: scheme and authority must match
// exactly, and no percent-decoding is applied. Paths are cleaned, so ".."
// cannot climb above the document directory.
func Resolve(documentDirectory, uri string) (string, error) {
	baseAuthority, basePath, ok := splitURI(documentDirectory)
	if !ok {
		return "", NewError(ErrInvalidURI, uri, "invalid document directory %q", documentDirectory)
	}
	authority, p, ok := splitURI(uri)
	if !ok || authority != baseAuthority {
		return "", NewError(ErrInvalidURI, uri, "uri is outside the document directory")
	}

	root := strings.TrimSuffix(path.Clean("/"+basePath), "/")
	p = path.Clean("/" + p)
	if p == root || (root == "" && p == "/") {
		return "", nil
	}
	if !strings.HasPrefix(p, root+"/") {
		return "", NewError(ErrInvalidURI, uri, "uri is outside the document directory")
	}
	return strings.TrimPrefix(p, root+"/"), nil
}

// Join appends a relative slash path to a directory URI.
func Join(dirURI string, elem ...string) string {
	rel := strings.TrimPrefix(path.Join(elem...), "/")
	if rel == "" || rel == "." {
		return dirURI
	}
	if !strings.HasSuffix(dirURI, "/") {
		dirURI += "/"
	}
	return dirURI + rel
}

// splitURI splits "scheme://authority/path" into "scheme://authority" and
// "/path".
func splitURI(uri string) (authority, p string, ok bool) {
	i := strings.Index(uri, "://")
	if i <= 0 {
		return "", "", false
	}
	rest := uri[i+3:]
	j := strings.IndexByte(rest, '/')
	if j < 0 {
		return uri, "/", true
	}
	return uri[:i+3+j], rest[j:], true
}
