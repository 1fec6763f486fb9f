// Package core defines the POSIX-like, context-aware filesystem contract
// that the document-store shim implements.
//
// The contract mirrors what version-control libraries expect from a
// filesystem: mkdir, rmdir, readdir, whole-file reads and writes, unlink,
// rename, stat and lstat, plus symlink and readlink which constrained stores
// reject. Errors carry POSIX codes from package errors so callers can branch
// on ENOENT, EEXIST and friends.
//
// # Interface Hierarchy
//
// The main FS interface is composed of four sub-interfaces:
//
//   - DirFS: Mkdir, Rmdir, Readdir
//   - FileFS: WriteFile, WriteString, ReadFile, ReadString
//   - ManageFS: Unlink, Rename, Stat, Lstat
//   - LinkFS: Symlink, Readlink
//
// # Usage Example
//
//	func Touch(ctx context.Context, fsys core.FS, p string) error {
//	    if err := core.MkdirAll(ctx, fsys, path.Dir(p)); err != nil {
//	        return err
//	    }
//	    return fsys.WriteString(ctx, p, "", core.WriteOptions{Encoding: core.EncodingUTF8})
//	}
//
// # Stats
//
// Stats reports the type, size, mode and modification time of an entry.
// Stats.FileInfo adapts it to fs.FileInfo for code written against io/fs.
//
// # Implementations
//
//   - github.com/GenerousLabs/expo-fs/fs/shim - adapts a URI-addressed
//     document store (fs/platform) to FS
//   - github.com/GenerousLabs/expo-fs/fs/billyfs - exposes any FS as a
//     go-billy filesystem for go-git
package core
