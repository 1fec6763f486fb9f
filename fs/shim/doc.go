// Package shim exposes a URI-addressed document store through the POSIX-like
// core.FS contract.
//
// Paths are mapped onto URIs under the store's document directory. Each
// operation checks what a POSIX filesystem would check (parent exists,
// target exists, target type, directory emptiness) before calling the store,
// then relabels whatever the store returns with a POSIX code:
//
//	fsys := shim.New(billy.NewMemory())
//	err := fsys.Mkdir(ctx, "/repo", 0o755)
//	if errors.HasCode(err, errors.CodeExist) {
//		// already there
//	}
//
// Only one store operation runs at a time. Symbolic links are not
// supported.
package shim
