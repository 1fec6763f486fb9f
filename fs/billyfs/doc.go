// Package billyfs adapts a core.FS to go-billy so that go-git can keep
// repositories in a document store.
//
//	fsys := shim.New(billyplatform.NewMemory())
//	wt := billyfs.New(fsys)
//	dot, _ := wt.Chroot(".git")
//	storer := filesystem.NewStorage(dot, cache.NewObjectLRUDefault())
//
// A file's contents are loaded when it is opened and written back in one
// piece when a writable handle closes. Symbolic links and file locking are
// not supported.
package billyfs
