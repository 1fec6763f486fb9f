// Package billy provides a go-billy-backed document store implementing
// platform.Platform.
//
// The store maps URIs under its document directory onto paths of a
// billy.Filesystem. NewLocal uses go-billy's osfs and NewMemory its memfs;
// New wraps any other billy filesystem.
//
// Usage:
//
//	// Create a local store rooted at a directory
//	store := billy.NewLocal("/var/lib/docgit")
//	fmt.Println(store.DocumentDirectory()) // file:///var/lib/docgit/
//
//	uri := store.DocumentDirectory() + "notes.txt"
//	err := store.WriteAsString(ctx, uri, "hello", platform.WriteOptions{})
//
// # Memory Store
//
// For testing or temporary storage, use the in-memory store:
//
//	store := billy.NewMemory()
//	err := store.MakeDirectory(ctx, billy.MemoryDocumentDirectory+"repo",
//	    platform.MakeDirectoryOptions{})
//
// # Thread Safety
//
// Stores are safe for concurrent use by multiple goroutines when the
// underlying billy filesystem is.
package billy
