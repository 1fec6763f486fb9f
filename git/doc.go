// Package git wraps go-git for repositories kept in a document store.
//
// Repositories are opened on a billy filesystem. By default that filesystem
// is the local disk seen through the POSIX shim (fs/shim) and its go-billy
// face (fs/billyfs), so the code path is the same one a remote or in-memory
// store takes. WithPlatform selects another store and WithFilesystem hands
// in any billy filesystem directly.
//
// # Quick Start
//
//	store := billy.NewMemory()
//	repo, err := git.Init("/notes", git.WithPlatform(store))
//	if err != nil {
//		return err
//	}
//
//	_ = util.WriteFile(repo.Filesystem(), "todo.md", []byte("- ship\n"), 0o644)
//	if err := repo.AddAll(); err != nil {
//		return err
//	}
//	hash, err := repo.CreateCommit(git.CommitOptions{
//		Author:  "Ada",
//		Email:   "ada@example.com",
//		Message: "Add todo list",
//	})
//
// # Operations
//
//   - Repositories: Init, Open, Clone
//   - Staging and history: Add, AddAll, CreateCommit, WalkCommits, GetCommit
//   - Branches: CreateBranch, CreateBranchFromRemote, ListBranches,
//     CurrentBranch, CheckoutBranch, DeleteBranch
//   - Tags: CreateTag, CreateLightweightTag, ListTags, DeleteTag
//   - Remotes: ListRemotes, AddRemote, RemoveRemote, Fetch, Push, Pull
//
// Underlying on Repository and Commit returns the go-git value for anything
// not wrapped here.
//
// # Errors
//
// Errors are CodedErrors from the errors package. go-git sentinels map to
// the nearest code (a missing reference is ENOENT, an existing branch is
// EEXIST, failed authentication is EACCES, a dirty worktree or empty commit
// is ECONFLICT). Codes raised by the store, such as ETIMEDOUT or EIO, pass
// through unchanged:
//
//	if errors.HasCode(err, errors.CodeTimedOut) {
//		// the store did not answer in time; retry
//	}
//
// # Testing
//
// Package testutil creates repositories on an in-memory store. Network
// operations can be replaced with WithRemoteOperations.
package git
