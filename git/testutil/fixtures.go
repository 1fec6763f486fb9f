package testutil

// Identities used for test commits.
const (
	TestAuthor  = "Test User"
	TestEmail   = "test@example.com"
	TestAuthor2 = "Another User"
	TestEmail2  = "another@example.com"
)

// RepoPath is where NewMemoryRepo creates its repository inside the store.
const RepoPath = "/repo"

// Sample remote URLs.
const (
	TestRepoURL    = "https://example.com/test/notes.git"
	TestRepoSSHURL = "git@example.com:test/notes.git"
)

// Sample document contents.
const (
	TestFileContent = "# Notes\n\nKept in a document store.\n"

	TestMarkdownContent = `# Meeting

- agenda
- actions
`

	TestJSONContent = `{
  "title": "notes",
  "version": 1
}
`
)

// Sample commit messages.
const (
	TestInitialCommit = "Initial commit"
	TestCommitMessage = "Update notes"
)
