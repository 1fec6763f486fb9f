package git

import (
	"log/slog"
	"time"

	"github.com/go-git/go-billy/v5"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
)

// Repository is a go-git repository whose files live on a billy filesystem,
// normally a document store seen through billyfs.
type Repository struct {
	path      string
	repo      *gogit.Repository
	fs        billy.Filesystem
	remoteOps RemoteOperations
	logger    *slog.Logger
}

// Commit describes one commit.
type Commit struct {
	Hash      string
	Author    string
	Email     string
	Message   string
	Timestamp time.Time
	raw       *object.Commit
}

// Branch is a local or remote-tracking branch.
type Branch struct {
	Name     string
	Hash     plumbing.Hash
	IsRemote bool
}

// Tag is a lightweight or annotated tag. Message is empty for lightweight
// tags.
type Tag struct {
	Name    string
	Hash    plumbing.Hash
	Message string
}

// Remote is a configured remote.
type Remote struct {
	Name string
	URLs []string
}

// Auth is a transport credential. Values come from BasicAuth, SSHKeyAuth or
// SSHKeyFile, or any go-git transport.AuthMethod.
type Auth interface{}

var _ Auth = (transport.AuthMethod)(nil)

// CloneOptions configures a clone.
type CloneOptions struct {
	URL string
	// Path is where the repository is created on the target filesystem.
	Path          string
	Auth          Auth
	Depth         int
	SingleBranch  bool
	ReferenceName plumbing.ReferenceName
}

// FetchOptions configures a fetch. RemoteName defaults to "origin".
type FetchOptions struct {
	RemoteName string
	Auth       Auth
	Depth      int
}

// PullOptions configures a pull. RemoteName defaults to "origin".
type PullOptions struct {
	RemoteName string
	Auth       Auth
}

// PushOptions configures a push. RemoteName defaults to "origin".
type PushOptions struct {
	RemoteName string
	RefSpecs   []string
	Auth       Auth
	Force      bool
}

// CommitOptions configures CreateCommit.
type CommitOptions struct {
	Author     string
	Email      string
	Message    string
	AllowEmpty bool
}

// RemoteOptions configures AddRemote.
type RemoteOptions struct {
	Name string
	URL  string
}
