package release

import "context"

// Repository is the version-control surface a release needs.
type Repository interface {
	Root() string
	RemoteName() string
	// PendingChanges counts tracked files with uncommitted changes.
	PendingChanges() (int, error)
	// TagNames lists tag names matching a glob such as "v*".
	TagNames(pattern string) ([]string, error)
	Stage(paths ...string) error
	// Commit commits the index on top of HEAD and returns the commit hash.
	Commit(message string) (string, error)
	CreateTag(name, commit, message string) error
	// HeadRef returns the full ref name of the current branch.
	HeadRef() (string, error)
	Push(ctx context.Context, refs ...string) error
}

// Opener opens the repository rooted at root using the named remote.
type Opener func(root, remoteName string) (Repository, error)
