package git

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/indaco/cargotag/internal/core"
)

// DefaultRemote is the remote pushed to when none is configured.
const DefaultRemote = "origin"

// OpenOptions configures Open.
type OpenOptions struct {
	// RemoteName is the remote to push to. Empty means DefaultRemote.
	RemoteName string

	// Credentials resolves push authentication. Nil means NewCredentialProvider().
	Credentials CredentialProvider

	// Now returns the time stamped on commits and tags. Nil means time.Now.
	Now func() time.Time
}

// Repository is an opened, non-bare git repository with its push remote and
// commit identity resolved.
type Repository struct {
	repo       *gogit.Repository
	worktree   *gogit.Worktree
	root       string
	remoteName string
	remoteURL  string
	name       string
	email      string
	creds      CredentialProvider
	now        func() time.Time
}

// Open opens the repository at root, looks up the remote and reads the
// commit identity (user.name and user.email) from the git configuration.
func Open(root string, opts OpenOptions) (*Repository, error) {
	repo, err := gogit.PlainOpen(root)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open git repo at %s: %w", core.ErrGitOperation, root, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		if errors.Is(err, gogit.ErrIsBareRepository) {
			return nil, fmt.Errorf("%w: cannot use bare repository %s", core.ErrGitOperation, root)
		}
		return nil, fmt.Errorf("%w: failed to open worktree: %w", core.ErrGitOperation, err)
	}

	remoteName := opts.RemoteName
	if remoteName == "" {
		remoteName = DefaultRemote
	}
	remote, err := repo.Remote(remoteName)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to find git remote '%s': %w", core.ErrGitOperation, remoteName, err)
	}
	var remoteURL string
	if urls := remote.Config().URLs; len(urls) > 0 {
		remoteURL = urls[0]
	}

	cfg, err := repo.ConfigScoped(config.GlobalScope)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read git config: %w", core.ErrGitOperation, err)
	}
	if cfg.User.Name == "" || cfg.User.Email == "" {
		return nil, fmt.Errorf("%w: git identity not configured (set user.name and user.email)", core.ErrGitOperation)
	}

	creds := opts.Credentials
	if creds == nil {
		creds = NewCredentialProvider()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Repository{
		repo:       repo,
		worktree:   wt,
		root:       root,
		remoteName: remoteName,
		remoteURL:  remoteURL,
		name:       cfg.User.Name,
		email:      cfg.User.Email,
		creds:      creds,
		now:        now,
	}, nil
}

// Root returns the repository root directory.
func (r *Repository) Root() string { return r.root }

// RemoteName returns the name of the push remote.
func (r *Repository) RemoteName() string { return r.remoteName }

// RemoteURL returns the first URL configured for the push remote.
func (r *Repository) RemoteURL() string { return r.remoteURL }

// Identity returns the configured "Name <email>" used for commits and tags.
func (r *Repository) Identity() string {
	return fmt.Sprintf("%s <%s>", r.name, r.email)
}

func (r *Repository) signature() *object.Signature {
	return &object.Signature{Name: r.name, Email: r.email, When: r.now()}
}

// PendingChanges returns the number of tracked files with staged or
// unstaged changes. Untracked files are not counted.
func (r *Repository) PendingChanges() (int, error) {
	status, err := r.worktree.Status()
	if err != nil {
		return 0, fmt.Errorf("%w: failed to read status: %w", core.ErrGitOperation, err)
	}

	count := 0
	for _, s := range status {
		if s.Staging == gogit.Untracked && s.Worktree == gogit.Untracked {
			continue
		}
		if s.Staging == gogit.Unmodified && s.Worktree == gogit.Unmodified {
			continue
		}
		count++
	}
	return count, nil
}

// TagNames returns the short names of all tags matching the glob pattern
// (path.Match syntax, e.g. "v*").
func (r *Repository) TagNames(pattern string) ([]string, error) {
	if _, err := path.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("%w: invalid tag pattern %q: %w", core.ErrGitOperation, pattern, err)
	}

	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list tags: %w", core.ErrGitOperation, err)
	}

	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		if ok, _ := path.Match(pattern, name); ok {
			names = append(names, name)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list tags: %w", core.ErrGitOperation, err)
	}
	return names, nil
}

// Stage adds the given files to the index. Paths may be absolute or
// relative to the repository root but must lie inside it.
func (r *Repository) Stage(paths ...string) error {
	for _, p := range paths {
		rel, err := r.relative(p)
		if err != nil {
			return err
		}
		if _, err := r.worktree.Add(rel); err != nil {
			return fmt.Errorf("%w: failed to stage %s: %w", core.ErrGitOperation, rel, err)
		}
	}
	return nil
}

func (r *Repository) relative(p string) (string, error) {
	rel := p
	if filepath.IsAbs(p) {
		var err error
		rel, err = filepath.Rel(r.root, p)
		if err != nil {
			return "", fmt.Errorf("%w: %s is not inside %s: %w", core.ErrGitOperation, p, r.root, err)
		}
	}
	rel = filepath.Clean(rel)
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s is outside the repository %s", core.ErrGitOperation, p, r.root)
	}
	return filepath.ToSlash(rel), nil
}

// HeadRef returns the full name of the branch HEAD points to.
func (r *Repository) HeadRef() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("%w: failed to resolve HEAD: %w", core.ErrGitOperation, err)
	}
	if !head.Name().IsBranch() {
		return "", fmt.Errorf("%w: HEAD is detached, checkout a branch first", core.ErrGitOperation)
	}
	return head.Name().String(), nil
}

// Commit records the index as a new commit whose sole parent is the current
// HEAD, authored and committed with the configured identity. It returns the
// new commit hash.
func (r *Repository) Commit(message string) (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("%w: failed to resolve HEAD: %w", core.ErrGitOperation, err)
	}

	sig := r.signature()
	hash, err := r.worktree.Commit(message, &gogit.CommitOptions{
		Author:            sig,
		Committer:         sig,
		Parents:           []plumbing.Hash{head.Hash()},
		AllowEmptyCommits: true,
	})
	if err != nil {
		return "", fmt.Errorf("%w: failed to commit: %w", core.ErrGitOperation, err)
	}
	return hash.String(), nil
}

// CreateTag creates an annotated tag named name at commit.
func (r *Repository) CreateTag(name, commit, message string) error {
	hash := plumbing.NewHash(commit)
	if hash.IsZero() {
		return fmt.Errorf("%w: invalid commit %q for tag %s", core.ErrGitOperation, commit, name)
	}

	_, err := r.repo.CreateTag(name, hash, &gogit.CreateTagOptions{
		Tagger:  r.signature(),
		Message: message,
	})
	if err != nil {
		return fmt.Errorf("%w: error adding git tag %s: %w", core.ErrGitOperation, name, err)
	}
	return nil
}

// Push pushes the given full ref names (e.g. "refs/heads/main",
// "refs/tags/v1.0.0") to the remote in one call. No timeout is applied
// beyond whatever ctx carries.
func (r *Repository) Push(ctx context.Context, refs ...string) error {
	specs := make([]config.RefSpec, 0, len(refs))
	for _, ref := range refs {
		spec := config.RefSpec(ref + ":" + ref)
		if err := spec.Validate(); err != nil {
			return fmt.Errorf("%w: invalid ref %q: %w", core.ErrGitOperation, ref, err)
		}
		specs = append(specs, spec)
	}

	auth, err := r.creds.Auth(ctx, r.remoteURL)
	if err != nil {
		return fmt.Errorf("%w: failed to resolve credentials for %s: %w", core.ErrGitOperation, r.remoteName, err)
	}

	err = r.repo.PushContext(ctx, &gogit.PushOptions{
		RemoteName: r.remoteName,
		RefSpecs:   specs,
		Auth:       auth,
	})
	if err != nil && !errors.Is(err, gogit.NoErrAlreadyUpToDate) {
		return fmt.Errorf("%w: error pushing to git remote '%s': %w", core.ErrGitOperation, r.remoteName, err)
	}
	return nil
}
