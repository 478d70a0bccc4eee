package testutils

import (
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Test identity written to the repository config by NewGitRepo.
const (
	GitUserName  = "Release Bot"
	GitUserEmail = "release@example.com"
)

// GitRepo is a throwaway repository with a bare remote named "origin".
type GitRepo struct {
	Dir    string
	Remote string
	Repo   *gogit.Repository
}

// IsolateGitConfig points HOME and XDG_CONFIG_HOME at an empty directory so
// the user's global git config does not leak into a test.
func IsolateGitConfig(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
}

// NewGitRepo initializes a repository on branch main with a local identity,
// an "origin" remote pointing at a fresh bare repository, and the given files
// committed as the initial commit. Keys of files are slash-separated paths
// relative to the repository root.
func NewGitRepo(t *testing.T, files map[string]string) *GitRepo {
	t.Helper()
	IsolateGitConfig(t)

	dir := t.TempDir()
	remoteDir := t.TempDir()

	if _, err := gogit.PlainInit(remoteDir, true); err != nil {
		t.Fatalf("failed to init bare remote: %v", err)
	}

	repo, err := gogit.PlainInitWithOptions(dir, &gogit.PlainInitOptions{
		InitOptions: gogit.InitOptions{DefaultBranch: plumbing.NewBranchReferenceName("main")},
	})
	if err != nil {
		t.Fatalf("failed to init repo: %v", err)
	}

	cfg, err := repo.Config()
	if err != nil {
		t.Fatalf("failed to read repo config: %v", err)
	}
	cfg.User.Name = GitUserName
	cfg.User.Email = GitUserEmail
	if err := repo.SetConfig(cfg); err != nil {
		t.Fatalf("failed to write repo config: %v", err)
	}

	if _, err := repo.CreateRemote(&config.RemoteConfig{Name: "origin", URLs: []string{remoteDir}}); err != nil {
		t.Fatalf("failed to add remote: %v", err)
	}

	g := &GitRepo{Dir: dir, Remote: remoteDir, Repo: repo}

	if files == nil {
		files = map[string]string{"README.md": "# test\n"}
	}
	for rel, content := range files {
		WriteFile(t, dir, rel, content)
	}
	g.CommitAll(t, "initial commit")
	return g
}

// CommitAll stages every file in the worktree and commits it.
func (g *GitRepo) CommitAll(t *testing.T, message string) plumbing.Hash {
	t.Helper()
	wt, err := g.Repo.Worktree()
	if err != nil {
		t.Fatalf("failed to open worktree: %v", err)
	}
	if err := wt.AddWithOptions(&gogit.AddOptions{All: true}); err != nil {
		t.Fatalf("failed to stage files: %v", err)
	}
	sig := &object.Signature{Name: GitUserName, Email: GitUserEmail, When: time.Now()}
	hash, err := wt.Commit(message, &gogit.CommitOptions{Author: sig, Committer: sig})
	if err != nil {
		t.Fatalf("failed to commit: %v", err)
	}
	return hash
}

// Tag creates a lightweight tag at HEAD.
func (g *GitRepo) Tag(t *testing.T, name string) {
	t.Helper()
	head, err := g.Repo.Head()
	if err != nil {
		t.Fatalf("failed to resolve HEAD: %v", err)
	}
	if _, err := g.Repo.CreateTag(name, head.Hash(), nil); err != nil {
		t.Fatalf("failed to create tag %s: %v", name, err)
	}
}

// OpenRemote opens the bare remote repository.
func (g *GitRepo) OpenRemote(t *testing.T) *gogit.Repository {
	t.Helper()
	remote, err := gogit.PlainOpen(g.Remote)
	if err != nil {
		t.Fatalf("failed to open remote: %v", err)
	}
	return remote
}
