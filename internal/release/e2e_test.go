package release

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/indaco/cargotag/internal/core"
	"github.com/indaco/cargotag/internal/discovery"
	"github.com/indaco/cargotag/internal/git"
	"github.com/indaco/cargotag/internal/semver"
	"github.com/indaco/cargotag/internal/testutils"
)

type localCredentials struct{}

func (localCredentials) Auth(context.Context, string) (transport.AuthMethod, error) { return nil, nil }

func gitOpener(root, remote string) (Repository, error) {
	repo, err := git.Open(root, git.OpenOptions{RemoteName: remote, Credentials: localCredentials{}})
	if err != nil {
		return nil, err
	}
	return repo, nil
}

func TestRelease_EndToEnd_IncrementPatch(t *testing.T) {
	g := testutils.NewGitRepo(t, map[string]string{
		"Cargo.toml": testutils.CargoManifest("demo", "0.3.9"),
	})

	r := New(core.NewOSFileSystem(), gitOpener)
	res, err := r.Run(context.Background(), Options{
		Path:       g.Dir,
		Mode:       ModeIncrement,
		Part:       semver.PartPatch,
		TagMessage: "Release 0.3.10",
		DoPush:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, StageDone, res.Stage)
	assert.Equal(t, "v0.3.10", res.Tag)

	manifest := testutils.ReadFile(t, filepath.Join(g.Dir, "Cargo.toml"))
	assert.Equal(t, testutils.CargoManifest("demo", "0.3.10"), manifest)

	head, err := g.Repo.Head()
	require.NoError(t, err)
	assert.Equal(t, res.Commit, head.Hash().String())

	commit, err := g.Repo.CommitObject(head.Hash())
	require.NoError(t, err)
	assert.Equal(t, "Changed version in manifests to '0.3.10' by incrementing patch", strings.TrimSpace(commit.Message))

	remote := g.OpenRemote(t)
	branch, err := remote.Reference(plumbing.NewBranchReferenceName("main"), true)
	require.NoError(t, err)
	assert.Equal(t, res.Commit, branch.Hash().String())

	tagRef, err := remote.Tag("v0.3.10")
	require.NoError(t, err)
	tag, err := remote.TagObject(tagRef.Hash())
	require.NoError(t, err)
	assert.Equal(t, "Release 0.3.10", strings.TrimSpace(tag.Message))
	assert.Equal(t, res.Commit, tag.Target.String())
}

func TestRelease_EndToEnd_StartInSubdirectory(t *testing.T) {
	g := testutils.NewGitRepo(t, map[string]string{
		"Cargo.toml":             testutils.CargoManifest("ws", "1.0.0"),
		"crates/core/Cargo.toml": testutils.CargoManifest("core", "1.0.0"),
	})

	r := New(core.NewOSFileSystem(), gitOpener)
	res, err := r.Run(context.Background(), Options{
		Path:         filepath.Join(g.Dir, "crates", "core"),
		Selector:     discovery.SelectorLeaf,
		Mode:         ModeFixed,
		FixedVersion: "1.1.0",
		TagPrefix:    "core-v",
		TagMessage:   "core 1.1.0",
	})
	require.NoError(t, err)
	assert.Equal(t, "core-v1.1.0", res.Tag)
	assert.Equal(t, []string{filepath.Join(g.Dir, "crates", "core", "Cargo.toml")}, res.Written)

	assert.Contains(t, testutils.ReadFile(t, filepath.Join(g.Dir, "crates", "core", "Cargo.toml")), `version = "1.1.0"`)
	assert.Contains(t, testutils.ReadFile(t, filepath.Join(g.Dir, "Cargo.toml")), `version = "1.0.0"`)
}

func TestRelease_EndToEnd_DuplicateTag(t *testing.T) {
	original := testutils.CargoManifest("demo", "1.0.0")
	g := testutils.NewGitRepo(t, map[string]string{"Cargo.toml": original})
	g.Tag(t, "v1.0.1")

	res, err := New(core.NewOSFileSystem(), gitOpener).Run(context.Background(), Options{
		Path:       g.Dir,
		Mode:       ModeIncrement,
		Part:       semver.PartPatch,
		TagMessage: "dup",
	})
	require.ErrorIs(t, err, core.ErrDuplicateTag)
	assert.Equal(t, StageVersionComputed, res.Stage)
	assert.Equal(t, original, testutils.ReadFile(t, filepath.Join(g.Dir, "Cargo.toml")))
}

func TestRelease_EndToEnd_DirtyTree(t *testing.T) {
	original := testutils.CargoManifest("demo", "1.0.0")
	g := testutils.NewGitRepo(t, map[string]string{
		"Cargo.toml": original,
		"src/lib.rs": "pub fn a() {}\n",
	})
	testutils.WriteFile(t, g.Dir, "src/lib.rs", "pub fn b() {}\n")

	_, err := New(core.NewOSFileSystem(), gitOpener).Run(context.Background(), Options{
		Path:       g.Dir,
		Mode:       ModeIncrement,
		Part:       semver.PartMinor,
		TagMessage: "dirty",
	})
	require.ErrorIs(t, err, core.ErrDirtyWorkingTree)
	assert.Equal(t, original, testutils.ReadFile(t, filepath.Join(g.Dir, "Cargo.toml")))
}
