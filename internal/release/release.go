package release

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/indaco/cargotag/internal/core"
	"github.com/indaco/cargotag/internal/discovery"
	"github.com/indaco/cargotag/internal/logging"
	"github.com/indaco/cargotag/internal/parser"
	"github.com/indaco/cargotag/internal/semver"
)

// Option customizes a Releaser.
type Option func(*Releaser)

// WithReporter sets the progress reporter.
func WithReporter(rep Reporter) Option {
	return func(r *Releaser) { r.reporter = rep }
}

// WithLogger sets the logger used for verbose detail.
func WithLogger(l *logging.Logger) Option {
	return func(r *Releaser) { r.logger = l }
}

// Releaser runs release transactions.
type Releaser struct {
	locator  *discovery.Locator
	reader   *parser.Reader
	writer   *parser.Writer
	open     Opener
	reporter Reporter
	logger   *logging.Logger
}

// New creates a Releaser reading and writing manifests through fs and
// opening repositories with open.
func New(fs core.FileSystem, open Opener, opts ...Option) *Releaser {
	r := &Releaser{
		locator:  discovery.NewLocator(fs),
		reader:   parser.NewReader(fs),
		writer:   parser.NewWriter(fs),
		open:     open,
		reporter: NopReporter,
		logger:   logging.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Run executes the release described by opts. The returned Result is never
// nil; on error its Stage is the last stage that completed.
func (r *Releaser) Run(ctx context.Context, opts Options) (*Result, error) {
	res := &Result{}
	log := r.logger.WithComponent("release")

	log.Info().Str("path", opts.Path).Bool("do_push", opts.DoPush).Msg("starting release")
	if !opts.DoPush {
		log.Warn().Msg("--do-push=false is accepted but the push still runs")
	}

	// Step 1: manifests, repository root and remote.
	r.reporter.Begin(StepAnalyse)

	located, err := r.locator.Locate(ctx, opts.Path, discovery.Options{
		ScanSubdirs:   opts.ScanSubdirs,
		ManifestNames: opts.ManifestNames,
		Exclude:       opts.Exclude,
	})
	if err != nil {
		return res, err
	}
	res.RepoRoot = located.RepoRoot
	res.Stage = StageLocated
	r.reporter.Detail("Found git base path: %s", located.RepoRoot)
	r.reporter.Detail("Found manifest(s):")
	for _, m := range located.Manifests {
		r.reporter.Detail(" - %s", m)
	}

	selected, err := discovery.Select(located.Manifests, opts.Selector)
	if err != nil {
		return res, err
	}
	res.Manifests = selected
	res.Stage = StageSelected
	switch opts.Selector {
	case discovery.SelectorLeaf, discovery.SelectorBase:
		r.reporter.Detail("  -> using %s: %s", opts.Selector, selected[0])
	case discovery.SelectorAll:
		r.reporter.Detail("  -> using all.")
	}

	r.reporter.Detail("Opening git repo ...")
	repo, err := r.open(located.RepoRoot, opts.RemoteName)
	if err != nil {
		return res, err
	}
	r.reporter.Detail("Found remote to be used: %s", repo.RemoteName())
	r.reporter.End(StepAnalyse)

	// Step 2: versions, preflight checks and manifest rewrite.
	r.reporter.Begin(StepWrite)

	entries, err := r.reader.ReadAll(ctx, selected)
	if err != nil {
		return res, err
	}
	res.OldVersion = entries.Entries()[0].Version

	newVersion, err := computeVersion(entries, opts)
	if err != nil {
		return res, err
	}
	res.NewVersion = newVersion
	res.Tag = opts.tagPrefix() + newVersion.String()
	res.Stage = StageVersionComputed
	r.reporter.Detail("New version to be written: %s", newVersion)
	if newVersion.Compare(res.OldVersion) <= 0 {
		log.Warn().
			Str("current", res.OldVersion.String()).
			Str("new", newVersion.String()).
			Msg("new version does not move forward")
	}

	if err := preflight(repo, opts.tagPrefix(), res.Tag); err != nil {
		return res, err
	}
	res.Stage = StagePreflightChecked
	log.Debug().Str("tag", res.Tag).Msg("preflight checks passed")

	written, err := r.writer.WriteAll(ctx, entries, newVersion)
	res.Written = written
	if err != nil {
		return res, err
	}
	res.Stage = StageWritten
	r.reporter.End(StepWrite)

	// Step 3: commit exactly the rewritten manifests.
	r.reporter.Begin(StepCommit)

	if err := repo.Stage(written...); err != nil {
		return res, err
	}
	commit, err := repo.Commit(CommitMessage(opts.Mode, newVersion, opts.Part))
	if err != nil {
		return res, err
	}
	res.Commit = commit
	res.Stage = StageCommitted
	r.reporter.Detail("Manifest(s) with updated version committed (id: %s)", commit)
	r.reporter.End(StepCommit)

	// Step 4: annotated tag on the new commit.
	r.reporter.Begin(StepTag)

	if err := repo.CreateTag(res.Tag, commit, opts.TagMessage); err != nil {
		return res, err
	}
	res.Stage = StageTagged
	r.reporter.End(StepTag)

	// Step 5: branch and tag in one push.
	r.reporter.Begin(StepPush)

	branch, err := repo.HeadRef()
	if err != nil {
		return res, err
	}
	refs := []string{branch, "refs/tags/" + res.Tag}
	r.reporter.Detail("pushing to remote '%s' with '%s' and '%s'", repo.RemoteName(), refs[0], refs[1])
	if err := repo.Push(ctx, refs...); err != nil {
		return res, err
	}
	res.PushedRefs = refs
	res.Stage = StagePushed
	r.reporter.End(StepPush)

	res.Stage = StageDone
	log.Info().Str("tag", res.Tag).Str("commit", commit).Msg("release done")
	return res, nil
}

func computeVersion(entries *parser.Collection, opts Options) (semver.Version, error) {
	switch opts.Mode {
	case ModeFixed:
		return semver.ParseVersion(opts.FixedVersion)
	case ModeIncrement:
		current, ok := entries.CommonVersion()
		if !ok {
			return semver.Version{}, consistencyError(entries)
		}
		return current.Increment(opts.Part), nil
	case ModeOnlyShow:
		return semver.Version{}, fmt.Errorf("%w: only-show mode", core.ErrUnimplemented)
	default:
		return semver.Version{}, fmt.Errorf("%w: unknown mode %s", core.ErrUnimplemented, opts.Mode)
	}
}

func consistencyError(entries *parser.Collection) error {
	mismatches := discovery.DetectMismatches(entries)
	parts := make([]string, 0, len(mismatches))
	for _, m := range mismatches {
		parts = append(parts, fmt.Sprintf("%s has %s, expected %s", m.Source, m.ActualVersion, m.ExpectedVersion))
	}
	return fmt.Errorf("%w: versions %s differ, use fixed instead of increment (%s)",
		core.ErrConsistency,
		strings.Join(discovery.GetUniqueVersions(entries), ", "),
		strings.Join(parts, "; "))
}

func preflight(repo Repository, prefix, tag string) error {
	pending, err := repo.PendingChanges()
	if err != nil {
		return err
	}
	if pending > 0 {
		return fmt.Errorf("%w: there are %d uncommitted changes, please commit before continuing", core.ErrDirtyWorkingTree, pending)
	}

	tags, err := repo.TagNames(prefix + "*")
	if err != nil {
		return err
	}
	if slices.Contains(tags, tag) {
		return fmt.Errorf("%w: new version already exists as git tag '%s'", core.ErrDuplicateTag, tag)
	}
	return nil
}

// CommitMessage returns the message of the version commit.
func CommitMessage(mode Mode, version semver.Version, part semver.Part) string {
	if mode == ModeIncrement {
		return fmt.Sprintf("Changed version in manifests to '%s' by incrementing %s", version, part)
	}
	return fmt.Sprintf("Changed version in manifests to fixed version '%s'", version)
}
