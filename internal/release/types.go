package release

import (
	"fmt"

	"github.com/indaco/cargotag/internal/discovery"
	"github.com/indaco/cargotag/internal/semver"
)

// DefaultTagPrefix is prepended to the version to form the release tag.
const DefaultTagPrefix = "v"

// Mode selects how the new version is computed.
type Mode int

const (
	// ModeFixed writes a literal version.
	ModeFixed Mode = iota
	// ModeIncrement bumps one part of the current version.
	ModeIncrement
	// ModeOnlyShow is accepted but not implemented.
	ModeOnlyShow
)

func (m Mode) String() string {
	switch m {
	case ModeFixed:
		return "fixed"
	case ModeIncrement:
		return "increment"
	case ModeOnlyShow:
		return "only-show"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Stage is the last step a run completed.
type Stage int

const (
	StageNone Stage = iota
	StageLocated
	StageSelected
	StageVersionComputed
	StagePreflightChecked
	StageWritten
	StageCommitted
	StageTagged
	StagePushed
	StageDone
)

var stageNames = [...]string{
	StageNone:             "none",
	StageLocated:          "located",
	StageSelected:         "selected",
	StageVersionComputed:  "version computed",
	StagePreflightChecked: "preflight checked",
	StageWritten:          "written",
	StageCommitted:        "committed",
	StageTagged:           "tagged",
	StagePushed:           "pushed",
	StageDone:             "done",
}

func (s Stage) String() string {
	if s >= 0 && int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// Options describes one release run.
type Options struct {
	// Path is the start directory for manifest discovery.
	Path string

	ScanSubdirs   bool
	Selector      discovery.Selector
	ManifestNames []string
	Exclude       []string

	Mode Mode
	// FixedVersion is the version text for ModeFixed.
	FixedVersion string
	// Part is the component bumped by ModeIncrement.
	Part semver.Part

	// TagPrefix defaults to DefaultTagPrefix when empty.
	TagPrefix  string
	TagMessage string
	// RemoteName is passed to the repository opener; empty means its default.
	RemoteName string

	// DoPush is recorded for the log only; the push always runs.
	DoPush bool
}

func (o Options) tagPrefix() string {
	if o.TagPrefix == "" {
		return DefaultTagPrefix
	}
	return o.TagPrefix
}

// Result reports what a run did, including when it failed part way.
type Result struct {
	Stage Stage

	RepoRoot  string
	Manifests []string

	// OldVersion is the version shared by the selected manifests, or the
	// first manifest's version when they differ.
	OldVersion semver.Version
	NewVersion semver.Version

	Tag    string
	Commit string

	// Written lists the manifests rewritten on disk.
	Written []string

	// PushedRefs lists the refs sent to the remote.
	PushedRefs []string
}
