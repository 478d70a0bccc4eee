package core

import "errors"

// Error kinds for a release run. Packages wrap these with fmt.Errorf("%w: ...")
// so callers can classify a failure with errors.Is.
var (
	// ErrPath is returned when the start path is missing or not a directory.
	ErrPath = errors.New("invalid path")

	// ErrDiscovery is returned when no manifest or no repository root is found.
	ErrDiscovery = errors.New("discovery failed")

	// ErrManifest is returned when a manifest cannot be read, parsed or written.
	ErrManifest = errors.New("manifest error")

	// ErrSelection is returned when several manifests were found and no selector was given.
	ErrSelection = errors.New("ambiguous manifest selection")

	// ErrVersionParse is returned for a malformed version string.
	ErrVersionParse = errors.New("invalid version")

	// ErrConsistency is returned when an increment spans manifests with different versions.
	ErrConsistency = errors.New("inconsistent manifest versions")

	// ErrDirtyWorkingTree is returned when tracked files have uncommitted changes.
	ErrDirtyWorkingTree = errors.New("working tree has uncommitted changes")

	// ErrDuplicateTag is returned when the release tag already exists.
	ErrDuplicateTag = errors.New("tag already exists")

	// ErrGitOperation wraps any failure of the underlying repository.
	ErrGitOperation = errors.New("git operation failed")

	// ErrUnimplemented is returned by modes that are accepted but not implemented.
	ErrUnimplemented = errors.New("not implemented")

	// ErrConfig is returned for an unreadable or invalid configuration file.
	ErrConfig = errors.New("invalid configuration")
)

// Kinds lists every error kind in reporting order.
var Kinds = []error{
	ErrPath,
	ErrDiscovery,
	ErrManifest,
	ErrSelection,
	ErrVersionParse,
	ErrConsistency,
	ErrDirtyWorkingTree,
	ErrDuplicateTag,
	ErrGitOperation,
	ErrUnimplemented,
	ErrConfig,
}

// KindOf returns the error kind err wraps, or nil if it wraps none.
func KindOf(err error) error {
	for _, kind := range Kinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
