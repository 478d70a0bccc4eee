package discovery

// GitDirName is the repository metadata directory that marks the repository root.
const GitDirName = ".git"

// DefaultManifestNames are the manifest file names looked for when none are configured.
var DefaultManifestNames = []string{"Cargo.toml"}

// Options configures Locate.
type Options struct {
	// ScanSubdirs enables the descend phase below the start directory.
	ScanSubdirs bool

	// ManifestNames are the file names treated as manifests.
	// Empty means DefaultManifestNames.
	ManifestNames []string

	// Exclude holds filepath.Match patterns for directories the descend
	// phase must not enter. Patterns are matched against the directory name
	// and its full path.
	Exclude []string
}

// Result is the outcome of Locate.
type Result struct {
	// Manifests lists manifest paths: the ascend-phase matches from the start
	// directory upwards, then descend-phase matches in depth-first order.
	Manifests []string

	// RepoRoot is the directory containing the .git directory.
	RepoRoot string
}

// HasRepoRoot returns true if the ascend phase found the repository root.
func (r *Result) HasRepoRoot() bool {
	return r.RepoRoot != ""
}

// Mismatch represents a manifest whose version differs from the expected one.
type Mismatch struct {
	// Source is the manifest path.
	Source string

	// ExpectedVersion is the version of the first manifest.
	ExpectedVersion string

	// ActualVersion is the version found in Source.
	ActualVersion string
}
