package discovery

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/indaco/cargotag/internal/core"
)

// Locator discovers manifests and the repository root.
type Locator struct {
	fs core.FileSystem
}

// NewLocator creates a Locator backed by fs.
func NewLocator(fs core.FileSystem) *Locator {
	return &Locator{fs: fs}
}

// Locate runs the ascend phase from start and, when opts.ScanSubdirs is set,
// the descend phase below start. It fails with core.ErrDiscovery when no
// manifest is found or no repository root exists above start.
func (l *Locator) Locate(ctx context.Context, start string, opts Options) (*Result, error) {
	if !filepath.IsAbs(start) {
		abs, err := filepath.Abs(start)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", core.ErrPath, err)
		}
		start = abs
	}
	start = filepath.Clean(start)

	names := opts.ManifestNames
	if len(names) == 0 {
		names = DefaultManifestNames
	}

	result := &Result{}

	root, manifests, err := l.ascend(ctx, start, names)
	if err != nil {
		return nil, err
	}
	result.RepoRoot = root
	result.Manifests = manifests

	if opts.ScanSubdirs {
		below, err := l.descend(ctx, start, names, opts.Exclude)
		if err != nil {
			return nil, err
		}
		result.Manifests = append(result.Manifests, below...)
	}

	if len(result.Manifests) == 0 {
		return result, fmt.Errorf("%w: no manifest (%s) found from %s", core.ErrDiscovery, joinNames(names), start)
	}
	if !result.HasRepoRoot() {
		return result, fmt.Errorf("%w: could not find git base path above %s", core.ErrDiscovery, start)
	}

	return result, nil
}

// ascend checks each directory from start up to the filesystem root for
// manifests, recording every configured name present in configured order, and
// stops at the first directory holding a .git directory.
func (l *Locator) ascend(ctx context.Context, start string, names []string) (string, []string, error) {
	var manifests []string

	for dir := start; ; {
		if err := ctx.Err(); err != nil {
			return "", nil, err
		}

		for _, name := range names {
			candidate := filepath.Join(dir, name)
			if l.isFile(ctx, candidate) {
				manifests = append(manifests, candidate)
			}
		}

		if l.isDir(ctx, filepath.Join(dir, GitDirName)) {
			return dir, manifests, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", manifests, nil
		}
		dir = parent
	}
}

// descend collects manifests strictly below start, depth first.
func (l *Locator) descend(ctx context.Context, start string, names, excludes []string) ([]string, error) {
	var found []string
	err := l.walk(ctx, start, false, names, excludes, &found)
	return found, err
}

func (l *Locator) walk(ctx context.Context, dir string, below bool, names, excludes []string, found *[]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := l.fs.ReadDir(ctx, dir)
	if err != nil {
		if !below {
			return fmt.Errorf("%w: cannot read %s: %w", core.ErrDiscovery, dir, err)
		}
		// Skip subdirectories we can't read
		return nil
	}

	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)

		if entry.IsDir() {
			if shouldExclude(name, path, excludes) {
				continue
			}
			if err := l.walk(ctx, path, true, names, excludes, found); err != nil {
				return err
			}
			continue
		}

		if below && slices.Contains(names, name) {
			*found = append(*found, path)
		}
	}

	return nil
}

// shouldExclude reports whether the descend phase must skip a directory.
func shouldExclude(name, path string, excludes []string) bool {
	if name == GitDirName {
		return true
	}
	for _, pattern := range excludes {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, path); matched {
			return true
		}
	}
	return false
}

func (l *Locator) isFile(ctx context.Context, path string) bool {
	info, err := l.fs.Stat(ctx, path)
	return err == nil && info.Mode().IsRegular()
}

func (l *Locator) isDir(ctx context.Context, path string) bool {
	info, err := l.fs.Stat(ctx, path)
	return err == nil && info.IsDir()
}

func joinNames(names []string) string {
	if len(names) == 1 {
		return names[0]
	}
	return fmt.Sprintf("%v", names)
}
