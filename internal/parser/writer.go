package parser

import (
	"context"
	"fmt"

	"github.com/indaco/cargotag/internal/core"
	"github.com/indaco/cargotag/internal/semver"
)

// Writer stores a new version into manifests.
type Writer struct {
	fs core.FileSystem
}

// NewWriter creates a new Writer with the given filesystem.
func NewWriter(fs core.FileSystem) *Writer {
	return &Writer{fs: fs}
}

// Write sets the version field of the entry's document and overwrites the
// file with the full document. The file keeps its current permissions.
// On success the entry reports the new version.
func (w *Writer) Write(ctx context.Context, e *Entry, version semver.Version) error {
	if e == nil || e.Document == nil {
		return fmt.Errorf("%w: no document loaded", core.ErrManifest)
	}

	if err := e.Document.SetVersion(version.String()); err != nil {
		return fmt.Errorf("failed to set version in %q: %w", e.Path, err)
	}

	perm := core.PermManifest
	if info, err := w.fs.Stat(ctx, e.Path); err == nil {
		perm = info.Mode().Perm()
	}

	if err := w.fs.WriteFile(ctx, e.Path, e.Document.Bytes(), perm); err != nil {
		return fmt.Errorf("%w: failed to write %q: %w", core.ErrManifest, e.Path, err)
	}

	e.Version = version
	return nil
}

// WriteAll writes every entry of c in order and returns the paths written
// before the first failure. Files already written are left in place.
func (w *Writer) WriteAll(ctx context.Context, c *Collection, version semver.Version) ([]string, error) {
	written := make([]string, 0, c.Len())
	for _, e := range c.Entries() {
		if err := w.Write(ctx, e, version); err != nil {
			return written, err
		}
		written = append(written, e.Path)
	}
	return written, nil
}
