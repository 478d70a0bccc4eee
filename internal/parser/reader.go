package parser

import (
	"context"
	"fmt"

	"github.com/indaco/cargotag/internal/core"
	"github.com/indaco/cargotag/internal/semver"
)

// Reader loads manifests into entries.
type Reader struct {
	fs core.FileSystem
}

// NewReader creates a new Reader with the given filesystem.
func NewReader(fs core.FileSystem) *Reader {
	return &Reader{fs: fs}
}

// Read loads a single manifest. The format and version field are derived
// from the file name.
func (r *Reader) Read(ctx context.Context, path string) (*Entry, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: file path is required", core.ErrManifest)
	}

	format, ok := FormatForFile(path)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported manifest %q", core.ErrManifest, path)
	}

	data, err := r.fs.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: could not read %q: %w", core.ErrManifest, path, err)
	}

	doc, err := ParseDocument(data, format, FieldForFile(path))
	if err != nil {
		return nil, fmt.Errorf("could not parse %q: %w", path, err)
	}

	version, err := semver.ParseVersion(doc.Version())
	if err != nil {
		return nil, fmt.Errorf("could not parse version from %q: %w", path, err)
	}

	return &Entry{Path: path, Version: version, Document: doc}, nil
}

// ReadAll loads every path in order and stops at the first failure.
func (r *Reader) ReadAll(ctx context.Context, paths []string) (*Collection, error) {
	c := NewCollection()
	for _, path := range paths {
		e, err := r.Read(ctx, path)
		if err != nil {
			return nil, err
		}
		if err := c.Add(e); err != nil {
			return nil, fmt.Errorf("%w: %w", core.ErrManifest, err)
		}
	}
	return c, nil
}
