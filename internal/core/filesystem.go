package core

import (
	"context"
	"io/fs"
	"os"
)

// File permission constants.
const (
	// PermOwnerRW is read/write for the owner only.
	PermOwnerRW os.FileMode = 0o600

	// PermManifest is the mode used when a manifest's current mode cannot be read.
	PermManifest os.FileMode = 0o644
)

// FileSystem abstracts the file operations discovery and the manifest
// reader/writer need, so both can be tested without touching disk.
type FileSystem interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, data []byte, perm os.FileMode) error
	Stat(ctx context.Context, path string) (fs.FileInfo, error)
	ReadDir(ctx context.Context, path string) ([]fs.DirEntry, error)
}

// OSFileSystem implements FileSystem on top of the os package.
type OSFileSystem struct{}

// NewOSFileSystem returns the production filesystem.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

var _ FileSystem = (*OSFileSystem)(nil)

func (OSFileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

func (OSFileSystem) WriteFile(ctx context.Context, path string, data []byte, perm os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.WriteFile(path, data, perm)
}

func (OSFileSystem) Stat(ctx context.Context, path string) (fs.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Stat(path)
}

func (OSFileSystem) ReadDir(ctx context.Context, path string) ([]fs.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadDir(path)
}
