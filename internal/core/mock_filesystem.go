package core

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"
)

// MockFileSystem is an in-memory FileSystem for tests. Directories are implied
// by the files stored below them and can also be added explicitly.
type MockFileSystem struct {
	mu    sync.Mutex
	files map[string][]byte
	modes map[string]os.FileMode
	dirs  map[string]bool

	// WriteErrors makes WriteFile fail for the given paths.
	WriteErrors map[string]error
	// ReadErrors makes ReadFile fail for the given paths.
	ReadErrors map[string]error
}

// NewMockFileSystem creates an empty in-memory filesystem rooted at "/".
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files:       make(map[string][]byte),
		modes:       make(map[string]os.FileMode),
		dirs:        map[string]bool{string(filepath.Separator): true},
		WriteErrors: make(map[string]error),
		ReadErrors:  make(map[string]error),
	}
}

var _ FileSystem = (*MockFileSystem)(nil)

// SetFile stores a file and creates its parent directories.
func (m *MockFileSystem) SetFile(path string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	path = filepath.Clean(path)
	m.files[path] = slices.Clone(data)
	m.modes[path] = PermManifest
	m.addParents(path)
}

// MkdirAll registers a directory and its parents.
func (m *MockFileSystem) MkdirAll(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	path = filepath.Clean(path)
	m.dirs[path] = true
	m.addParents(path)
}

// GetFile returns the stored content of path.
func (m *MockFileSystem) GetFile(path string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[filepath.Clean(path)]
	return slices.Clone(data), ok
}

func (m *MockFileSystem) addParents(path string) {
	for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
		m.dirs[dir] = true
		if dir == filepath.Dir(dir) {
			return
		}
	}
}

func (m *MockFileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	path = filepath.Clean(path)
	if err, ok := m.ReadErrors[path]; ok {
		return nil, err
	}
	data, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return slices.Clone(data), nil
}

func (m *MockFileSystem) WriteFile(ctx context.Context, path string, data []byte, perm os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	path = filepath.Clean(path)
	if err, ok := m.WriteErrors[path]; ok {
		return err
	}
	if !m.dirs[filepath.Dir(path)] {
		return &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	m.files[path] = slices.Clone(data)
	m.modes[path] = perm
	return nil
}

func (m *MockFileSystem) Stat(ctx context.Context, path string) (fs.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	path = filepath.Clean(path)
	if data, ok := m.files[path]; ok {
		return mockFileInfo{name: filepath.Base(path), size: int64(len(data)), mode: m.modes[path]}, nil
	}
	if m.dirs[path] {
		return mockFileInfo{name: filepath.Base(path), mode: fs.ModeDir | 0o755}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
}

func (m *MockFileSystem) ReadDir(ctx context.Context, path string) ([]fs.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	path = filepath.Clean(path)
	if !m.dirs[path] {
		return nil, &fs.PathError{Op: "readdir", Path: path, Err: fs.ErrNotExist}
	}

	seen := make(map[string]fs.DirEntry)
	for name, data := range m.files {
		if filepath.Dir(name) == path {
			info := mockFileInfo{name: filepath.Base(name), size: int64(len(data)), mode: m.modes[name]}
			seen[info.name] = fs.FileInfoToDirEntry(info)
		}
	}
	for dir := range m.dirs {
		if dir != path && filepath.Dir(dir) == path {
			info := mockFileInfo{name: filepath.Base(dir), mode: fs.ModeDir | 0o755}
			seen[info.name] = fs.FileInfoToDirEntry(info)
		}
	}

	entries := make([]fs.DirEntry, 0, len(seen))
	for _, e := range seen {
		entries = append(entries, e)
	}
	slices.SortFunc(entries, func(a, b fs.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return entries, nil
}

type mockFileInfo struct {
	name string
	size int64
	mode os.FileMode
}

func (i mockFileInfo) Name() string       { return i.name }
func (i mockFileInfo) Size() int64        { return i.size }
func (i mockFileInfo) Mode() os.FileMode  { return i.mode }
func (i mockFileInfo) ModTime() time.Time { return time.Time{} }
func (i mockFileInfo) IsDir() bool        { return i.mode.IsDir() }
func (i mockFileInfo) Sys() any           { return nil }
