package release

import (
	"context"
	"fmt"
	"slices"
)

// MockRepository records calls and delegates to optional function fields.
// A nil function field returns the zero value and no error.
type MockRepository struct {
	RootDir string
	Remote  string

	PendingChangesFunc func() (int, error)
	TagNamesFunc       func(pattern string) ([]string, error)
	StageFunc          func(paths ...string) error
	CommitFunc         func(message string) (string, error)
	CreateTagFunc      func(name, commit, message string) error
	HeadRefFunc        func() (string, error)
	PushFunc           func(ctx context.Context, refs ...string) error

	Calls       []string
	Staged      []string
	Messages    []string
	TagsCreated []string
	Pushed      []string
}

var _ Repository = (*MockRepository)(nil)

func (m *MockRepository) Root() string       { return m.RootDir }
func (m *MockRepository) RemoteName() string { return m.Remote }

func (m *MockRepository) PendingChanges() (int, error) {
	m.Calls = append(m.Calls, "PendingChanges")
	if m.PendingChangesFunc != nil {
		return m.PendingChangesFunc()
	}
	return 0, nil
}

func (m *MockRepository) TagNames(pattern string) ([]string, error) {
	m.Calls = append(m.Calls, "TagNames "+pattern)
	if m.TagNamesFunc != nil {
		return m.TagNamesFunc(pattern)
	}
	return nil, nil
}

func (m *MockRepository) Stage(paths ...string) error {
	m.Calls = append(m.Calls, "Stage")
	m.Staged = append(m.Staged, paths...)
	if m.StageFunc != nil {
		return m.StageFunc(paths...)
	}
	return nil
}

func (m *MockRepository) Commit(message string) (string, error) {
	m.Calls = append(m.Calls, "Commit")
	m.Messages = append(m.Messages, message)
	if m.CommitFunc != nil {
		return m.CommitFunc(message)
	}
	return "0123456789abcdef0123456789abcdef01234567", nil
}

func (m *MockRepository) CreateTag(name, commit, message string) error {
	m.Calls = append(m.Calls, "CreateTag")
	m.TagsCreated = append(m.TagsCreated, name)
	if m.CreateTagFunc != nil {
		return m.CreateTagFunc(name, commit, message)
	}
	return nil
}

func (m *MockRepository) HeadRef() (string, error) {
	m.Calls = append(m.Calls, "HeadRef")
	if m.HeadRefFunc != nil {
		return m.HeadRefFunc()
	}
	return "refs/heads/main", nil
}

func (m *MockRepository) Push(ctx context.Context, refs ...string) error {
	m.Calls = append(m.Calls, "Push")
	m.Pushed = slices.Clone(refs)
	if m.PushFunc != nil {
		return m.PushFunc(ctx, refs...)
	}
	return nil
}

// opener returns an Opener handing out repo and recording the arguments.
func (m *MockRepository) opener(gotRoot, gotRemote *string) Opener {
	return func(root, remote string) (Repository, error) {
		if gotRoot != nil {
			*gotRoot = root
		}
		if gotRemote != nil {
			*gotRemote = remote
		}
		if m.RootDir == "" {
			m.RootDir = root
		}
		if m.Remote == "" {
			m.Remote = "origin"
		}
		return m, nil
	}
}

// recordingReporter keeps every progress line.
type recordingReporter struct {
	begun   []int
	ended   []int
	details []string
}

func (r *recordingReporter) Begin(s Step) { r.begun = append(r.begun, s.Number) }
func (r *recordingReporter) End(s Step)   { r.ended = append(r.ended, s.Number) }
func (r *recordingReporter) Detail(format string, args ...any) {
	r.details = append(r.details, fmt.Sprintf(format, args...))
}
