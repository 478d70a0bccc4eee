package parser

import (
	"fmt"

	"github.com/indaco/cargotag/internal/semver"
)

// Entry is one manifest loaded for a release: its path, the version it
// currently declares and the editable document.
type Entry struct {
	Path     string
	Version  semver.Version
	Document Document
}

// Collection holds the entries of a run keyed by path, in discovery order.
type Collection struct {
	entries []*Entry
	index   map[string]int
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{index: make(map[string]int)}
}

// Add appends an entry. Paths must be unique.
func (c *Collection) Add(e *Entry) error {
	if _, ok := c.index[e.Path]; ok {
		return fmt.Errorf("manifest %q already loaded", e.Path)
	}
	c.index[e.Path] = len(c.entries)
	c.entries = append(c.entries, e)
	return nil
}

// Get returns the entry for path.
func (c *Collection) Get(path string) (*Entry, bool) {
	i, ok := c.index[path]
	if !ok {
		return nil, false
	}
	return c.entries[i], true
}

// Entries returns the entries in insertion order.
func (c *Collection) Entries() []*Entry {
	return c.entries
}

// Paths returns the manifest paths in insertion order.
func (c *Collection) Paths() []string {
	paths := make([]string, len(c.entries))
	for i, e := range c.entries {
		paths[i] = e.Path
	}
	return paths
}

// Len returns the number of entries.
func (c *Collection) Len() int {
	return len(c.entries)
}

// CommonVersion returns the version shared by every entry. The boolean is
// false when the collection is empty or the versions differ.
func (c *Collection) CommonVersion() (semver.Version, bool) {
	if len(c.entries) == 0 {
		return semver.Version{}, false
	}
	first := c.entries[0].Version
	for _, e := range c.entries[1:] {
		if e.Version != first {
			return semver.Version{}, false
		}
	}
	return first, true
}
