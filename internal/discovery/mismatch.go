package discovery

import (
	"sort"

	"github.com/indaco/cargotag/internal/parser"
)

// DetectMismatches compares every entry against the first one and returns
// the entries whose version differs, sorted by path.
func DetectMismatches(c *parser.Collection) []Mismatch {
	if c == nil || c.Len() < 2 {
		return nil
	}

	entries := c.Entries()
	expected := entries[0].Version.String()

	var mismatches []Mismatch
	for _, e := range entries[1:] {
		if actual := e.Version.String(); actual != expected {
			mismatches = append(mismatches, Mismatch{
				Source:          e.Path,
				ExpectedVersion: expected,
				ActualVersion:   actual,
			})
		}
	}

	sort.Slice(mismatches, func(i, j int) bool {
		return mismatches[i].Source < mismatches[j].Source
	})

	return mismatches
}

// GetUniqueVersions returns the distinct versions in c in first-seen order.
func GetUniqueVersions(c *parser.Collection) []string {
	if c == nil {
		return nil
	}
	seen := make(map[string]bool)
	var versions []string
	for _, e := range c.Entries() {
		v := e.Version.String()
		if !seen[v] {
			seen[v] = true
			versions = append(versions, v)
		}
	}
	return versions
}
