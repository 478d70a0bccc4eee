package semver

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/indaco/cargotag/internal/core"
)

// Version represents a semantic version reduced to major.minor.patch.
// Values are immutable: Increment returns a new Version.
type Version struct {
	Major int
	Minor int
	Patch int
}

// versionRegex matches the first major.minor.patch triple anywhere in a string.
// It is deliberately unanchored so that inputs such as "v1.2.3" or
// "release candidate v1.2.3 build 9" yield 1.2.3.
var versionRegex = regexp.MustCompile(`([0-9]+)\.([0-9]+)\.([0-9]+)`)

// String returns the "{major}.{minor}.{patch}" form of the version.
func (v Version) String() string {
	var sb strings.Builder
	sb.Grow(16)
	sb.WriteString(strconv.Itoa(v.Major))
	sb.WriteByte('.')
	sb.WriteString(strconv.Itoa(v.Minor))
	sb.WriteByte('.')
	sb.WriteString(strconv.Itoa(v.Patch))
	return sb.String()
}

// ParseVersion extracts the first major.minor.patch pattern found in s.
//
// Surrounding characters are ignored:
//   - "1.2.3"          -> 1.2.3
//   - "v1.2.3"         -> 1.2.3
//   - "\"0.4.10\""     -> 0.4.10
//   - "rc v1.2.3 b 9"  -> 1.2.3
//
// Returns core.ErrVersionParse (wrapped) when no pattern is present or a
// component does not fit in an int.
func ParseVersion(s string) (Version, error) {
	matches := versionRegex.FindStringSubmatch(s)
	if len(matches) != 4 {
		return Version{}, fmt.Errorf("%w: no major.minor.patch found in %q", core.ErrVersionParse, s)
	}

	var parts [3]int
	for i, label := range []string{"major", "minor", "patch"} {
		n, err := strconv.Atoi(matches[i+1])
		if err != nil {
			return Version{}, fmt.Errorf("%w: invalid %s version %q: %s", core.ErrVersionParse, label, matches[i+1], err.Error())
		}
		parts[i] = n
	}

	return Version{Major: parts[0], Minor: parts[1], Patch: parts[2]}, nil
}

// MustParse is like ParseVersion but panics on error. Intended for tests and
// package-level constants.
func MustParse(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Increment returns the version bumped at the given part.
//
//   - PartPatch: 1.2.3 -> 1.2.4
//   - PartMinor: 1.2.3 -> 1.3.0
//   - PartMajor: 1.2.3 -> 2.0.0
func (v Version) Increment(part Part) Version {
	switch part {
	case PartMajor:
		return Version{Major: v.Major + 1}
	case PartMinor:
		return Version{Major: v.Major, Minor: v.Minor + 1}
	default:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	}
}

// Compare returns -1 if v < other, 0 if equal and +1 if v > other.
func (v Version) Compare(other Version) int {
	if c := compareInt(v.Major, other.Major); c != 0 {
		return c
	}
	if c := compareInt(v.Minor, other.Minor); c != 0 {
		return c
	}
	return compareInt(v.Patch, other.Patch)
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
