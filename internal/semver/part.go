package semver

import (
	"fmt"
	"strings"
)

// Part names the component of a version to increment.
type Part int

const (
	// PartPatch is for backward compatible bug fixes.
	PartPatch Part = iota
	// PartMinor is for functionality added in a backward compatible manner.
	PartMinor
	// PartMajor is for incompatible API changes.
	PartMajor
)

// Parts lists the valid parts in CLI order.
var Parts = []Part{PartPatch, PartMinor, PartMajor}

func (p Part) String() string {
	switch p {
	case PartPatch:
		return "patch"
	case PartMinor:
		return "minor"
	case PartMajor:
		return "major"
	default:
		return fmt.Sprintf("Part(%d)", int(p))
	}
}

// ParsePart converts "patch", "minor" or "major" (case-insensitive) to a Part.
func ParsePart(s string) (Part, error) {
	for _, p := range Parts {
		if strings.EqualFold(strings.TrimSpace(s), p.String()) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("invalid version part %q: must be one of patch, minor, major", s)
}
