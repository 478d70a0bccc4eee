package discovery

import (
	"fmt"
	"strings"

	"github.com/indaco/cargotag/internal/core"
)

// Selector is the policy used when more than one manifest was discovered.
type Selector int

const (
	// SelectorNone accepts exactly one manifest.
	SelectorNone Selector = iota
	// SelectorLeaf writes the version to the most nested manifest.
	SelectorLeaf
	// SelectorBase writes the version to the least nested manifest.
	SelectorBase
	// SelectorAll writes the version to every manifest.
	SelectorAll
)

func (s Selector) String() string {
	switch s {
	case SelectorNone:
		return ""
	case SelectorLeaf:
		return "leaf"
	case SelectorBase:
		return "base"
	case SelectorAll:
		return "all"
	default:
		return fmt.Sprintf("Selector(%d)", int(s))
	}
}

// ParseSelector converts "leaf", "base" or "all" to a Selector.
// The empty string yields SelectorNone.
func ParseSelector(s string) (Selector, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return SelectorNone, nil
	case "leaf":
		return SelectorLeaf, nil
	case "base":
		return SelectorBase, nil
	case "all":
		return SelectorAll, nil
	default:
		return SelectorNone, fmt.Errorf("invalid manifest selector %q: must be one of leaf, base, all", s)
	}
}

// Select narrows manifests according to sel.
//
// Leaf and Base compare path string lengths as a stand-in for nesting depth,
// so paths should share a base (Locate returns cleaned absolute paths). On a
// tie the earlier path wins.
func Select(manifests []string, sel Selector) ([]string, error) {
	if len(manifests) == 0 {
		return nil, fmt.Errorf("%w: no manifest to select from", core.ErrDiscovery)
	}

	switch sel {
	case SelectorNone:
		if len(manifests) > 1 {
			return nil, fmt.Errorf("%w: %d manifests found but no selector given (use leaf, base or all)", core.ErrSelection, len(manifests))
		}
		return manifests, nil
	case SelectorAll:
		return manifests, nil
	case SelectorLeaf:
		best := manifests[0]
		for _, m := range manifests[1:] {
			if len(m) > len(best) {
				best = m
			}
		}
		return []string{best}, nil
	case SelectorBase:
		best := manifests[0]
		for _, m := range manifests[1:] {
			if len(m) < len(best) {
				best = m
			}
		}
		return []string{best}, nil
	default:
		return nil, fmt.Errorf("%w: unknown selector %s", core.ErrSelection, sel)
	}
}
