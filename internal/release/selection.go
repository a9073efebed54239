// Package release picks which release of a package to present. The search
// engine consumes it as an opaque pure function; it issues no queries and
// holds no state.
package release

import (
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/depscout/depscout/internal/catalog"
)

// Selection narrows which release qualifies as the default. Empty fields
// do not constrain.
type Selection struct {
	Artifact string
	Version  string
	Target   string
}

// SelectFunc is the collaborator contract: given a package, the caller's
// selection criteria, and the package's releases, return the release to
// present, or nil when none qualifies.
type SelectFunc func(pkg catalog.Package, sel Selection, rels []catalog.Release) *catalog.Release

// Default selects the newest qualifying release: selection pins filter
// first, then stable versions are preferred over pre-releases, then the
// highest version wins. Versions that do not parse as semver fall back to
// lexicographic comparison among themselves and rank below parseable ones.
func Default(pkg catalog.Package, sel Selection, rels []catalog.Release) *catalog.Release {
	candidates := make([]catalog.Release, 0, len(rels))
	for _, r := range rels {
		if sel.Artifact != "" && r.Coordinate.Artifact != sel.Artifact {
			continue
		}
		if sel.Version != "" && r.Coordinate.Version != sel.Version {
			continue
		}
		if sel.Target != "" && r.Target != sel.Target {
			continue
		}
		candidates = append(candidates, r)
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return moreRecent(candidates[i], candidates[j])
	})
	chosen := candidates[0]
	return &chosen
}

// moreRecent reports whether a should be presented ahead of b.
func moreRecent(a, b catalog.Release) bool {
	va, aOK := parseVersion(a.Coordinate.Version)
	vb, bOK := parseVersion(b.Coordinate.Version)

	switch {
	case aOK && bOK:
		stableA := va.Prerelease() == ""
		stableB := vb.Prerelease() == ""
		if stableA != stableB {
			return stableA
		}
		if c := va.Compare(vb); c != 0 {
			return c > 0
		}
	case aOK != bOK:
		return aOK
	default:
		if a.Coordinate.Version != b.Coordinate.Version {
			return a.Coordinate.Version > b.Coordinate.Version
		}
	}
	return a.ReleasedAt.After(b.ReleasedAt)
}

func parseVersion(v string) (*semver.Version, bool) {
	parsed, err := semver.NewVersion(strings.TrimPrefix(v, "v"))
	if err != nil {
		return nil, false
	}
	return parsed, true
}
