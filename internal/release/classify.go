package release

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/blang/semver/v4"
	"github.com/samber/lo"
)

const breakingMarker = "BREAKING"

var featPattern = regexp.MustCompile(`^feat(\([^)]*\))?:`)

// Classify picks the bump for a set of commit summaries. Any summary
// containing BREAKING wins, then any "feat:" or "feat(scope):" summary;
// everything else, including no summaries at all, is a patch.
func Classify(summaries []string) Bump {
	switch {
	case lo.ContainsBy(summaries, func(s string) bool { return strings.Contains(s, breakingMarker) }):
		return BumpMajor
	case lo.ContainsBy(summaries, featPattern.MatchString):
		return BumpMinor
	default:
		return BumpPatch
	}
}

// NextVersion applies bump to current. A prerelease is released as its own
// version when the bumped component is already the lowest non-zero one,
// the way npm version does it: 1.3.0-rc.1 bumps minor to 1.3.0.
func NextVersion(current string, bump Bump) (string, error) {
	v, err := semver.Parse(current)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", ErrInvalidVersion, current, err)
	}

	pre := len(v.Pre) > 0

	switch bump {
	case BumpMajor:
		if !pre || v.Minor != 0 || v.Patch != 0 {
			v.Major++
		}
		v.Minor = 0
		v.Patch = 0
	case BumpMinor:
		if !pre || v.Patch != 0 {
			v.Minor++
		}
		v.Patch = 0
	case BumpPatch:
		if !pre {
			v.Patch++
		}
	case BumpNone:
		return "", fmt.Errorf("%w: no bump for %q", ErrInvalidVersion, current)
	default:
		return "", fmt.Errorf("%w: unknown bump %q", ErrInvalidVersion, bump)
	}

	v.Pre = nil
	v.Build = nil

	return v.String(), nil
}
