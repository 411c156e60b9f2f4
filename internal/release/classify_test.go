package release

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name      string
		summaries []string
		expected  Bump
	}{
		{name: "no commits", summaries: nil, expected: BumpPatch},
		{name: "chore only", summaries: []string{"chore: cleanup"}, expected: BumpPatch},
		{name: "fix and feat", summaries: []string{"fix: typo", "feat: add export"}, expected: BumpMinor},
		{name: "scoped feat", summaries: []string{"feat(cli): add flag"}, expected: BumpMinor},
		{name: "empty scope", summaries: []string{"feat(): odd but valid"}, expected: BumpMinor},
		{name: "breaking", summaries: []string{"feat!: BREAKING change to API"}, expected: BumpMajor},
		{name: "breaking wins over feat", summaries: []string{"feat: a", "fix: BREAKING removal", "feat(x): b"}, expected: BumpMajor},
		{name: "breaking anywhere in line", summaries: []string{"refactor: drop node 14 (BREAKING)"}, expected: BumpMajor},
		{name: "lowercase breaking", summaries: []string{"fix: breaking typo"}, expected: BumpPatch},
		{name: "feat not at start", summaries: []string{"revert feat: thing"}, expected: BumpPatch},
		{name: "feature word", summaries: []string{"feature: thing"}, expected: BumpPatch},
		{name: "uppercase feat", summaries: []string{"Feat: thing"}, expected: BumpPatch},
		{name: "feat without colon", summaries: []string{"feat add thing"}, expected: BumpPatch},
		{name: "bang feat without marker", summaries: []string{"feat!: drop api"}, expected: BumpPatch},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, Classify(tc.summaries))
		})
	}
}

func TestClassify_OrderDoesNotMatter(t *testing.T) {
	summaries := []string{"fix: a", "feat: b", "docs: BREAKING note"}
	reversed := []string{"docs: BREAKING note", "feat: b", "fix: a"}

	require.Equal(t, Classify(summaries), Classify(reversed))
}

func TestNextVersion(t *testing.T) {
	cases := []struct {
		current  string
		bump     Bump
		expected string
	}{
		{current: "1.2.3", bump: BumpPatch, expected: "1.2.4"},
		{current: "1.2.3", bump: BumpMinor, expected: "1.3.0"},
		{current: "1.2.3", bump: BumpMajor, expected: "2.0.0"},
		{current: "0.0.0", bump: BumpPatch, expected: "0.0.1"},
		{current: "1.2.3+build.5", bump: BumpPatch, expected: "1.2.4"},
		{current: "1.2.4-rc.1", bump: BumpPatch, expected: "1.2.4"},
		{current: "1.3.0-rc.1", bump: BumpMinor, expected: "1.3.0"},
		{current: "1.3.1-rc.1", bump: BumpMinor, expected: "1.4.0"},
		{current: "2.0.0-beta", bump: BumpMajor, expected: "2.0.0"},
		{current: "2.1.0-beta", bump: BumpMajor, expected: "3.0.0"},
	}

	for _, tc := range cases {
		t.Run(tc.current+"/"+string(tc.bump), func(t *testing.T) {
			next, err := NextVersion(tc.current, tc.bump)
			require.NoError(t, err)
			require.Equal(t, tc.expected, next)
		})
	}
}

func TestNextVersion_Invalid(t *testing.T) {
	_, err := NextVersion("1.2", BumpPatch)
	require.ErrorIs(t, err, ErrInvalidVersion)

	_, err = NextVersion("v1.2.3", BumpPatch)
	require.ErrorIs(t, err, ErrInvalidVersion)

	_, err = NextVersion("1.2.3", BumpNone)
	require.ErrorIs(t, err, ErrInvalidVersion)
}
