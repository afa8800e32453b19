package gitver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommitIncrement(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected Increment
	}{
		{"semver major token", "some change +semver: major", IncrementMajor},
		{"semver breaking token", "some change +semver:breaking", IncrementMajor},
		{"semver token case-insensitive", "tweak +SemVer: MAJOR", IncrementMajor},
		{"breaking change footer", "feat: new api\n\nBREAKING CHANGE: drops v1", IncrementMajor},
		{"breaking change hyphen footer", "fix: x\n\nBREAKING-CHANGE: removed flag", IncrementMajor},
		{"feat bang header", "feat!: redesign", IncrementMajor},
		{"feat scoped bang header", "feat(api)!: redesign", IncrementMajor},
		{"semver minor token", "change +semver: minor", IncrementMinor},
		{"semver feature token", "change +semver:feature", IncrementMinor},
		{"feat header", "feat: add login", IncrementMinor},
		{"feat scoped header", "feat(auth): add login", IncrementMinor},
		{"fix header", "fix: squash bug", IncrementPatch},
		{"chore header", "chore: bump deps", IncrementPatch},
		{"plain message", "update readme", IncrementPatch},
		{"feat in body only", "fix: x\n\nthis is not a feat: header", IncrementPatch},
		{"breaking word mid-line", "fix: avoid BREAKING CHANGE wording", IncrementPatch},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expected, CommitIncrement(test.message))
		})
	}
}

func TestCommitIncrementPrecedence(t *testing.T) {
	// A major rule must win even when a minor rule also matches.
	msg := "feat: new thing +semver: major"
	require.Equal(t, IncrementMajor, CommitIncrement(msg))

	msg = "feat(api): thing\n\nBREAKING CHANGE: contract change"
	require.Equal(t, IncrementMajor, CommitIncrement(msg))
}

func TestDetectIncrement(t *testing.T) {
	t.Run("Maximum severity wins", func(t *testing.T) {
		messages := []string{"fix: a", "feat!: b", "feat: c"}
		require.Equal(t, IncrementMajor, DetectIncrement(messages))
	})

	t.Run("Order does not matter", func(t *testing.T) {
		permutations := [][]string{
			{"fix: a", "feat!: b", "feat: c"},
			{"feat!: b", "fix: a", "feat: c"},
			{"feat: c", "fix: a", "feat!: b"},
			{"feat: c", "feat!: b", "fix: a"},
		}
		for _, messages := range permutations {
			require.Equal(t, IncrementMajor, DetectIncrement(messages))
		}
	})

	t.Run("Minor beats patch", func(t *testing.T) {
		require.Equal(t, IncrementMinor, DetectIncrement([]string{"fix: a", "feat: b"}))
	})

	t.Run("Default is patch", func(t *testing.T) {
		require.Equal(t, IncrementPatch, DetectIncrement([]string{"chore: a", "docs: b"}))
	})

	t.Run("Empty range is patch", func(t *testing.T) {
		require.Equal(t, IncrementPatch, DetectIncrement(nil))
	})
}
