package gitver

import "regexp"

// incrementRules are evaluated in order against each commit message;
// the first match wins. Major rules short-circuit before minor ones
// are considered, so a commit can never be downgraded by a later rule.
var incrementRules = []struct {
	pattern   *regexp.Regexp
	increment Increment
}{
	{regexp.MustCompile(`(?i)\+semver:\s*(major|breaking)`), IncrementMajor},
	{regexp.MustCompile(`(?m)^BREAKING[ -]CHANGE\b`), IncrementMajor},
	{regexp.MustCompile(`^feat(\([^)]*\))?!:`), IncrementMajor},
	{regexp.MustCompile(`(?i)\+semver:\s*(minor|feature)`), IncrementMinor},
	{regexp.MustCompile(`^feat(\([^)]*\))?:`), IncrementMinor},
}

// CommitIncrement classifies a single commit message. Messages matching
// no rule default to a patch increment.
func CommitIncrement(message string) Increment {
	for _, rule := range incrementRules {
		if rule.pattern.MatchString(message) {
			return rule.increment
		}
	}
	return IncrementPatch
}

// DetectIncrement aggregates the increment across a commit range as the
// maximum severity encountered. The fold is commutative, so traversal
// order never affects the result. An empty range yields a patch
// increment.
func DetectIncrement(messages []string) Increment {
	result := IncrementPatch
	for _, message := range messages {
		if inc := CommitIncrement(message); inc > result {
			result = inc
		}
	}
	return result
}
