package gitver

import (
	"regexp"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

// ClassifyBranch maps a branch name to a BranchType under the given
// workflow. Matching is case-sensitive, exact on the name or on the
// prefix up to the first "/".
func ClassifyBranch(workflow Workflow, branch string) BranchType {
	switch workflow {
	case WorkflowTrunk:
		return BranchMain
	case WorkflowGitHubFlow:
		if branch == "main" || branch == "master" {
			return BranchMain
		}
		return BranchFeature
	}

	// gitflow
	switch branch {
	case "main", "master":
		return BranchMain
	case "develop":
		return BranchDevelop
	}

	prefix, _, found := strings.Cut(branch, "/")
	if !found {
		return BranchUnknown
	}
	switch prefix {
	case "feature":
		return BranchFeature
	case "release":
		return BranchRelease
	case "hotfix":
		return BranchHotfix
	case "support":
		return BranchSupport
	}
	return BranchUnknown
}

// Slug replaces every non-alphanumeric character with "-"
func Slug(s string) string {
	return nonAlphanumeric.ReplaceAllString(s, "-")
}

// branchSlug is the pre-release label stem for a branch: the last
// "/"-delimited segment for feature branches, the whole name otherwise
func branchSlug(branchType BranchType, branch string) string {
	if branchType == BranchFeature {
		if i := strings.LastIndex(branch, "/"); i >= 0 {
			branch = branch[i+1:]
		}
	}
	return Slug(branch)
}
