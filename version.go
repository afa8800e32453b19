package gitver

import (
	"fmt"
	"strings"

	"github.com/blang/semver"
)

// Resolve computes the version for the repository state described by
// opts. It is deterministic for a fixed repository state and parameter
// set: all git reads happen up front in TakeSnapshot, and everything
// after that is a pure function of the snapshot.
func Resolve(opts Options) (*VersionContext, error) {
	if opts.Repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if opts.Commitish == "" {
		opts.Commitish = "HEAD"
	}

	snapshot, err := TakeSnapshot(opts.Repository, opts.Commitish)
	if err != nil {
		return nil, fmt.Errorf("reading repository state: %w", err)
	}

	return ResolveSnapshot(snapshot, opts)
}

// ResolveSnapshot composes a version from already-captured repository
// facts. Exposed so callers holding a Snapshot can resolve without
// touching the repository again.
func ResolveSnapshot(snapshot *Snapshot, opts Options) (*VersionContext, error) {
	if opts.Workflow == "" {
		opts.Workflow = WorkflowGitFlow
	}

	version := semver.Version{}
	versionSource := ""
	if snapshot.TagName != "" {
		parsed, err := parseVersionTag(snapshot.TagName)
		if err != nil {
			if opts.Strict {
				return nil, &TagParseError{Tag: snapshot.TagName, Err: err}
			}
			// The nearest tag is not a version tag; proceed as if no tag
			// existed and start from 0.0.0.
		} else {
			version.Major = parsed.Major
			version.Minor = parsed.Minor
			version.Patch = parsed.Patch
			versionSource = snapshot.TagSha
		}
	}

	increment := DetectIncrement(commitMessages(snapshot.Commits))
	if opts.ForcedIncrement != nil {
		increment = *opts.ForcedIncrement
	}

	if opts.NextVersion != "" {
		next, err := parseVersionTag(opts.NextVersion)
		if err != nil {
			return nil, &OverrideParseError{Value: opts.NextVersion, Err: err}
		}
		// The increment below still applies on top of the override.
		version.Major = next.Major
		version.Minor = next.Minor
		version.Patch = next.Patch
	}

	// A tagged HEAD with nothing forced keeps the tag's numbers.
	if snapshot.CommitCount > 0 || opts.ForcedIncrement != nil {
		switch increment {
		case IncrementMajor:
			version.Major++
			version.Minor = 0
			version.Patch = 0
		case IncrementMinor:
			version.Minor++
			version.Patch = 0
		default:
			version.Patch++
		}
	}

	branchType := ClassifyBranch(opts.Workflow, snapshot.BranchName)

	return &VersionContext{
		Version:          version,
		PreRelease:       preReleaseLabel(branchType, snapshot.BranchName, snapshot.CommitCount),
		BranchName:       snapshot.BranchName,
		BranchType:       branchType,
		Increment:        increment,
		CommitsSinceTag:  snapshot.CommitCount,
		Sha:              snapshot.Sha,
		ShortSha:         snapshot.ShortSha,
		VersionSourceSha: versionSource,
		CommitDate:       snapshot.CommitDate,
	}, nil
}

// parseVersionTag parses a MAJOR.MINOR.PATCH version with an optional
// leading "v", optional pre-release and optional build metadata
func parseVersionTag(tag string) (semver.Version, error) {
	return semver.Parse(strings.TrimPrefix(tag, "v"))
}

// preReleaseLabel derives the pre-release tag from the branch type. A
// zero commit count emits no label on any branch type, so a freshly
// tagged commit renders like a stable release even off main.
func preReleaseLabel(branchType BranchType, branch string, count int) string {
	if count == 0 || branchType == BranchMain {
		return ""
	}
	switch branchType {
	case BranchDevelop:
		return fmt.Sprintf("alpha.%d", count)
	case BranchRelease:
		return fmt.Sprintf("beta.%d", count)
	case BranchHotfix:
		return fmt.Sprintf("hotfix.%d", count)
	default:
		return fmt.Sprintf("%s.%d", branchSlug(branchType, branch), count)
	}
}

func commitMessages(commits []CommitRecord) []string {
	messages := make([]string, len(commits))
	for i, commit := range commits {
		messages[i] = commit.Message
	}
	return messages
}
