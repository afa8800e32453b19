// Package gitver resolves branch-aware semantic versions from git
// repository history, branch names and commit-message conventions.
package gitver

import (
	"errors"
	"fmt"
	"time"

	"github.com/blang/semver"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Workflow selects the branching model used to classify branch names.
type Workflow string

const (
	WorkflowGitFlow    Workflow = "gitflow"
	WorkflowGitHubFlow Workflow = "githubflow"
	WorkflowTrunk      Workflow = "trunk"
)

// ParseWorkflow maps a workflow name to a Workflow value
func ParseWorkflow(name string) (Workflow, error) {
	switch Workflow(name) {
	case WorkflowGitFlow, WorkflowGitHubFlow, WorkflowTrunk:
		return Workflow(name), nil
	}
	return "", fmt.Errorf("unknown workflow %q (expected gitflow, githubflow or trunk)", name)
}

// BranchType is the classification of a branch name under a Workflow
type BranchType int

const (
	BranchMain BranchType = iota
	BranchDevelop
	BranchFeature
	BranchRelease
	BranchHotfix
	BranchSupport
	BranchUnknown
)

func (b BranchType) String() string {
	switch b {
	case BranchMain:
		return "main"
	case BranchDevelop:
		return "develop"
	case BranchFeature:
		return "feature"
	case BranchRelease:
		return "release"
	case BranchHotfix:
		return "hotfix"
	case BranchSupport:
		return "support"
	default:
		return "unknown"
	}
}

// Increment is a version bump severity, ordered patch < minor < major
type Increment int

const (
	IncrementPatch Increment = iota
	IncrementMinor
	IncrementMajor
)

func (i Increment) String() string {
	switch i {
	case IncrementMajor:
		return "major"
	case IncrementMinor:
		return "minor"
	default:
		return "patch"
	}
}

// CommitRecord is a read-only view of a single commit
type CommitRecord struct {
	Sha      string
	ShortSha string
	Message  string
}

// Snapshot is an immutable capture of the repository facts a single
// resolution needs. All git reads happen when the snapshot is taken;
// everything downstream is a pure function of it.
type Snapshot struct {
	// BranchName is the branch HEAD points at, or "HEAD" when detached
	BranchName string

	// TagName is the nearest tag reachable by ancestry, "" when none
	TagName string

	// TagSha is the commit the nearest tag points at
	TagSha string

	// Commits are the commits in the interval (tag, HEAD], or the full
	// history when no tag is reachable
	Commits []CommitRecord

	CommitCount int

	// Sha and ShortSha identify HEAD; both are "unknown" in a repository
	// with no commits at all
	Sha      string
	ShortSha string

	CommitDate time.Time
}

// Options configures a single version resolution
type Options struct {
	// Repository is the Git repository to analyze
	Repository *git.Repository

	// Commitish specifies which commit to analyze (default: "HEAD")
	Commitish plumbing.Revision

	// Workflow selects the branch classification rules (default: gitflow)
	Workflow Workflow

	// ForcedIncrement bypasses commit-message detection when non-nil
	ForcedIncrement *Increment

	// NextVersion replaces the base major/minor/patch before the
	// increment is applied
	NextVersion string

	// Strict surfaces a *TagParseError instead of silently falling back
	// to 0.0.0 when the nearest tag is not a valid semantic version
	Strict bool
}

// VersionContext is the composed version plus the repository facts the
// formatter renders from. It lives for one resolution only.
type VersionContext struct {
	// Version carries the numeric triple; pre-release and build are
	// tracked separately because the build segment is not valid semver
	Version semver.Version

	PreRelease string

	BranchName string
	BranchType BranchType
	Increment  Increment

	CommitsSinceTag int

	Sha      string
	ShortSha string

	// VersionSourceSha is the commit the base version tag points at,
	// "" when the version started from 0.0.0
	VersionSourceSha string

	CommitDate time.Time
}

// TagParseError reports a reachable tag that does not match the semver
// grammar. Only surfaced in strict mode; the default behavior degrades
// to a 0.0.0 base instead.
type TagParseError struct {
	Tag string
	Err error
}

func (e *TagParseError) Error() string {
	return fmt.Sprintf("parsing version tag %q: %v", e.Tag, e.Err)
}

func (e *TagParseError) Unwrap() error { return e.Err }

// OverrideParseError reports an invalid next-version override. Always fatal.
type OverrideParseError struct {
	Value string
	Err   error
}

func (e *OverrideParseError) Error() string {
	return fmt.Sprintf("parsing next-version override %q: %v", e.Value, e.Err)
}

func (e *OverrideParseError) Unwrap() error { return e.Err }

// ErrUnknownOutputFormat is returned when an output format is not recognized
var ErrUnknownOutputFormat = errors.New("unknown output format")
