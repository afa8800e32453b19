package gitver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blang/semver"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

const shortShaLen = 8

// unknownSha stands in for the head SHA in a repository with no commits
const unknownSha = "unknown"

// OpenRepository opens a Git repository at the specified path
func OpenRepository(path string) (*git.Repository, error) {
	return git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
}

// TakeSnapshot performs every git read one resolution needs and returns
// the facts as an immutable Snapshot. A repository with no commits yields
// a snapshot with the "unknown" head SHA rather than an error.
func TakeSnapshot(repo *git.Repository, commitish plumbing.Revision) (*Snapshot, error) {
	if commitish == "" {
		commitish = "HEAD"
	}

	branch, err := currentBranch(repo)
	if err != nil {
		return nil, fmt.Errorf("reading current branch: %w", err)
	}

	revision, err := repo.ResolveRevision(commitish)
	if err != nil {
		// An unborn HEAD means a freshly initialized repository, which is
		// a valid starting state, not a failure.
		if commitish == "HEAD" && errors.Is(err, plumbing.ErrReferenceNotFound) {
			return &Snapshot{
				BranchName: branch,
				Sha:        unknownSha,
				ShortSha:   unknownSha,
			}, nil
		}
		return nil, fmt.Errorf("resolving commitish %q: %w", commitish, err)
	}

	head, err := repo.CommitObject(*revision)
	if err != nil {
		return nil, fmt.Errorf("getting commit object: %w", err)
	}

	tagName, tagSha, commits, err := walkToNearestTag(repo, head)
	if err != nil {
		return nil, fmt.Errorf("walking history for tags: %w", err)
	}

	return &Snapshot{
		BranchName:  branch,
		TagName:     tagName,
		TagSha:      tagSha,
		Commits:     commits,
		CommitCount: len(commits),
		Sha:         head.Hash.String(),
		ShortSha:    head.Hash.String()[:shortShaLen],
		CommitDate:  head.Committer.When,
	}, nil
}

func currentBranch(repo *git.Repository) (string, error) {
	ref, err := repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return "", err
	}
	if ref.Type() == plumbing.SymbolicReference {
		return ref.Target().Short(), nil
	}
	// Detached HEAD has no branch name
	return "HEAD", nil
}

// walkToNearestTag walks the commit graph from head in preorder and stops
// at the first tagged commit. It returns the tag, the tagged commit's SHA
// and the commits traversed before the tag was reached, newest first.
// With no reachable tag the walk covers the full history.
func walkToNearestTag(repo *git.Repository, head *object.Commit) (string, string, []CommitRecord, error) {
	tagged, err := tagsByCommit(repo)
	if err != nil {
		return "", "", nil, err
	}

	var (
		tagName string
		tagSha  string
		commits []CommitRecord
	)

	walker := object.NewCommitPreorderIter(head, nil, nil)
	err = walker.ForEach(func(commit *object.Commit) error {
		if names, ok := tagged[commit.Hash]; ok {
			tagName = preferredTag(names)
			tagSha = commit.Hash.String()
			return storer.ErrStop
		}
		commits = append(commits, CommitRecord{
			Sha:      commit.Hash.String(),
			ShortSha: commit.Hash.String()[:shortShaLen],
			Message:  commit.Message,
		})
		return nil
	})
	if err != nil {
		return "", "", nil, err
	}

	return tagName, tagSha, commits, nil
}

// tagsByCommit indexes every tag by the commit it points at, resolving
// annotated tags to their target
func tagsByCommit(repo *git.Repository) (map[plumbing.Hash][]string, error) {
	tags, err := repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	index := make(map[plumbing.Hash][]string)
	err = tags.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() != plumbing.HashReference {
			return nil
		}

		target := ref.Hash()
		obj, err := repo.TagObject(ref.Hash())
		switch err {
		case nil:
			// Annotated tag
			target = obj.Target
		case plumbing.ErrObjectNotFound:
			// Lightweight tag
		default:
			return err
		}

		index[target] = append(index[target], ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, err
	}

	return index, nil
}

// preferredTag picks the tag to use when several point at the same
// commit: the highest semver-parseable one, otherwise the first seen
func preferredTag(names []string) string {
	best := ""
	var bestVersion semver.Version
	for _, name := range names {
		parsed, err := semver.Parse(strings.TrimPrefix(name, "v"))
		if err != nil {
			continue
		}
		if best == "" || parsed.GT(bestVersion) {
			best = name
			bestVersion = parsed
		}
	}
	if best != "" {
		return best
	}
	return names[0]
}
