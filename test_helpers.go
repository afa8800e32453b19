package gitver

import (
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
)

var testSignature = &object.Signature{
	Name:  "test",
	Email: "test@example.com",
	When:  time.Now(),
}

// testRepoCreate creates a new in-memory git repository for testing
func testRepoCreate() (*git.Repository, error) {
	storage := memory.NewStorage()
	fs := memfs.New()
	return git.Init(storage, fs)
}

// testCommit writes a uniquely named file and commits it with the given
// message, returning the commit hash
func testCommit(repo *git.Repository, message string) (plumbing.Hash, error) {
	workTree, err := repo.Worktree()
	if err != nil {
		return plumbing.ZeroHash, err
	}

	filename := "file_" + plumbing.ComputeHash(plumbing.BlobObject, []byte(message)).String()[:8] + ".txt"
	if err := writeFile(workTree.Filesystem, filename, message); err != nil {
		return plumbing.ZeroHash, err
	}

	if _, err := workTree.Add(filename); err != nil {
		return plumbing.ZeroHash, err
	}

	return workTree.Commit(message, &git.CommitOptions{
		Author:            testSignature,
		AllowEmptyCommits: true,
	})
}

// testCommits commits each message in order and returns the last hash
func testCommits(repo *git.Repository, messages ...string) (plumbing.Hash, error) {
	last := plumbing.ZeroHash
	for _, message := range messages {
		hash, err := testCommit(repo, message)
		if err != nil {
			return plumbing.ZeroHash, err
		}
		last = hash
	}
	return last, nil
}

// testTag creates a lightweight tag pointing at the given commit
func testTag(repo *git.Repository, name string, hash plumbing.Hash) error {
	_, err := repo.CreateTag(name, hash, nil)
	return err
}

// testAnnotatedTag creates an annotated tag pointing at the given commit
func testAnnotatedTag(repo *git.Repository, name string, hash plumbing.Hash) error {
	_, err := repo.CreateTag(name, hash, &git.CreateTagOptions{
		Tagger:  testSignature,
		Message: "release " + name,
	})
	return err
}

// testCheckout creates and checks out a new branch at the current HEAD
func testCheckout(repo *git.Repository, branch string) error {
	workTree, err := repo.Worktree()
	if err != nil {
		return err
	}
	return workTree.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
		Create: true,
	})
}

// testRepoTaggedRelease builds a repo with one commit tagged name and
// returns the repo plus the tagged commit hash
func testRepoTaggedRelease(tag string) (*git.Repository, plumbing.Hash, error) {
	repo, err := testRepoCreate()
	if err != nil {
		return nil, plumbing.ZeroHash, err
	}
	hash, err := testCommit(repo, "initial release")
	if err != nil {
		return nil, plumbing.ZeroHash, err
	}
	if err := testTag(repo, tag, hash); err != nil {
		return nil, plumbing.ZeroHash, err
	}
	return repo, hash, nil
}

// writeFile writes content to a file in the given filesystem
func writeFile(fs billy.Filesystem, filename, content string) error {
	file, err := fs.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.Write([]byte(content))
	return err
}
