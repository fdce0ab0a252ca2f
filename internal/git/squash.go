package git

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

var (
	ErrDetachedState = errors.New("broken repository, detached HEAD")
	ErrVcsOperation  = errors.New("git operation failed")
)

// Identity is the author and committer recorded on squash commits.
type Identity struct {
	Name  string
	Email string
}

// SquashResult describes the commit written by Squash.
type SquashResult struct {
	Branch string
	Root   plumbing.Hash
	Commit plumbing.Hash
	// Replaced is the number of commits that were reachable from the branch
	// tip before the squash, root included.
	Replaced int
}

// Squasher collapses a branch onto its root commit and records the working
// tree as a single commit on top of it.
type Squasher struct {
	identity Identity
	logger   *log.Logger
	now      func() time.Time
}

// NewSquasher returns a Squasher committing as id. A nil logger discards output.
func NewSquasher(id Identity, logger *log.Logger) *Squasher {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Squasher{identity: id, logger: logger, now: time.Now}
}

// Squash rewrites the current branch of the repository at repoDir so that it
// consists of the root commit plus one new commit holding the full working
// tree, with the given message.
//
// A failure after staging leaves the index modified but uncommitted; the
// repository then needs manual inspection.
func (s *Squasher) Squash(repoDir, message string) (SquashResult, error) {
	repo, err := gogit.PlainOpen(repoDir)
	if err != nil {
		return SquashResult{}, fmt.Errorf("%w: opening %s: %w", ErrVcsOperation, repoDir, err)
	}

	head, err := repo.Head()
	if err != nil {
		return SquashResult{}, fmt.Errorf("%w: resolving HEAD: %w", ErrVcsOperation, err)
	}
	if !head.Name().IsBranch() {
		return SquashResult{}, ErrDetachedState
	}
	branch := head.Name().Short()

	tip, err := repo.CommitObject(head.Hash())
	if err != nil {
		return SquashResult{}, fmt.Errorf("%w: reading tip %s: %w", ErrVcsOperation, head.Hash(), err)
	}
	root, depth, err := rootCommit(tip)
	if err != nil {
		return SquashResult{}, err
	}
	s.logger.Debug("resolved root", "branch", branch, "tip", tip.Hash, "root", root.Hash, "depth", depth)

	wt, err := repo.Worktree()
	if err != nil {
		return SquashResult{}, fmt.Errorf("%w: opening worktree: %w", ErrVcsOperation, err)
	}

	// Mixed reset: branch and index move to root, files on disk stay.
	if err := wt.Reset(&gogit.ResetOptions{Commit: root.Hash, Mode: gogit.MixedReset}); err != nil {
		return SquashResult{}, fmt.Errorf("%w: resetting to root %s: %w", ErrVcsOperation, root.Hash, err)
	}

	if err := wt.AddWithOptions(&gogit.AddOptions{All: true}); err != nil {
		return SquashResult{}, fmt.Errorf("%w: staging changes: %w", ErrVcsOperation, err)
	}
	s.logger.Debug("staged working tree", "dir", repoDir)

	sig := &object.Signature{
		Name:  s.identity.Name,
		Email: s.identity.Email,
		When:  s.now(),
	}
	commit, err := wt.Commit(message, &gogit.CommitOptions{
		Author:            sig,
		Committer:         sig,
		Parents:           []plumbing.Hash{root.Hash},
		AllowEmptyCommits: true,
	})
	if err != nil {
		return SquashResult{}, fmt.Errorf("%w: committing: %w", ErrVcsOperation, err)
	}
	s.logger.Debug("committed", "branch", branch, "commit", commit, "message", message)

	return SquashResult{
		Branch:   branch,
		Root:     root.Hash,
		Commit:   commit,
		Replaced: depth,
	}, nil
}

// rootCommit follows first parents from c until it reaches a commit with no
// parents. The walk is linear in history depth; the root is never cached,
// since the branch may have been rewritten outside the indexer.
func rootCommit(c *object.Commit) (*object.Commit, int, error) {
	depth := 1
	for c.NumParents() > 0 {
		parent, err := c.Parent(0)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: reading parent of %s: %w", ErrVcsOperation, c.Hash, err)
		}
		c = parent
		depth++
	}
	return c, depth, nil
}
