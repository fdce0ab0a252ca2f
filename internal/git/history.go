package git

import (
	"fmt"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
)

// CommitInfo summarizes one commit on a first-parent chain.
type CommitInfo struct {
	Hash    string
	Message string
	Author  string
	When    time.Time
}

// ShortHash returns the first seven characters of the commit hash.
func (c CommitInfo) ShortHash() string {
	if len(c.Hash) < 7 {
		return c.Hash
	}
	return c.Hash[:7]
}

// FirstParentChain returns the commits from HEAD back to the root commit,
// tip first, following first parents only.
func FirstParentChain(repoDir string) ([]CommitInfo, error) {
	repo, err := gogit.PlainOpen(repoDir)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", repoDir, err)
	}
	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolving HEAD: %w", err)
	}
	c, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("reading commit %s: %w", head.Hash(), err)
	}

	var chain []CommitInfo
	for {
		chain = append(chain, CommitInfo{
			Hash:    c.Hash.String(),
			Message: strings.TrimSpace(c.Message),
			Author:  fmt.Sprintf("%s <%s>", c.Author.Name, c.Author.Email),
			When:    c.Author.When,
		})
		if c.NumParents() == 0 {
			return chain, nil
		}
		if c, err = c.Parent(0); err != nil {
			return nil, fmt.Errorf("reading parent: %w", err)
		}
	}
}
