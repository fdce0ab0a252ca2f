package main

import (
	"encoding/json"

	"github.com/fbkclanna/indexer/internal/git"
	"github.com/fbkclanna/indexer/internal/ui"
	"github.com/fbkclanna/indexer/internal/workspace"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show indexer status",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

type indexStatus struct {
	Store       string `json:"store"`
	Initialized bool   `json:"initialized"`
	Remote      string `json:"remote,omitempty"`
	Branch      string `json:"branch,omitempty"`
	Head        string `json:"head,omitempty"`
	Root        string `json:"root,omitempty"`
	Depth       int    `json:"depth,omitempty"`
	Entries     int    `json:"entries"`
	Dirty       bool   `json:"dirty"`
}

func runStatus(cmd *cobra.Command, _ []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	ctx, err := loadContext(cmd)
	if err != nil {
		return err
	}

	s, err := collectStatus(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}

	tbl := ui.NewTable(out, "FIELD", "VALUE")
	tbl.Row("store", s.Store)
	if !s.Initialized {
		tbl.Row("state", "not initialized")
		return tbl.Flush()
	}
	tbl.Row("remote", s.Remote)
	tbl.Row("branch", s.Branch)
	tbl.Row("head", s.Head)
	tbl.Row("root", s.Root)
	tbl.Row("depth", s.Depth)
	tbl.Row("entries", s.Entries)
	tbl.Row("dirty", s.Dirty)
	return tbl.Flush()
}

func collectStatus(ctx *workspace.Context) (indexStatus, error) {
	dir := ctx.Store.Dir()
	s := indexStatus{Store: dir}
	if !ctx.Store.IsInitialized() {
		return s, nil
	}
	s.Initialized = true

	if remote, err := git.RemoteURL(dir, "origin"); err == nil {
		s.Remote = remote
	}
	if branch, err := git.CurrentBranch(dir); err == nil {
		if branch == "" {
			s.Branch = "(detached)"
		} else {
			s.Branch = branch
		}
	}
	if dirty, err := git.IsDirty(dir); err == nil {
		s.Dirty = dirty
	}

	chain, err := git.FirstParentChain(dir)
	if err != nil {
		return s, err
	}
	s.Head = chain[0].ShortHash()
	s.Root = chain[len(chain)-1].ShortHash()
	s.Depth = len(chain)

	entries, err := ctx.Store.Entries()
	if err != nil {
		return s, err
	}
	s.Entries = len(entries)
	return s, nil
}
