package main

import (
	"fmt"
	"os/exec"

	"github.com/fbkclanna/indexer/internal/git"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the environment and the indexer repository",
		Args:  cobra.NoArgs,
		RunE:  runDoctor,
	}
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	ok := true

	// Check git.
	_, _ = fmt.Fprint(out, "Checking git... ")
	if !git.IsGitInstalled() {
		_, _ = fmt.Fprintln(out, "NOT FOUND")
		_, _ = fmt.Fprintln(out, "  git is required. Install it from https://git-scm.com/")
		ok = false
	} else if ver, err := git.Version(); err != nil {
		_, _ = fmt.Fprintln(out, "ERROR")
		ok = false
	} else {
		_, _ = fmt.Fprintln(out, ver)
	}

	ctx, err := loadContext(cmd)
	if err != nil {
		return err
	}
	dir := ctx.Store.Dir()

	_, _ = fmt.Fprintf(out, "Checking indexer at %s... ", dir)
	if !ctx.Store.IsInitialized() {
		_, _ = fmt.Fprintln(out, "NOT INITIALIZED")
		_, _ = fmt.Fprintln(out, "  Run 'indexer init' first.")
		return fmt.Errorf("doctor checks failed")
	}
	if !git.IsCloned(dir) {
		_, _ = fmt.Fprintln(out, "NOT A GIT REPOSITORY")
		_, _ = fmt.Fprintf(out, "  Remove %s and run 'indexer init' again.\n", dir)
		return fmt.Errorf("doctor checks failed")
	}
	_, _ = fmt.Fprintln(out, "OK")

	_, _ = fmt.Fprint(out, "Checking branch... ")
	branch, _ := git.CurrentBranch(dir)
	if branch == "" {
		_, _ = fmt.Fprintln(out, "DETACHED")
		_, _ = fmt.Fprintf(out, "  Check out your default branch: git -C %s checkout main\n", dir)
		ok = false
	} else {
		_, _ = fmt.Fprintln(out, branch)
	}

	_, _ = fmt.Fprint(out, "Checking history... ")
	chain, err := git.FirstParentChain(dir)
	switch {
	case err != nil:
		_, _ = fmt.Fprintf(out, "ERROR (%v)\n", err)
		ok = false
	case len(chain) > 2:
		_, _ = fmt.Fprintf(out, "%d commits (the next export or remove squashes them onto the root)\n", len(chain))
	default:
		_, _ = fmt.Fprintf(out, "%d commit(s), squashed\n", len(chain))
	}

	if remote, err := git.RemoteURL(dir, "origin"); err == nil {
		_, _ = fmt.Fprintf(out, "Checking origin (%s)... ", remote)
		if checkGitLsRemote(remote) {
			_, _ = fmt.Fprintln(out, "OK")
		} else {
			_, _ = fmt.Fprintln(out, "FAILED (cannot access)")
			ok = false
		}
	}

	if ok {
		_, _ = fmt.Fprintln(out, "\nAll checks passed.")
		return nil
	}
	_, _ = fmt.Fprintln(out, "\nSome checks failed. See above for details.")
	return fmt.Errorf("doctor checks failed")
}

// checkGitLsRemote verifies that a repo URL is reachable.
func checkGitLsRemote(url string) bool {
	cmd := exec.Command("git", "ls-remote", "--exit-code", "--quiet", url) //nolint:gosec // url is the store's own origin
	return cmd.Run() == nil
}
