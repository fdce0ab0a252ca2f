package main

import (
	"errors"

	"github.com/fbkclanna/indexer/internal/git"
	"github.com/fbkclanna/indexer/internal/ui"
	"github.com/fbkclanna/indexer/internal/workspace"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "indexer",
		Short:         "Manage your fork of the Geode package index",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.PersistentFlags().String("root", "", "Geode root directory (overrides config root)")
	cmd.PersistentFlags().String("config", "", "Config file (default ~/.geode/indexer.yaml)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Log each repository operation")

	cmd.AddCommand(
		newInitCmd(),
		newListCmd(),
		newRemoveCmd(),
		newExportCmd(),
		newStatusCmd(),
		newDoctorCmd(),
	)

	return cmd
}

// loadContext resolves config and store from the persistent flags.
func loadContext(cmd *cobra.Command) (*workspace.Context, error) {
	root, _ := cmd.Flags().GetString("root")
	cfgPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")

	return workspace.Load(workspace.Options{
		ConfigPath: cfgPath,
		Root:       root,
		Verbose:    verbose,
		LogOutput:  cmd.ErrOrStderr(),
	})
}

func newConsole(cmd *cobra.Command) *ui.Console {
	return ui.NewConsole(cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// printPushReminder tells the operator how to publish the rewritten history.
func printPushReminder(con *ui.Console, storeDir string) {
	con.Info("You will need to force-push this commit yourself. Type:")
	con.Info("%s", git.PushCommand(storeDir))
}

// reportSquashFailure adds a manual-inspection hint when a squash failed
// part-way, then returns err unchanged.
func reportSquashFailure(con *ui.Console, storeDir string, err error) error {
	if errors.Is(err, git.ErrVcsOperation) {
		con.Warn("The repository at %s may hold staged but uncommitted changes; inspect it manually.", storeDir)
	}
	return err
}
