package main

import (
	"github.com/spf13/cobra"
)

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <entry>",
		Short: "Removes an entry from your indexer",
		Long: `Removes an entry from your indexer.

The argument is matched exactly against the entry directory name, which has
the form <id>@<major>, for example geode.loader@4. Run "indexer list" to see
the stored names.`,
		Args: cobra.ExactArgs(1),
		RunE: runRemove,
	}
}

func runRemove(cmd *cobra.Command, args []string) error {
	name := args[0]

	ctx, err := loadContext(cmd)
	if err != nil {
		return err
	}
	con := newConsole(cmd)

	res, err := ctx.Store.Remove(name)
	if err != nil {
		return reportSquashFailure(con, ctx.Store.Dir(), err)
	}

	con.Done("Successfully removed %s", name)
	con.Info("Committed %s on %s (root %s)", res.Commit.String()[:7], res.Branch, res.Root.String()[:7])
	printPushReminder(con, ctx.Store.Dir())
	return nil
}
