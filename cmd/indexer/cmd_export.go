package main

import (
	"github.com/fbkclanna/indexer/internal/archive"
	"github.com/fbkclanna/indexer/internal/metadata"
	"github.com/fbkclanna/indexer/internal/store"
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <package>",
		Short: "Exports a .geode package to your indexer, updating it if it already exists",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}
}

func runExport(cmd *cobra.Command, args []string) error {
	pkgPath := args[0]

	ctx, err := loadContext(cmd)
	if err != nil {
		return err
	}
	con := newConsole(cmd)

	if !ctx.Store.IsInitialized() {
		return store.ErrNotInitialized
	}
	if err := store.CheckSource(pkgPath); err != nil {
		return err
	}

	doc, err := archive.ReadMetadata(pkgPath)
	if err != nil {
		return err
	}
	id, major, err := metadata.Resolve(doc)
	if err != nil {
		return err
	}
	ctx.Logger.Debug("resolved package", "id", id, "major", major, "path", pkgPath)

	res, err := ctx.Store.Export(id, major, pkgPath)
	if err != nil {
		return reportSquashFailure(con, ctx.Store.Dir(), err)
	}

	con.Done("Successfully exported %s to your indexer", res.Entry)
	con.Info("Committed %s on %s (root %s)", res.Squash.Commit.String()[:7], res.Squash.Branch, res.Squash.Root.String()[:7])
	printPushReminder(con, ctx.Store.Dir())
	return nil
}
