package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lists all entries in your indexer",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	ctx, err := loadContext(cmd)
	if err != nil {
		return err
	}

	entries, err := ctx.Store.Entries()
	if err != nil {
		return err
	}

	if asJSON {
		if entries == nil {
			entries = []string{}
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	con := newConsole(cmd)
	con.Println("Mod list:")
	for _, e := range entries {
		con.Println("    - " + con.Entry(e))
	}
	return nil
}
