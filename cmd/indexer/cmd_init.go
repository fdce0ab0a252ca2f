package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fbkclanna/indexer/internal/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const upstreamIndexURL = "https://github.com/geode-sdk/indexer"

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize your indexer from a fork of the Geode index",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
	cmd.Flags().String("url", "", "URL of your fork (prompted for when omitted)")
	return cmd
}

func runInit(cmd *cobra.Command, _ []string) error {
	forkURL, _ := cmd.Flags().GetString("url")
	forkURL = strings.TrimSpace(forkURL)

	ctx, err := loadContext(cmd)
	if err != nil {
		return err
	}
	con := newConsole(cmd)

	if ctx.Store.IsInitialized() {
		con.Warn("Indexer is already initialized. Exiting.")
		return nil
	}

	con.Info("Welcome to the Indexer Setup. Here, we will set up your indexer to be compatible with the Geode index.")
	con.Info("Before continuing, make a github fork of %s.", upstreamIndexURL)

	if forkURL == "" {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("interactive init requires a TTY; use --url to pass your fork URL")
		}
		forkURL, err = promptForkURL(cmd.InOrStdin(), cmd.ErrOrStderr())
		if err != nil {
			return fmt.Errorf("reading fork URL: %w", err)
		}
		con.Info("Using fork %s", repoNameFromURL(forkURL))
	} else if err := validateForkURL(forkURL); err != nil {
		return err
	}

	if err := ctx.Store.Init(forkURL); err != nil {
		return err
	}

	if err := config.RecordForkURL(ctx.ConfigPath, forkURL); err != nil {
		con.Warn("Unable to record fork URL in %s: %v", ctx.ConfigPath, err)
	}

	con.Done("Successfully initialized %s", ctx.Store.Dir())
	return nil
}
