// Package workspace resolves the Geode root for an invocation: it loads the
// configuration, applies command-line overrides, sets up the diagnostic
// logger and opens the index store. It provides the Context type shared by
// all commands.
package workspace
