// Package git wraps the git operations used by the indexer.
// Cloning and working-tree inspection shell out to the git CLI so the
// user's credential helpers and SSH configuration apply; history rewriting
// (the squash protocol) runs in-process with go-git.
package git
