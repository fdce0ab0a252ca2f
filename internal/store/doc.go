// Package store owns the local clone of the package index.
//
// The store directory holds one subdirectory per entry, named
// {id}@{major}, each containing a single artifact file. Every mutation is
// followed by a squash, so the branch is always the root commit plus one
// commit describing the latest change. Concurrent invocations against the
// same store are not coordinated and are unsupported.
package store
