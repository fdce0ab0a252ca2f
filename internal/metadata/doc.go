// Package metadata derives the storage key of a package from its mod.json
// document: the package id and its major version.
package metadata
