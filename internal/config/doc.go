// Package config loads and saves the indexer configuration file.
// Values are layered defaults, then the YAML file, then INDEXER_*
// environment variables.
package config
