// Package archive reads the metadata document embedded in a .geode package.
package archive

import (
	"archive/zip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// MetadataName is the archive entry holding the package metadata.
const MetadataName = "mod.json"

var (
	ErrArchiveUnreadable = errors.New("unable to read package")
	ErrMetadataMissing   = errors.New("package has no " + MetadataName)
	ErrMetadataMalformed = errors.New("malformed " + MetadataName)
)

// Metadata is the decoded mod.json object.
type Metadata map[string]any

// ReadMetadata opens the package archive at path and decodes its mod.json.
func ReadMetadata(path string) (Metadata, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrArchiveUnreadable, path, err)
	}
	defer func() { _ = r.Close() }()

	return metadataFrom(&r.Reader)
}

func metadataFrom(r *zip.Reader) (Metadata, error) {
	f, err := r.Open(MetadataName)
	if err != nil {
		return nil, ErrMetadataMissing
	}
	defer func() { _ = f.Close() }()

	var doc Metadata
	dec := json.NewDecoder(f)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMetadataMalformed, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after object", ErrMetadataMalformed)
	}
	// "null" decodes without error into a nil map.
	if doc == nil {
		return nil, fmt.Errorf("%w: not an object", ErrMetadataMalformed)
	}
	return doc, nil
}
