package testutil

import (
	"archive/zip"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// WriteArchive writes a zip archive named name into dir with the given
// entries (name -> content). Entries are written in sorted order so the
// archive bytes are reproducible. Returns the archive path.
func WriteArchive(t *testing.T, dir, name string, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path) //nolint:gosec // test file
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	names := make([]string, 0, len(entries))
	for n := range entries {
		names = append(names, n)
	}
	sort.Strings(names)

	zw := zip.NewWriter(f)
	for _, n := range names {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: n, Method: zip.Deflate})
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(entries[n])); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

// WritePackage writes a .geode archive whose mod.json holds fields.
// The archive is named after fields["id"] when it is a string.
func WritePackage(t *testing.T, dir string, fields map[string]any) string {
	t.Helper()
	data, err := json.Marshal(fields)
	if err != nil {
		t.Fatal(err)
	}
	name := "package.geode"
	if id, ok := fields["id"].(string); ok {
		name = id + ".geode"
	}
	return WriteArchive(t, dir, name, map[string]string{
		"mod.json":   string(data),
		"binary.dll": "binary for " + name,
	})
}
