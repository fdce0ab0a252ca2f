package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fbkclanna/indexer/internal/archive"
	"github.com/fbkclanna/indexer/internal/metadata"
	"github.com/fbkclanna/indexer/internal/store"
	"github.com/fbkclanna/indexer/internal/testutil"
)

func TestRunExport_scenario(t *testing.T) {
	e := initialized(t)
	pkg := testutil.WritePackage(t, t.TempDir(), map[string]any{
		"id":      "geode.loader",
		"version": "v4.2.1",
	})
	want, err := os.ReadFile(pkg)
	if err != nil {
		t.Fatal(err)
	}

	out, _, err := e.run(t, "export", pkg)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(out, "Successfully exported geode.loader@4") {
		t.Errorf("missing confirmation: %s", out)
	}
	if !strings.Contains(out, "git -C "+e.storeDir()+" push -f") {
		t.Errorf("missing push reminder: %s", out)
	}

	artifact := filepath.Join(e.storeDir(), "geode.loader@4", store.ArtifactName)
	got, err := os.ReadFile(artifact)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(want) {
		t.Error("artifact bytes differ from the package")
	}
	if n := testutil.CommitCount(t, e.storeDir()); n != 2 {
		t.Errorf("commit count = %d, want 2", n)
	}
	tree := testutil.Git(t, e.storeDir(), "rev-parse", "HEAD^{tree}")

	// Second export of the identical archive.
	if _, _, err := e.run(t, "export", pkg); err != nil {
		t.Fatalf("second export failed: %v", err)
	}
	got, err = os.ReadFile(artifact)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(want) {
		t.Error("artifact changed after re-export")
	}
	if n := testutil.CommitCount(t, e.storeDir()); n != 2 {
		t.Errorf("commit count after re-export = %d, want 2", n)
	}
	if again := testutil.Git(t, e.storeDir(), "rev-parse", "HEAD^{tree}"); again != tree {
		t.Errorf("tree changed after identical re-export: %s -> %s", tree, again)
	}
}

func TestRunExport_notInitialized(t *testing.T) {
	e := newTestEnv(t)
	pkg := testutil.WritePackage(t, t.TempDir(), map[string]any{"id": "a.mod", "version": "1.0.0"})

	_, _, err := e.run(t, "export", pkg)
	if !errors.Is(err, store.ErrNotInitialized) {
		t.Fatalf("error = %v, want ErrNotInitialized", err)
	}
}

func TestRunExport_sourceNotFound(t *testing.T) {
	e := initialized(t)

	_, _, err := e.run(t, "export", filepath.Join(t.TempDir(), "missing.geode"))
	if !errors.Is(err, store.ErrSourceNotFound) {
		t.Fatalf("error = %v, want ErrSourceNotFound", err)
	}
}

func TestRunExport_invalidPackages(t *testing.T) {
	tests := []struct {
		name string
		make func(t *testing.T, dir string) string
		want error
	}{
		{
			name: "not an archive",
			make: func(t *testing.T, dir string) string {
				p := filepath.Join(dir, "junk.geode")
				if err := os.WriteFile(p, []byte("junk"), 0600); err != nil {
					t.Fatal(err)
				}
				return p
			},
			want: archive.ErrArchiveUnreadable,
		},
		{
			name: "no mod.json",
			make: func(t *testing.T, dir string) string {
				return testutil.WriteArchive(t, dir, "x.geode", map[string]string{"a.txt": "a"})
			},
			want: archive.ErrMetadataMissing,
		},
		{
			name: "missing id",
			make: func(t *testing.T, dir string) string {
				return testutil.WritePackage(t, dir, map[string]any{"version": "1.0.0"})
			},
			want: metadata.ErrFieldMissing,
		},
		{
			name: "numeric version",
			make: func(t *testing.T, dir string) string {
				return testutil.WritePackage(t, dir, map[string]any{"id": "a.mod", "version": 1})
			},
			want: metadata.ErrFieldTypeMismatch,
		},
		{
			name: "empty major",
			make: func(t *testing.T, dir string) string {
				return testutil.WritePackage(t, dir, map[string]any{"id": "a.mod", "version": "v.1"})
			},
			want: metadata.ErrInvalidVersion,
		},
	}

	e := initialized(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := e.run(t, "export", tt.make(t, t.TempDir()))
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			if n := testutil.CommitCount(t, e.storeDir()); n != 1 {
				t.Errorf("commit count = %d, want 1 (nothing exported)", n)
			}
		})
	}
}

func TestRunExport_detachedHead(t *testing.T) {
	e := initialized(t)
	testutil.Git(t, e.storeDir(), "checkout", "--quiet", "--detach")

	pkg := testutil.WritePackage(t, t.TempDir(), map[string]any{"id": "a.mod", "version": "1.0.0"})
	_, _, err := e.run(t, "export", pkg)
	if err == nil || !strings.Contains(err.Error(), "detached HEAD") {
		t.Fatalf("expected detached HEAD error, got %v", err)
	}
}
