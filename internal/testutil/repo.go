package testutil

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// CreateBareRepo creates a bare git repository with an initial commit in a temp directory.
// The initial commit carries a README and is the root every squash rebuilds on.
// Returns the path to the bare repo.
func CreateBareRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	bare := filepath.Join(dir, "repo.git")

	// Create a working repo first, then clone it bare.
	work := filepath.Join(dir, "work")
	run(t, dir, "git", "init", "-b", "main", work)
	configure(t, work)

	readme := filepath.Join(work, "README.md")
	if err := os.WriteFile(readme, []byte("# test index\n"), 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}
	run(t, work, "git", "add", ".")
	run(t, work, "git", "commit", "-m", "initial commit")

	run(t, dir, "git", "clone", "--bare", work, bare)
	return bare
}

// CreateBareRepoWithHistory creates a bare repo whose main branch has the
// initial commit followed by n additional commits, each adding one entry.
func CreateBareRepoWithHistory(t *testing.T, n int) string {
	t.Helper()
	dir := t.TempDir()
	bare := filepath.Join(dir, "repo.git")

	work := filepath.Join(dir, "work")
	run(t, dir, "git", "init", "-b", "main", work)
	configure(t, work)

	if err := os.WriteFile(filepath.Join(work, "README.md"), []byte("# test index\n"), 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}
	run(t, work, "git", "add", ".")
	run(t, work, "git", "commit", "-m", "initial commit")

	for i := range n {
		entry := filepath.Join(work, "old.mod"+strconv.Itoa(i)+"@1")
		if err := os.MkdirAll(entry, 0755); err != nil { //nolint:gosec // test dir
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(entry, "mod.geode"), []byte("old"+strconv.Itoa(i)), 0644); err != nil { //nolint:gosec // test file
			t.Fatal(err)
		}
		run(t, work, "git", "add", ".")
		run(t, work, "git", "commit", "-m", "history "+strconv.Itoa(i))
	}

	run(t, dir, "git", "clone", "--bare", work, bare)
	return bare
}

// Clone clones url into a fresh temp directory and returns the clone path.
func Clone(t *testing.T, url string) string {
	t.Helper()
	dest := filepath.Join(t.TempDir(), "clone")
	run(t, ".", "git", "clone", "--quiet", url, dest)
	configure(t, dest)
	return dest
}

// Git runs a git command in dir and returns its trimmed stdout.
func Git(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("git %v failed: %v: %s", args, err, stderr.String())
	}
	return strings.TrimSpace(stdout.String())
}

// CommitCount returns the number of commits reachable from HEAD.
func CommitCount(t *testing.T, dir string) int {
	t.Helper()
	n, err := strconv.Atoi(Git(t, dir, "rev-list", "--count", "HEAD"))
	if err != nil {
		t.Fatalf("parsing commit count: %v", err)
	}
	return n
}

func configure(t *testing.T, dir string) {
	t.Helper()
	run(t, dir, "git", "config", "user.email", "test@example.com")
	run(t, dir, "git", "config", "user.name", "Test")
}

func run(t *testing.T, dir string, name string, args ...string) {
	t.Helper()
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("command %s %v failed: %v", name, args, err)
	}
}
