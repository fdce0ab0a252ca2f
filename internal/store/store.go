package store

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fbkclanna/indexer/internal/git"
	"github.com/otiai10/copy"
)

// ArtifactName is the file name of the package artifact inside an entry.
const ArtifactName = "mod.geode"

var (
	ErrNotInitialized     = errors.New("indexer has not yet been initialized")
	ErrAlreadyInitialized = errors.New("indexer is already initialized")
	ErrCloneFailed        = errors.New("unable to clone your repository")
	ErrSourceNotFound     = errors.New("path not found")
	ErrEntryNotFound      = errors.New("entry does not exist")
	ErrInvalidEntryName   = errors.New("invalid entry name")
)

// Cloner clones url into dest.
type Cloner func(url, dest string) error

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for protocol diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithCloner replaces the default git CLI clone.
func WithCloner(c Cloner) Option {
	return func(s *Store) { s.clone = c }
}

// Store is the on-disk index repository.
type Store struct {
	dir      string
	clone    Cloner
	logger   *log.Logger
	squasher *git.Squasher
}

// New returns a Store rooted at dir whose squash commits are authored by bot.
// The directory need not exist yet.
func New(dir string, bot git.Identity, opts ...Option) *Store {
	s := &Store{
		dir:   dir,
		clone: git.Clone,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	s.squasher = git.NewSquasher(bot, s.logger)
	return s
}

// Dir returns the store directory.
func (s *Store) Dir() string { return s.dir }

// IsInitialized reports whether the store directory exists.
func (s *Store) IsInitialized() bool {
	_, err := os.Stat(s.dir)
	return err == nil
}

func (s *Store) requireInitialized() error {
	if !s.IsInitialized() {
		return ErrNotInitialized
	}
	return nil
}

// Init clones forkURL into the store directory.
func (s *Store) Init(forkURL string) error {
	if _, err := os.Lstat(s.dir); err == nil {
		return ErrAlreadyInitialized
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", s.dir, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.dir), 0755); err != nil { //nolint:gosec // store parent needs to be world-readable
		return fmt.Errorf("creating %s: %w", filepath.Dir(s.dir), err)
	}

	s.logger.Debug("cloning fork", "url", forkURL, "dest", s.dir)
	if err := s.clone(forkURL, s.dir); err != nil {
		// The directory did not exist before, so anything here is clone debris.
		_ = os.RemoveAll(s.dir)
		return fmt.Errorf("%w: %w", ErrCloneFailed, err)
	}
	return nil
}

// List yields the names of all entries: immediate subdirectories holding an
// artifact file. The directory is scanned anew on every iteration.
func (s *Store) List() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if err := s.requireInitialized(); err != nil {
			yield("", err)
			return
		}

		f, err := os.Open(s.dir)
		if err != nil {
			yield("", fmt.Errorf("reading store: %w", err))
			return
		}
		defer func() { _ = f.Close() }()

		for {
			batch, err := f.ReadDir(64)
			for _, e := range batch {
				if !e.IsDir() || !isRegularFile(filepath.Join(s.dir, e.Name(), ArtifactName)) {
					continue
				}
				if !yield(e.Name(), nil) {
					return
				}
			}
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield("", fmt.Errorf("reading store: %w", err))
				return
			}
		}
	}
}

// Entries collects List into a sorted slice.
func (s *Store) Entries() ([]string, error) {
	var names []string
	for name, err := range s.List() {
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// Remove deletes the entry directory named exactly name and squashes.
// The name is not reconstructed from an id: callers pass the full
// {id}@{major} directory name.
func (s *Store) Remove(name string) (git.SquashResult, error) {
	if err := s.requireInitialized(); err != nil {
		return git.SquashResult{}, err
	}
	if err := validateEntryName(name); err != nil {
		return git.SquashResult{}, err
	}

	path := filepath.Join(s.dir, name)
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return git.SquashResult{}, fmt.Errorf("cannot remove %s: %w", name, ErrEntryNotFound)
	}

	s.logger.Debug("removing entry", "path", path)
	if err := os.RemoveAll(path); err != nil {
		return git.SquashResult{}, fmt.Errorf("unable to remove %s: %w", name, err)
	}
	return s.squasher.Squash(s.dir, "Remove "+name)
}

// ExportResult describes a completed export.
type ExportResult struct {
	Entry  string
	Squash git.SquashResult
}

// Export copies the artifact at src into the {id}@{major} entry, creating
// the entry if needed and overwriting any previous artifact, then squashes.
func (s *Store) Export(id, major, src string) (ExportResult, error) {
	if err := s.requireInitialized(); err != nil {
		return ExportResult{}, err
	}
	if err := CheckSource(src); err != nil {
		return ExportResult{}, err
	}

	entry := EntryName(id, major)
	if err := validateEntryName(entry); err != nil {
		return ExportResult{}, err
	}

	dir := filepath.Join(s.dir, entry)
	if err := os.MkdirAll(dir, 0755); err != nil { //nolint:gosec // index entries are committed and world-readable
		return ExportResult{}, fmt.Errorf("unable to create %s: %w", entry, err)
	}

	dest := filepath.Join(dir, ArtifactName)
	s.logger.Debug("copying artifact", "src", src, "dest", dest)
	if err := copy.Copy(src, dest, copyArtifact); err != nil {
		return ExportResult{}, fmt.Errorf("unable to copy %s: %w", src, err)
	}

	res, err := s.squasher.Squash(s.dir, "Add/Update "+id)
	if err != nil {
		return ExportResult{}, err
	}
	return ExportResult{Entry: entry, Squash: res}, nil
}

// copyArtifact writes the bytes a symlinked source points at, never the link.
var copyArtifact = copy.Options{
	OnSymlink: func(string) copy.SymlinkAction { return copy.Deep },
}

// EntryName returns the directory name of the entry for id at major.
func EntryName(id, major string) string {
	return id + "@" + major
}

// CheckSource returns ErrSourceNotFound unless path is an existing regular file.
func CheckSource(path string) error {
	if !isRegularFile(path) {
		return fmt.Errorf("%w: %s", ErrSourceNotFound, path)
	}
	return nil
}

// validateEntryName rejects names that would resolve outside a single
// directory directly below the store, or onto the repository metadata.
func validateEntryName(name string) error {
	switch {
	case name == "", name == ".", name == "..", name == ".git":
	case strings.ContainsAny(name, `/\`):
	case filepath.Base(name) != name:
	default:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidEntryName, name)
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
