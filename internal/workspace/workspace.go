package workspace

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fbkclanna/indexer/internal/config"
	"github.com/fbkclanna/indexer/internal/git"
	"github.com/fbkclanna/indexer/internal/store"
)

// Options carries the command-line overrides for Load.
type Options struct {
	// ConfigPath is the config file; empty means config.DefaultPath.
	ConfigPath string
	// Root overrides the configured Geode root when non-empty.
	Root string
	// Verbose enables debug logging.
	Verbose bool
	// LogOutput receives diagnostic logs.
	LogOutput io.Writer
}

// Context holds the resolved paths and loaded config for one invocation.
type Context struct {
	ConfigPath string
	Config     *config.Config
	Logger     *log.Logger
	Store      *store.Store
}

// Load resolves the config file, applies overrides and opens the store.
// The store itself may not be initialized yet.
func Load(opts Options) (*Context, error) {
	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		cfgPath = p
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if opts.Root != "" {
		if err := cfg.SetRoot(opts.Root); err != nil {
			return nil, err
		}
	}
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("resolving root: %w", err)
	}
	cfg.Root = root

	logger := NewLogger(opts.LogOutput, opts.Verbose)
	st := store.New(cfg.StoreDir(), Identity(cfg), store.WithLogger(logger))

	logger.Debug("loaded configuration", "config", cfgPath, "root", cfg.Root, "store", st.Dir())
	return &Context{
		ConfigPath: cfgPath,
		Config:     cfg,
		Logger:     logger,
		Store:      st,
	}, nil
}

// Identity returns the squash commit identity configured in cfg.
func Identity(cfg *config.Config) git.Identity {
	return git.Identity{Name: cfg.Bot.Name, Email: cfg.Bot.Email}
}

// NewLogger returns the diagnostic logger: warnings only, or debug output
// when verbose. A nil writer discards everything.
func NewLogger(w io.Writer, verbose bool) *log.Logger {
	if w == nil {
		w = io.Discard
	}
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "indexer",
		ReportTimestamp: verbose,
	})
}
