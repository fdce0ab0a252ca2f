package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. INDEXER_BOT_NAME.
	EnvPrefix = "INDEXER"
	// FileName is the config file name inside the default Geode root.
	FileName = "indexer.yaml"
	// StoreDirName is the directory below the root that holds the index clone.
	StoreDirName = "indexer"

	DefaultRoot     = "~/.geode"
	DefaultBotName  = "GeodeBot"
	DefaultBotEmail = "hjfodgames@gmail.com"
)

// Config is the indexer configuration.
type Config struct {
	Root    string `mapstructure:"root" yaml:"root"`
	ForkURL string `mapstructure:"fork_url" yaml:"fork_url,omitempty"`
	Bot     Bot    `mapstructure:"bot" yaml:"bot"`
}

// Bot is the identity recorded on squash commits.
type Bot struct {
	Name  string `mapstructure:"name" yaml:"name"`
	Email string `mapstructure:"email" yaml:"email"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Root: DefaultRoot,
		Bot: Bot{
			Name:  DefaultBotName,
			Email: DefaultBotEmail,
		},
	}
}

// StoreDir returns the directory of the index clone.
func (c *Config) StoreDir() string {
	return filepath.Join(c.Root, StoreDirName)
}

// DefaultPath returns the default config file location, ~/.geode/indexer.yaml.
func DefaultPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".geode", FileName), nil
}

// Load reads the config file at path, applying environment overrides.
// A missing file is not an error: defaults and environment apply alone.
func Load(path string) (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("root", def.Root)
	v.SetDefault("fork_url", def.ForkURL)
	v.SetDefault("bot.name", def.Bot.Name)
	v.SetDefault("bot.email", def.Bot.Email)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("checking config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.expand(); err != nil {
		return nil, err
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetRoot overrides the Geode root, expanding a leading ~.
func (c *Config) SetRoot(root string) error {
	c.Root = root
	return c.expand()
}

func (c *Config) expand() error {
	root, err := homedir.Expand(c.Root)
	if err != nil {
		return fmt.Errorf("expanding root %q: %w", c.Root, err)
	}
	c.Root = root
	return nil
}

// Validate checks the configuration for errors.
func Validate(c *Config) error {
	if c.Root == "" {
		return fmt.Errorf("config: root is required")
	}
	if c.Bot.Name == "" {
		return fmt.Errorf("config: bot.name is required")
	}
	if c.Bot.Email == "" {
		return fmt.Errorf("config: bot.email is required")
	}
	return nil
}

// Parse parses config file content on top of the defaults, without
// environment overrides.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save validates and writes cfg to path, creating parent directories.
func Save(path string, cfg *Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil { //nolint:gosec // config dir is the user's Geode root
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil { //nolint:gosec // config file needs to be readable
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// RecordForkURL stores url as fork_url in the file at path, keeping the
// file's other values as written (environment and flags are not persisted).
func RecordForkURL(path, url string) error {
	cfg := Default()
	data, err := os.ReadFile(path) //nolint:gosec // path is the user's config file
	switch {
	case err == nil:
		parsed, perr := Parse(data)
		if perr != nil {
			return perr
		}
		cfg = *parsed
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("reading config: %w", err)
	}
	cfg.ForkURL = url
	return Save(path, &cfg)
}
