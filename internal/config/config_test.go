package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	home, err := homedir.Dir()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Root != filepath.Join(home, ".geode") {
		t.Errorf("Root = %q, want ~/.geode expanded", cfg.Root)
	}
	if cfg.Bot.Name != DefaultBotName || cfg.Bot.Email != DefaultBotEmail {
		t.Errorf("Bot = %+v, want defaults", cfg.Bot)
	}
	if cfg.ForkURL != "" {
		t.Errorf("ForkURL = %q, want empty", cfg.ForkURL)
	}
}

func TestLoad_file(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, `root: `+root+`
fork_url: git@github.com:me/indexer.git
bot:
  name: IndexBot
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Root != root {
		t.Errorf("Root = %q, want %q", cfg.Root, root)
	}
	if cfg.ForkURL != "git@github.com:me/indexer.git" {
		t.Errorf("ForkURL = %q", cfg.ForkURL)
	}
	if cfg.Bot.Name != "IndexBot" {
		t.Errorf("Bot.Name = %q, want IndexBot", cfg.Bot.Name)
	}
	// Unset keys keep their defaults.
	if cfg.Bot.Email != DefaultBotEmail {
		t.Errorf("Bot.Email = %q, want default", cfg.Bot.Email)
	}
	if cfg.StoreDir() != filepath.Join(root, StoreDirName) {
		t.Errorf("StoreDir() = %q", cfg.StoreDir())
	}
}

func TestLoad_envOverridesFile(t *testing.T) {
	path := writeConfig(t, "bot:\n  name: FromFile\n  email: file@example.com\n")
	t.Setenv("INDEXER_BOT_NAME", "FromEnv")
	t.Setenv("INDEXER_ROOT", "/srv/geode")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Bot.Name != "FromEnv" {
		t.Errorf("Bot.Name = %q, want FromEnv", cfg.Bot.Name)
	}
	if cfg.Bot.Email != "file@example.com" {
		t.Errorf("Bot.Email = %q, want file@example.com", cfg.Bot.Email)
	}
	if cfg.Root != "/srv/geode" {
		t.Errorf("Root = %q, want /srv/geode", cfg.Root)
	}
}

func TestLoad_invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", ":::invalid"},
		{"empty bot name", "bot:\n  name: \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Fatal("Load() should fail")
			}
		})
	}
}

func TestSetRoot(t *testing.T) {
	cfg := Default()
	if err := cfg.SetRoot("~/elsewhere"); err != nil {
		t.Fatal(err)
	}
	if strings.HasPrefix(cfg.Root, "~") {
		t.Errorf("Root not expanded: %q", cfg.Root)
	}
	if filepath.Base(cfg.Root) != "elsewhere" {
		t.Errorf("Root = %q", cfg.Root)
	}
}

func TestSaveAndParse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	cfg := Default()
	cfg.Root = "/data/geode"
	cfg.ForkURL = "https://github.com/me/indexer"

	if err := Save(path, &cfg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if *got != cfg {
		t.Errorf("round trip = %+v, want %+v", *got, cfg)
	}
}

func TestSave_invalid(t *testing.T) {
	cfg := Default()
	cfg.Bot.Email = ""
	if err := Save(filepath.Join(t.TempDir(), FileName), &cfg); err == nil {
		t.Fatal("Save() should reject an empty bot email")
	}
}

func TestRecordForkURL(t *testing.T) {
	path := writeConfig(t, "root: /data/geode\nbot:\n  name: IndexBot\n  email: bot@example.com\n")
	t.Setenv("INDEXER_BOT_NAME", "NotPersisted")

	if err := RecordForkURL(path, "git@github.com:me/indexer.git"); err != nil {
		t.Fatalf("RecordForkURL() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ForkURL != "git@github.com:me/indexer.git" {
		t.Errorf("ForkURL = %q", cfg.ForkURL)
	}
	if cfg.Root != "/data/geode" || cfg.Bot.Name != "IndexBot" {
		t.Errorf("other values changed: %+v", cfg)
	}
}

func TestRecordForkURL_newFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".geode", FileName)

	if err := RecordForkURL(path, "https://example.com/fork.git"); err != nil {
		t.Fatalf("RecordForkURL() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Root != DefaultRoot {
		t.Errorf("Root = %q, want %q", cfg.Root, DefaultRoot)
	}
	if cfg.ForkURL != "https://example.com/fork.git" {
		t.Errorf("ForkURL = %q", cfg.ForkURL)
	}
}
