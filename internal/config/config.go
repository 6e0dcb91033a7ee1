package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/budget-cli/budget/internal/storage"
)

// Config represents the top-level budget.yaml configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Git     GitConfig     `yaml:"git"`
}

// StorageConfig selects where the ledger lives.
type StorageConfig struct {
	Backend storage.Backend `yaml:"backend"`
	Path    string          `yaml:"path"`
}

// GitConfig controls committing the ledger after each save.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Environment variables that override file settings.
const (
	EnvBackend    = "BUDGET_BACKEND"
	EnvFile       = "BUDGET_FILE"
	EnvAutoCommit = "BUDGET_AUTO_COMMIT"
)

// Load reads a budget.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except a missing file yields Default.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new ledger.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: storage.BackendJSON,
			Path:    "budget.json",
		},
		Git: GitConfig{
			AutoCommit:  false,
			AuthorName:  "Budget",
			AuthorEmail: "budget@localhost",
		},
	}
}

// LoadEnvFile loads a .env file from the working directory if there is one.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// ApplyEnv overrides cfg with any BUDGET_* environment variables that are set.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv(EnvBackend); v != "" {
		cfg.Storage.Backend = storage.Backend(strings.ToLower(v))
	}
	if v := os.Getenv(EnvFile); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv(EnvAutoCommit); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Git.AutoCommit = b
		}
	}
}

// Validate reports every problem with cfg in a single error.
func (c *Config) Validate() error {
	var problems []string

	if !slices.Contains(storage.Backends, c.Storage.Backend) {
		problems = append(problems, fmt.Sprintf("invalid storage backend %q: must be one of %v", c.Storage.Backend, storage.Backends))
	}
	if strings.TrimSpace(c.Storage.Path) == "" {
		problems = append(problems, "storage path cannot be empty")
	}
	if c.Git.AutoCommit && (c.Git.AuthorName == "" || c.Git.AuthorEmail == "") {
		problems = append(problems, "git author name and email are required when auto_commit is on")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}
