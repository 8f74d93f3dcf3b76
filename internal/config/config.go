package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Environment variables consulted by Load and RepoConfPath.
const (
	EnvConfig   = "FRESHEN_CONFIG"
	EnvRepoConf = "FRESHEN_REPO_CONF"
)

// DefaultRepoConf is the repository file used when nothing else is configured.
const DefaultRepoConf = "~/.repos.ini"

// DefaultInstallCommand is the argv prefix used to (re)install a repository.
var DefaultInstallCommand = []string{"sudo", "python", "setup.py"}

// InstallConfig holds installer settings
type InstallConfig struct {
	Command []string `toml:"command"` // argv prefix; the install mode is appended
}

// PushConfig holds push settings
type PushConfig struct {
	Force *bool `toml:"force"`
}

// FetchConfig holds pre-pull fetch settings
type FetchConfig struct {
	Enabled *bool `toml:"enabled"`
}

// Config holds the freshen settings
type Config struct {
	RepoConf string        `toml:"repo_conf"`
	Install  InstallConfig `toml:"install"`
	Push     PushConfig    `toml:"push"`
	Fetch    FetchConfig   `toml:"fetch"`
}

// ForcePush reports whether pushes use --force. Defaults to true.
func (c *Config) ForcePush() bool {
	return c.Push.Force == nil || *c.Push.Force
}

// PreFetch reports whether a bare fetch runs before each pull. Defaults to true.
func (c *Config) PreFetch() bool {
	return c.Fetch.Enabled == nil || *c.Fetch.Enabled
}

// RepoConfPath returns the repository file to read, tilde-expanded.
// flagValue wins over FRESHEN_REPO_CONF, which wins over repo_conf.
func (c *Config) RepoConfPath(flagValue string) (string, error) {
	path := flagValue
	if path == "" {
		path = os.Getenv(EnvRepoConf)
	}
	if path == "" {
		path = c.RepoConf
	}
	if path == "" {
		path = DefaultRepoConf
	}
	return ExpandPath(path)
}

// Default returns the default configuration
func Default() Config {
	return Config{
		RepoConf: DefaultRepoConf,
		Install: InstallConfig{
			Command: append([]string(nil), DefaultInstallCommand...),
		},
	}
}

// ValidatePath checks that the path is absolute or starts with ~
// Returns error if path is relative (like "." or "..")
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil // Empty is allowed (means not configured)
	}
	if path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// ExpandPath expands a leading ~ to the user's home directory.
// Other paths are returned unchanged.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// Path returns the path to the settings file.
func Path() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return ExpandPath(p)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "freshen", "config.toml"), nil
}

// Load reads the settings file.
// Returns Default() if file doesn't exist (no error)
// Returns error only if file exists but is invalid
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads settings from path; see Load.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return Default(), fmt.Errorf("invalid config file %s: %w", path, err)
	}

	// Use defaults for empty values
	if cfg.RepoConf == "" {
		cfg.RepoConf = DefaultRepoConf
	}
	if len(cfg.Install.Command) == 0 {
		cfg.Install.Command = append([]string(nil), DefaultInstallCommand...)
	}

	return cfg, nil
}
