package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	shellquote "github.com/kballard/go-shellquote"

	"github.com/ledgewood/gitpick/internal/errors"
)

// DefaultRemote is the remote branches are listed from and tracked against
// when the config file does not override it.
const DefaultRemote = "origin"

// Config holds the user configuration for gitpick.
//
// All fields are optional; zero values fall back to defaults at the
// accessor level so a missing or partial config file behaves identically
// to no config file at all.
type Config struct {
	// Remote is the name of the remote to enumerate and track.
	Remote string `toml:"remote"`

	// WorktreeDir is the directory new worktrees are created under.
	// Empty means the parent directory of the repository working tree.
	WorktreeDir string `toml:"worktree_dir"`

	// Shell is the command line used to spawn the interactive sub-shell,
	// e.g. "zsh -l". Empty means $SHELL, falling back to "sh".
	Shell string `toml:"shell"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{Remote: DefaultRemote}
}

// Path returns the config file location, honoring XDG_CONFIG_HOME.
func Path() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "gitpick", "config.toml")
}

// Load reads the config file at path. A missing file yields the defaults;
// a file that exists but does not parse is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.ConfigError("failed to read config file "+path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.ConfigError("failed to parse config file "+path, err)
	}

	if cfg.Remote == "" {
		cfg.Remote = DefaultRemote
	}
	return cfg, nil
}

// ShellCommand resolves the sub-shell command line as argv. The configured
// command is split with shell quoting rules; without one, $SHELL is used,
// then "sh".
func (c *Config) ShellCommand() ([]string, error) {
	if c.Shell != "" {
		argv, err := shellquote.Split(c.Shell)
		if err != nil {
			return nil, errors.ConfigError("invalid shell command in config: "+c.Shell, err)
		}
		if len(argv) == 0 {
			return nil, errors.ConfigError("empty shell command in config", nil)
		}
		return argv, nil
	}

	if sh := os.Getenv("SHELL"); sh != "" {
		return []string{sh}, nil
	}
	return []string{"sh"}, nil
}
