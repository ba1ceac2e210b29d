// Package shell spawns interactive sub-shells inside worktree directories.
package shell

import (
	"context"

	"github.com/ledgewood/gitpick/internal/config"
	"github.com/ledgewood/gitpick/internal/errors"
	"github.com/ledgewood/gitpick/internal/logging"
	"github.com/ledgewood/gitpick/internal/system"
)

// Spawn starts an interactive shell in dir and blocks until it exits.
// The shell command comes from the config, falling back to $SHELL.
func Spawn(ctx context.Context, exec system.CommandExecutor, cfg *config.Config, dir string) error {
	argv, err := cfg.ShellCommand()
	if err != nil {
		return err
	}

	logging.Debug("spawning shell", "shell", argv[0], "dir", dir)

	if err := exec.ExecuteInteractive(ctx, dir, argv[0], argv[1:]...); err != nil {
		return errors.RepoStateError("shell exited with error", err)
	}
	return nil
}
