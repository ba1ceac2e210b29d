package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledgewood/gitpick/internal/config"
	"github.com/ledgewood/gitpick/internal/git"
	"github.com/ledgewood/gitpick/internal/system"
)

// loadConfig reads the user config, falling back to defaults when the
// file is absent.
func loadConfig() (*config.Config, error) {
	return config.Load(config.Path())
}

// openRepo discovers the repository enclosing the current directory.
func openRepo(ctx context.Context, exec system.CommandExecutor) (*git.Repository, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return git.Discover(ctx, exec, cwd)
}

// confirm asks a yes/no question on stdin. Empty input picks the default.
func confirm(in io.Reader, prompt string, defaultYes bool) (bool, error) {
	suffix := "[y/N]"
	if defaultYes {
		suffix = "[Y/n]"
	}
	fmt.Printf("%s %s ", prompt, suffix)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	if answer == "" {
		return defaultYes, nil
	}
	return answer == "y" || answer == "yes", nil
}
