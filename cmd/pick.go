package cmd

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ledgewood/gitpick/internal/branch"
	"github.com/ledgewood/gitpick/internal/catalog"
	"github.com/ledgewood/gitpick/internal/config"
	"github.com/ledgewood/gitpick/internal/errors"
	"github.com/ledgewood/gitpick/internal/freq"
	"github.com/ledgewood/gitpick/internal/logging"
	"github.com/ledgewood/gitpick/internal/shell"
	"github.com/ledgewood/gitpick/internal/system"
	"github.com/ledgewood/gitpick/internal/tui"
)

func runPickFlow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	exec := system.DefaultExecutor()
	fs := system.DefaultFS()

	repo, err := openRepo(ctx, exec)
	if err != nil {
		return err
	}

	if !repo.HasRemote(ctx, cfg.Remote) {
		return errors.RemoteNotConfigured(cfg.Remote)
	}

	store, err := freq.Open(fs, repo.CommonDir())
	if err != nil {
		return err
	}

	names, err := repo.ListRemoteBranches(ctx, cfg.Remote)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		logInfo("No branches found on %q. Run 'git fetch %s' first.", cfg.Remote, cfg.Remote)
		return nil
	}

	items := catalog.Build(names, store)

	result, err := tui.RunPicker(items, cfg.Remote)
	if err != nil {
		return err
	}

	logging.Debug("picker result", "action", result.Action, "branch", result.Branch)

	creator := branch.NewCreator(repo, store, fs, cfg.Remote)

	switch result.Action {
	case tui.ActionCheckout:
		return checkoutBranch(ctx, creator, cfg.Remote, result.Branch)

	case tui.ActionWorktree:
		return createWorktree(ctx, creator, exec, cfg, result.Branch)

	case tui.ActionCancel:
		// Exit cleanly without touching the repository
	}

	return nil
}

func checkoutBranch(ctx context.Context, creator *branch.Creator, remote, remoteBranch string) error {
	name, err := creator.CreateCheckout(ctx, remoteBranch)
	if err != nil {
		return err
	}
	logSuccess("Checked out %s (tracking %s/%s)", name, remote, remoteBranch)
	return nil
}

func createWorktree(ctx context.Context, creator *branch.Creator, exec system.CommandExecutor, cfg *config.Config, remoteBranch string) error {
	suggested := creator.GenerateName(remoteBranch)

	name, cancelled, err := tui.RunNamePrompt("Worktree branch name", suggested)
	if err != nil {
		return err
	}
	if cancelled {
		return nil
	}
	if name = strings.TrimSpace(name); name == "" {
		name = suggested
	}

	result, err := creator.CreateWorktree(ctx, remoteBranch, name, cfg.WorktreeDir)
	if err != nil {
		return err
	}
	logSuccess("Created worktree %s at %s (tracking %s/%s)", result.Branch, result.Path, cfg.Remote, remoteBranch)

	open, err := confirm(os.Stdin, "Open a shell in the new worktree?", true)
	if err != nil {
		return err
	}
	if !open {
		return nil
	}
	return shell.Spawn(ctx, exec, cfg, result.Path)
}
