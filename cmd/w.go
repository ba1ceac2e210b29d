package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ledgewood/gitpick/internal/errors"
	"github.com/ledgewood/gitpick/internal/logging"
	"github.com/ledgewood/gitpick/internal/shell"
	"github.com/ledgewood/gitpick/internal/system"
	"github.com/ledgewood/gitpick/internal/tui"
)

var wCmd = &cobra.Command{
	Use:   "w",
	Short: "Interactive worktree list",
	Long: `Lists all worktrees of the repository.

Actions:
  Enter  - Open a shell in the selected worktree
  d      - Delete the selected worktree (with confirmation)
  q/Esc  - Quit`,
	RunE: runWorktrees,
}

func init() {
	rootCmd.AddCommand(wCmd)
}

func runWorktrees(cmd *cobra.Command, args []string) error {
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

	worktrees, err := repo.Worktrees(ctx)
	if err != nil {
		return err
	}
	if len(worktrees) == 0 {
		logInfo("No worktrees found")
		return nil
	}

	result, err := tui.RunWorktreePicker(worktrees)
	if err != nil {
		return err
	}

	logging.Debug("worktree picker result", "action", result.Action, "path", result.Worktree.Path)

	switch result.Action {
	case tui.WorktreeOpen:
		return shell.Spawn(ctx, exec, cfg, result.Worktree.Path)

	case tui.WorktreeDelete:
		wt := result.Worktree
		if wt.IsMain {
			logWarning("The main working tree cannot be deleted")
			return nil
		}

		prompt := fmt.Sprintf("Delete worktree %s (%s)?", wt.BranchShort(), wt.Path)
		if dirty, err := repo.IsDirty(ctx, wt.Path); err == nil && dirty {
			prompt = fmt.Sprintf("Worktree %s has uncommitted changes. Delete anyway?", wt.BranchShort())
		}

		ok, err := confirm(os.Stdin, prompt, false)
		if err != nil {
			return err
		}
		if !ok {
			logInfo("Aborted, nothing removed")
			return nil
		}

		if err := fs.RemoveAll(wt.Path); err != nil {
			return errors.FilesystemError("remove", wt.Path, err)
		}
		if err := repo.PruneWorktrees(ctx); err != nil {
			logWarning("Removed %s but pruning failed: %v", wt.Path, err)
			return nil
		}
		logSuccess("Removed worktree %s (%s)", wt.BranchShort(), wt.Path)

	case tui.WorktreeQuit:
		// Exit cleanly
	}

	return nil
}
