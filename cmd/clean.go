package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ledgewood/gitpick/internal/errors"
	"github.com/ledgewood/gitpick/internal/logging"
	"github.com/ledgewood/gitpick/internal/system"
	"github.com/ledgewood/gitpick/internal/worktree"
)

var cleanYes bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove linked worktrees that are clean and fully pushed",
	Long: `Audits every linked worktree of the repository and removes the ones that
are provably safe to delete: no uncommitted changes (including untracked
files) and no commits that are not on the upstream branch.

Worktrees that fail either check are listed with the reason and left
untouched. Removal asks for confirmation unless --yes is given.`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVarP(&cleanYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	exec := system.DefaultExecutor()
	fs := system.DefaultFS()

	repo, err := openRepo(ctx, exec)
	if err != nil {
		return err
	}

	audit, err := worktree.NewAuditor(repo).Run(ctx)
	if err != nil {
		return err
	}

	if audit.Empty() {
		logInfo("No linked worktrees found")
		return nil
	}

	for _, e := range audit.Skipped {
		logWarning("Keeping %s (%s): %s", e.Branch, e.Path, e.SkipReason())
	}

	if len(audit.Removable) == 0 {
		logInfo("Nothing to remove")
		return nil
	}

	fmt.Println("Worktrees to remove:")
	for _, e := range audit.Removable {
		fmt.Printf("  %s  %s\n", e.Branch, e.Path)
	}

	if !cleanYes {
		ok, err := confirm(os.Stdin, fmt.Sprintf("Remove %d worktree(s)?", len(audit.Removable)), false)
		if err != nil {
			return err
		}
		if !ok {
			logInfo("Aborted, nothing removed")
			return nil
		}
	}

	removed, failures := worktree.NewReaper(repo, fs).Remove(ctx, audit.Removable)

	for _, e := range removed {
		logSuccess("Removed %s (%s)", e.Branch, e.Path)
	}
	for _, f := range failures {
		logging.UserError("Failed to remove %s (%s): %v", f.Entry.Branch, f.Entry.Path, f.Err)
	}

	if len(failures) > 0 {
		return errors.New(errors.ExitFilesystemError,
			fmt.Sprintf("failed to remove %d of %d worktrees", len(failures), len(audit.Removable)))
	}
	return nil
}
