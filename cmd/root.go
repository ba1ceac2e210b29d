package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ledgewood/gitpick/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
)

// version is overridden at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "gitpick",
	Short: "Pick a remote branch and check it out or open it as a worktree",
	Long: `gitpick lists the remote-tracking branches of your repository, ranked by
how often you have picked them before, and creates a timestamped local
branch tracking your selection.

Actions in the picker:
  Enter  - Check out the branch in the current working tree
  w      - Create a linked worktree for the branch
  /      - Filter branches
  q/Esc  - Cancel`,
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, os.Stderr)
	},
	RunE:          runPickFlow,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		logging.UserError("%v", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
)
