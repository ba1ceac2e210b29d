package logging

import (
	"fmt"
	"io"
	"os"
)

// User-facing output, separate from the structured debug logging: picker
// results, creation summaries and clean reports go through these so they
// stay readable when --json redirects the slog output.
//
// Informational and success lines go to stdout; warnings (skipped
// worktrees) and errors go to stderr so piped stdout stays clean.

var (
	// Out and ErrOut are the user output streams, swappable in tests.
	Out    io.Writer = os.Stdout
	ErrOut io.Writer = os.Stderr
)

func userf(w io.Writer, prefix, format string, args []interface{}) {
	fmt.Fprintf(w, prefix+" "+format+"\n", args...)
}

// UserInfo prints a neutral status line, e.g. "nothing to remove".
func UserInfo(format string, args ...interface{}) {
	userf(Out, "ℹ", format, args)
}

// UserSuccess prints the outcome of a completed operation, e.g. the
// branch that was checked out or the worktree that was created.
func UserSuccess(format string, args ...interface{}) {
	userf(Out, "✓", format, args)
}

// UserWarning prints a non-fatal condition, e.g. a worktree kept because
// it has unpushed commits.
func UserWarning(format string, args ...interface{}) {
	userf(ErrOut, "⚠", format, args)
}

// UserError prints a failure the run will exit nonzero for.
func UserError(format string, args ...interface{}) {
	userf(ErrOut, "✗", format, args)
}
