// Package logging provides logging utilities for gitpick.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("creating branch", "name", name, "upstream", upstream)
//	logging.Warn("worktree prune failed", "name", name, "error", err)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Found %d remote branches", len(items))
//	logging.UserSuccess("Switched to new branch %s", name)
//	logging.UserWarning("Skipping %s: %s", name, reason)
//	logging.UserError("Failed to remove %s: %v", path, err)
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr
package logging
