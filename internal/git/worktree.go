package git

import (
	"context"
	"strings"

	"github.com/ledgewood/gitpick/internal/errors"
)

// WorktreeInfo holds one entry parsed from `git worktree list --porcelain`.
//
// Example block:
//
//	worktree /path/to/feature-branch
//	HEAD abc123def456
//	branch refs/heads/feature-branch
type WorktreeInfo struct {
	// Path is the absolute filesystem path to the worktree directory.
	Path string

	// Branch is the full branch reference (e.g. "refs/heads/main").
	// Empty when the worktree is in a detached HEAD state.
	Branch string

	// HEAD is the commit the worktree currently points to.
	HEAD string

	// IsBare marks the bare repository entry.
	IsBare bool

	// IsMain marks the main working tree (or the bare entry). Git lists
	// it first regardless of which worktree the command ran from.
	IsMain bool
}

// BranchShort returns the branch name without the refs/heads/ prefix.
func (w WorktreeInfo) BranchShort() string {
	return strings.TrimPrefix(w.Branch, "refs/heads/")
}

// IsDetached reports whether the worktree has no branch checked out.
func (w WorktreeInfo) IsDetached() bool {
	return !w.IsBare && w.Branch == ""
}

// Worktrees lists every working tree of the repository, the main one
// first, in the stable order git reports them.
func (r *Repository) Worktrees(ctx context.Context) ([]WorktreeInfo, error) {
	out, err := r.git(ctx, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, errors.GitError("worktree list", err)
	}
	return parseWorktreeList(out), nil
}

// LinkedWorktrees lists only the linked worktrees, excluding the main
// working tree and any bare entry.
func (r *Repository) LinkedWorktrees(ctx context.Context) ([]WorktreeInfo, error) {
	all, err := r.Worktrees(ctx)
	if err != nil {
		return nil, err
	}
	var linked []WorktreeInfo
	for _, wt := range all {
		if wt.IsBare || wt.IsMain {
			continue
		}
		linked = append(linked, wt)
	}
	return linked, nil
}

// parseWorktreeList parses `git worktree list --porcelain` output. Blocks
// are separated by blank lines; each line is a key, optionally followed by
// a value. Markers like "bare" and "detached" stand alone.
func parseWorktreeList(out string) []WorktreeInfo {
	var worktrees []WorktreeInfo

	var current *WorktreeInfo
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		if line == "" {
			if current != nil {
				worktrees = append(worktrees, *current)
				current = nil
			}
			continue
		}

		key, value, _ := strings.Cut(line, " ")
		switch key {
		case "worktree":
			current = &WorktreeInfo{Path: value}
		case "HEAD":
			if current != nil {
				current.HEAD = value
			}
		case "branch":
			if current != nil {
				current.Branch = value
			}
		case "bare":
			if current != nil {
				current.IsBare = true
			}
			// A detached worktree simply has no branch line.
		}
	}
	if current != nil {
		worktrees = append(worktrees, *current)
	}

	// Git always lists the main working tree (or the bare repository)
	// first, even when invoked from a linked worktree.
	if len(worktrees) > 0 {
		worktrees[0].IsMain = true
	}

	return worktrees
}
