package worktree

import (
	"context"

	"github.com/ledgewood/gitpick/internal/errors"
	"github.com/ledgewood/gitpick/internal/git"
	"github.com/ledgewood/gitpick/internal/logging"
	"github.com/ledgewood/gitpick/internal/system"
)

// RemovalFailure reports one worktree the reaper could not remove.
type RemovalFailure struct {
	Entry Entry
	Err   error
}

// Reaper removes worktrees the auditor classified as safe. It only ever
// runs after the caller has collected explicit affirmative consent.
type Reaper struct {
	repo *git.Repository
	fs   system.FileSystem
}

// NewReaper returns a Reaper for the repository.
func NewReaper(repo *git.Repository, fs system.FileSystem) *Reaper {
	return &Reaper{repo: repo, fs: fs}
}

// Remove deletes each entry's directory and prunes the repository's
// worktree registry. A failed entry does not abort the batch: the rest
// are still processed and every failure is reported individually.
func (r *Reaper) Remove(ctx context.Context, entries []Entry) (removed []Entry, failures []RemovalFailure) {
	for _, entry := range entries {
		if err := r.fs.RemoveAll(entry.Path); err != nil {
			failures = append(failures, RemovalFailure{
				Entry: entry,
				Err:   errors.FilesystemError("remove", entry.Path, err),
			})
			continue
		}

		// Drop the administrative record now that the directory is gone.
		if err := r.repo.PruneWorktrees(ctx); err != nil {
			logging.Warn("worktree prune failed", "path", entry.Path, "error", err)
		}

		logging.Debug("removed worktree", "branch", entry.Branch, "path", entry.Path)
		removed = append(removed, entry)
	}
	return removed, failures
}
