// Package worktree classifies and reclaims linked worktrees.
//
// The auditor inspects every linked worktree of a repository and decides,
// from repository metadata alone, whether it is safe to remove: the
// working tree must be clean and its branch must not be strictly ahead of
// a configured upstream. Classification never mutates anything, so it can
// be re-run and shown to the user before the reaper acts on it.
package worktree

import (
	"context"
	"strings"

	"github.com/ledgewood/gitpick/internal/git"
	"github.com/ledgewood/gitpick/internal/logging"
)

// Skip reasons reported for worktrees that are not safe to remove.
const (
	ReasonUncommitted = "uncommitted changes"
	ReasonUnpushed    = "unpushed commits"
)

// Entry is the audit result for one linked worktree, derived fresh on
// every pass.
type Entry struct {
	// Branch is the checked-out branch short name, or "(detached)".
	Branch string

	// Path is the worktree's absolute directory.
	Path string

	// Dirty is true when the working tree has any staged, unstaged or
	// untracked change (ignore rules honored). A worktree whose status
	// cannot be read counts as dirty.
	Dirty bool

	// HasUpstream is false when no upstream is configured, which also
	// covers detached HEADs.
	HasUpstream bool

	// Ahead and Behind count commits relative to the upstream. Only
	// meaningful when HasUpstream is true.
	Ahead  int
	Behind int
}

// FullyPushed reports whether the worktree's HEAD is covered by its
// upstream: an upstream exists and HEAD is not strictly ahead of it.
// Behind or even is fine; no upstream is not fully pushed.
func (e Entry) FullyPushed() bool {
	return e.HasUpstream && e.Ahead == 0
}

// Removable reports whether the worktree is safe to remove.
func (e Entry) Removable() bool {
	return !e.Dirty && e.FullyPushed()
}

// SkipReason renders why a non-removable worktree is skipped.
func (e Entry) SkipReason() string {
	var reasons []string
	if e.Dirty {
		reasons = append(reasons, ReasonUncommitted)
	}
	if !e.FullyPushed() {
		reasons = append(reasons, ReasonUnpushed)
	}
	return strings.Join(reasons, " and ")
}

// Audit partitions the linked worktrees of one pass.
type Audit struct {
	// Removable holds the safe-to-remove worktrees in listing order.
	Removable []Entry

	// Skipped holds the rest, each with a SkipReason.
	Skipped []Entry
}

// Empty reports whether the repository has no linked worktrees at all.
func (a *Audit) Empty() bool {
	return len(a.Removable) == 0 && len(a.Skipped) == 0
}

// Auditor classifies the linked worktrees of one repository.
type Auditor struct {
	repo *git.Repository
}

// NewAuditor returns an Auditor for the repository.
func NewAuditor(repo *git.Repository) *Auditor {
	return &Auditor{repo: repo}
}

// Run inspects every linked worktree (the main working tree is excluded)
// and partitions them. Entries keep the stable order git lists them in.
func (a *Auditor) Run(ctx context.Context) (*Audit, error) {
	linked, err := a.repo.LinkedWorktrees(ctx)
	if err != nil {
		return nil, err
	}

	audit := &Audit{}
	for _, wt := range linked {
		entry := a.inspect(ctx, wt)
		if entry.Removable() {
			audit.Removable = append(audit.Removable, entry)
		} else {
			audit.Skipped = append(audit.Skipped, entry)
		}
	}
	return audit, nil
}

func (a *Auditor) inspect(ctx context.Context, wt git.WorktreeInfo) Entry {
	entry := Entry{
		Branch: wt.BranchShort(),
		Path:   wt.Path,
	}
	if wt.IsDetached() {
		entry.Branch = "(detached)"
	}

	dirty, err := a.repo.IsDirty(ctx, wt.Path)
	if err != nil {
		// An unreadable worktree is never safe to remove.
		logging.Warn("could not read worktree status", "path", wt.Path, "error", err)
		entry.Dirty = true
		return entry
	}
	entry.Dirty = dirty

	hasUpstream, ahead, behind, err := a.repo.UpstreamStatus(ctx, wt.Path)
	if err != nil {
		logging.Warn("could not compare worktree against upstream", "path", wt.Path, "error", err)
		return entry
	}
	entry.HasUpstream = hasUpstream
	entry.Ahead = ahead
	entry.Behind = behind

	return entry
}
