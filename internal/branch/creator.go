// Package branch implements the branch and worktree creation protocol.
//
// Both creation paths share one shape: resolve the remote ref, create a
// timestamped local branch at its commit, record the tracking
// relationship, then materialize (checkout in place or worktree add). The
// steps form one unit: a failure after the branch object exists rolls the
// branch back so repeated attempts never accumulate orphans. The usage
// counter is bumped only once the whole unit has succeeded.
package branch

import (
	"context"
	"path/filepath"
	"time"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/ledgewood/gitpick/internal/errors"
	"github.com/ledgewood/gitpick/internal/freq"
	"github.com/ledgewood/gitpick/internal/git"
	"github.com/ledgewood/gitpick/internal/logging"
	"github.com/ledgewood/gitpick/internal/system"
)

// timestampLayout renders local time as YYYYMMDDHHmmss.
const timestampLayout = "20060102150405"

// WorktreeResult reports a successful worktree creation.
type WorktreeResult struct {
	// Branch is the new local branch checked out in the worktree.
	Branch string

	// Path is the worktree directory, for the caller to open a shell in.
	Path string
}

// Creator creates tracking branches from remote-tracking branches.
type Creator struct {
	repo   *git.Repository
	store  *freq.Store
	fs     system.FileSystem
	remote string
	now    func() time.Time
}

// NewCreator returns a Creator bound to one repository, frequency store
// and remote name.
func NewCreator(repo *git.Repository, store *freq.Store, fs system.FileSystem, remote string) *Creator {
	return &Creator{
		repo:   repo,
		store:  store,
		fs:     fs,
		remote: remote,
		now:    time.Now,
	}
}

// GenerateName derives the local branch name for a remote branch:
// "<remote-short-name>-<local-timestamp>". Two creations within the same
// second generate the same name; the collision check turns the second
// into a NameCollision error instead of an overwrite.
func (c *Creator) GenerateName(remoteBranch string) string {
	return remoteBranch + "-" + c.now().Format(timestampLayout)
}

// CreateCheckout creates the timestamped local branch at the remote
// branch's commit, records tracking, switches the working tree to it and
// bumps the usage counter. Returns the new branch name.
func (c *Creator) CreateCheckout(ctx context.Context, remoteBranch string) (string, error) {
	name, err := c.createTrackingBranch(ctx, remoteBranch, c.GenerateName(remoteBranch))
	if err != nil {
		return "", err
	}

	if err := c.repo.Checkout(ctx, name); err != nil {
		c.rollback(ctx, name)
		return "", err
	}

	if err := c.store.Increment(remoteBranch); err != nil {
		return "", err
	}
	return name, nil
}

// CreateWorktree creates the same tracking branch and materializes it as a
// linked worktree under parentDir (the directory worktrees live in,
// typically the repository's parent). branchName is usually the generated
// name but may have been edited by the user; empty means generate.
func (c *Creator) CreateWorktree(ctx context.Context, remoteBranch, branchName, parentDir string) (*WorktreeResult, error) {
	if branchName == "" {
		branchName = c.GenerateName(remoteBranch)
	}
	if parentDir == "" {
		parentDir = filepath.Dir(c.repo.Root())
	}

	// Branch names may contain slashes; the joined path must stay under
	// parentDir.
	path, err := securejoin.SecureJoin(parentDir, branchName)
	if err != nil {
		return nil, errors.FilesystemError("resolve worktree path under", parentDir, err)
	}
	if c.fs.Exists(path) {
		return nil, errors.PathCollision(path)
	}

	name, err := c.createTrackingBranch(ctx, remoteBranch, branchName)
	if err != nil {
		return nil, err
	}

	if err := c.repo.AddWorktree(ctx, path, name); err != nil {
		c.rollback(ctx, name)
		return nil, err
	}

	if err := c.store.Increment(remoteBranch); err != nil {
		return nil, err
	}
	return &WorktreeResult{Branch: name, Path: path}, nil
}

// createTrackingBranch performs the shared first half of both creation
// paths: verify the remote ref still exists, check for a name collision,
// create the branch and wire its upstream. On upstream failure the fresh
// branch is rolled back.
func (c *Creator) createTrackingBranch(ctx context.Context, remoteBranch, name string) (string, error) {
	remoteRef := "refs/remotes/" + c.remote + "/" + remoteBranch
	if !c.repo.RefExists(ctx, remoteRef) {
		return "", errors.ConcurrentModification(c.remote + "/" + remoteBranch)
	}

	if c.repo.BranchExists(ctx, name) {
		return "", errors.NameCollision(name)
	}

	if err := c.repo.CreateBranch(ctx, name, remoteRef); err != nil {
		return "", err
	}

	if err := c.repo.SetUpstream(ctx, name, c.remote, remoteBranch); err != nil {
		c.rollback(ctx, name)
		return "", err
	}

	logging.Debug("created tracking branch", "branch", name, "upstream", c.remote+"/"+remoteBranch)
	return name, nil
}

// rollback deletes a partially created branch. A failed rollback is only
// logged: the original error matters more to the caller.
func (c *Creator) rollback(ctx context.Context, name string) {
	if err := c.repo.DeleteBranch(ctx, name); err != nil {
		logging.Warn("failed to roll back partially created branch", "branch", name, "error", err)
	}
}
