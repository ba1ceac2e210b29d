// Package git wraps the git CLI for the repository operations gitpick needs.
//
// All operations shell out to the git binary through a
// system.CommandExecutor rather than using a Go git library. Worktree and
// upstream-tracking behavior must match what the user's git does exactly,
// and go-git's support for both is limited.
package git

import (
	"context"
	"strconv"
	"strings"

	"github.com/ledgewood/gitpick/internal/errors"
	"github.com/ledgewood/gitpick/internal/system"
)

// Repository is a handle to a discovered git repository.
type Repository struct {
	exec      system.CommandExecutor
	root      string
	commonDir string
}

// Discover locates the repository containing dir and returns a handle
// rooted at its working tree top level.
func Discover(ctx context.Context, exec system.CommandExecutor, dir string) (*Repository, error) {
	out, err := exec.Execute(ctx, dir, "git", "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, errors.RepoNotFound(dir, err)
	}
	root := strings.TrimSpace(string(out))

	out, err = exec.Execute(ctx, root, "git", "rev-parse", "--path-format=absolute", "--git-common-dir")
	if err != nil {
		return nil, errors.RepoNotFound(dir, err)
	}

	return &Repository{
		exec:      exec,
		root:      root,
		commonDir: strings.TrimSpace(string(out)),
	}, nil
}

// Root returns the absolute path of the working tree top level.
func (r *Repository) Root() string {
	return r.root
}

// CommonDir returns the absolute path of the repository's common .git
// directory. Worktrees of one repository share it, so per-repository state
// files belong there.
func (r *Repository) CommonDir() string {
	return r.commonDir
}

func (r *Repository) git(ctx context.Context, args ...string) (string, error) {
	out, err := r.exec.Execute(ctx, r.root, "git", args...)
	return string(out), err
}

// HasRemote reports whether the named remote is configured.
func (r *Repository) HasRemote(ctx context.Context, remote string) bool {
	_, err := r.git(ctx, "remote", "get-url", remote)
	return err == nil
}

// ListRemoteBranches returns the short names of all remote-tracking
// branches under the given remote, with the remote prefix stripped.
// The remote's symbolic HEAD pointer is excluded.
func (r *Repository) ListRemoteBranches(ctx context.Context, remote string) ([]string, error) {
	out, err := r.git(ctx, "for-each-ref", "--format=%(refname:short)", "refs/remotes/"+remote+"/")
	if err != nil {
		return nil, errors.GitError("for-each-ref", err)
	}

	prefix := remote + "/"
	var names []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		short := strings.TrimPrefix(line, prefix)
		if short == "HEAD" || short == line {
			continue
		}
		names = append(names, short)
	}
	return names, nil
}

// RefExists reports whether a fully qualified ref resolves.
func (r *Repository) RefExists(ctx context.Context, ref string) bool {
	_, err := r.git(ctx, "rev-parse", "--verify", "--quiet", ref+"^{commit}")
	return err == nil
}

// BranchExists reports whether a local branch with the given name exists.
func (r *Repository) BranchExists(ctx context.Context, name string) bool {
	_, err := r.git(ctx, "show-ref", "--verify", "--quiet", "refs/heads/"+name)
	return err == nil
}

// CreateBranch creates a local branch pointed at startRef without
// switching to it.
func (r *Repository) CreateBranch(ctx context.Context, name, startRef string) error {
	if _, err := r.git(ctx, "branch", "--no-track", name, startRef); err != nil {
		return errors.GitError("branch "+name, err)
	}
	return nil
}

// DeleteBranch force-deletes a local branch. Used for rollback of a
// partially completed creation.
func (r *Repository) DeleteBranch(ctx context.Context, name string) error {
	if _, err := r.git(ctx, "branch", "-D", name); err != nil {
		return errors.GitError("branch -D "+name, err)
	}
	return nil
}

// SetUpstream records the tracking relationship of a local branch to a
// branch on the given remote.
func (r *Repository) SetUpstream(ctx context.Context, branch, remote, remoteBranch string) error {
	if _, err := r.git(ctx, "branch", "--set-upstream-to="+remote+"/"+remoteBranch, branch); err != nil {
		return errors.GitError("branch --set-upstream-to", err)
	}
	return nil
}

// Checkout switches the working tree to the named branch.
func (r *Repository) Checkout(ctx context.Context, branch string) error {
	if _, err := r.git(ctx, "checkout", branch); err != nil {
		return errors.RepoStateError("checkout refused for branch "+branch+" (commit or stash local changes first)", err)
	}
	return nil
}

// AddWorktree materializes the named branch as a new linked worktree at path.
func (r *Repository) AddWorktree(ctx context.Context, path, branch string) error {
	if _, err := r.git(ctx, "worktree", "add", path, branch); err != nil {
		return errors.RepoStateError("worktree add failed for "+path, err)
	}
	return nil
}

// PruneWorktrees drops stale administrative records for worktrees whose
// directories are gone.
func (r *Repository) PruneWorktrees(ctx context.Context) error {
	if _, err := r.git(ctx, "worktree", "prune"); err != nil {
		return errors.GitError("worktree prune", err)
	}
	return nil
}

// IsDirty reports whether the working tree at dir has any staged, unstaged
// or untracked change. Files matched by ignore rules do not count.
func (r *Repository) IsDirty(ctx context.Context, dir string) (bool, error) {
	out, err := r.exec.Execute(ctx, dir, "git", "status", "--porcelain")
	if err != nil {
		return false, errors.GitError("status", err)
	}
	return strings.TrimSpace(string(out)) != "", nil
}

// HeadBranch returns the short branch name checked out at dir, or "HEAD"
// when detached.
func (r *Repository) HeadBranch(ctx context.Context, dir string) (string, error) {
	out, err := r.exec.Execute(ctx, dir, "git", "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", errors.GitError("rev-parse HEAD", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// UpstreamStatus compares HEAD at dir against its configured upstream.
// When no upstream is configured it returns hasUpstream=false and no error.
func (r *Repository) UpstreamStatus(ctx context.Context, dir string) (hasUpstream bool, ahead, behind int, err error) {
	if _, err := r.exec.Execute(ctx, dir, "git", "rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{upstream}"); err != nil {
		return false, 0, 0, nil
	}

	out, err := r.exec.Execute(ctx, dir, "git", "rev-list", "--left-right", "--count", "HEAD...@{upstream}")
	if err != nil {
		return true, 0, 0, errors.GitError("rev-list --count", err)
	}

	ahead, behind, perr := parseAheadBehind(string(out))
	if perr != nil {
		return true, 0, 0, errors.GitError("rev-list --count", perr)
	}
	return true, ahead, behind, nil
}

func parseAheadBehind(out string) (int, int, error) {
	fields := strings.Fields(out)
	if len(fields) != 2 {
		return 0, 0, errors.New(errors.ExitGeneralError, "unexpected rev-list output: "+strings.TrimSpace(out))
	}
	ahead, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, err
	}
	behind, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, err
	}
	return ahead, behind, nil
}
