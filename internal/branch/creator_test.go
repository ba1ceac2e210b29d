package branch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ledgewood/gitpick/internal/errors"
	"github.com/ledgewood/gitpick/internal/freq"
	"github.com/ledgewood/gitpick/internal/git"
	"github.com/ledgewood/gitpick/internal/system"
	"github.com/ledgewood/gitpick/internal/testutil"
)

func fixedClock(stamp string) func() time.Time {
	ts, err := time.ParseInLocation("20060102150405", stamp, time.Local)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return ts }
}

// cloneFixture builds a clone with origin/develop available and returns the
// repo handle, its frequency store and a Creator with a fixed clock.
func cloneFixture(t *testing.T) (*git.Repository, *freq.Store, *Creator) {
	t.Helper()
	upstream := testutil.InitRepo(t)
	clone := testutil.CloneRepo(t, upstream)
	testutil.AddRemoteBranch(t, upstream, clone, "develop")

	repo, err := git.Discover(context.Background(), system.DefaultExecutor(), clone)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	store, err := freq.Open(system.DefaultFS(), repo.CommonDir())
	if err != nil {
		t.Fatalf("freq.Open() error = %v", err)
	}

	creator := NewCreator(repo, store, system.DefaultFS(), "origin")
	creator.now = fixedClock("20260101120000")
	return repo, store, creator
}

func TestGenerateName(t *testing.T) {
	c := &Creator{now: fixedClock("20260101120000")}

	if got := c.GenerateName("feature/x"); got != "feature/x-20260101120000" {
		t.Errorf("GenerateName() = %q, want %q", got, "feature/x-20260101120000")
	}
}

func TestCreateCheckout(t *testing.T) {
	repo, _, creator := cloneFixture(t)
	ctx := context.Background()

	// Seed frequency 3 for develop.
	seed := fmt.Sprintf("{%q: 3}", "develop")
	if err := os.WriteFile(filepath.Join(repo.CommonDir(), freq.FileName), []byte(seed), 0644); err != nil {
		t.Fatal(err)
	}
	store, err := freq.Open(system.DefaultFS(), repo.CommonDir())
	if err != nil {
		t.Fatal(err)
	}
	creator.store = store

	name, err := creator.CreateCheckout(ctx, "develop")
	if err != nil {
		t.Fatalf("CreateCheckout() error = %v", err)
	}
	if name != "develop-20260101120000" {
		t.Errorf("branch name = %q, want %q", name, "develop-20260101120000")
	}

	// The working tree switched to the new branch.
	head, err := repo.HeadBranch(ctx, repo.Root())
	if err != nil {
		t.Fatal(err)
	}
	if head != name {
		t.Errorf("HEAD = %q, want %q", head, name)
	}

	// Tracking relationship points at origin/develop.
	merge := strings.TrimSpace(testutil.Git(t, repo.Root(), "config", "branch."+name+".merge"))
	if merge != "refs/heads/develop" {
		t.Errorf("branch.%s.merge = %q, want refs/heads/develop", name, merge)
	}

	// The frequency store reports one more than before.
	reloaded, err := freq.Open(system.DefaultFS(), repo.CommonDir())
	if err != nil {
		t.Fatal(err)
	}
	if got := reloaded.Count("develop"); got != 4 {
		t.Errorf("Count(develop) = %d, want 4", got)
	}
}

func TestCreateCheckout_NameCollision(t *testing.T) {
	repo, store, creator := cloneFixture(t)
	ctx := context.Background()

	testutil.Git(t, repo.Root(), "branch", "develop-20260101120000")

	_, err := creator.CreateCheckout(ctx, "develop")
	if err == nil {
		t.Fatal("CreateCheckout() should fail on a name collision")
	}
	if errors.GetExitCode(err) != errors.ExitNameCollision {
		t.Errorf("exit code = %d, want %d", errors.GetExitCode(err), errors.ExitNameCollision)
	}

	// A failed creation must not increment.
	if got := store.Count("develop"); got != 0 {
		t.Errorf("Count(develop) = %d, want 0 after failure", got)
	}
}

func TestCreateCheckout_RemoteRefVanished(t *testing.T) {
	_, store, creator := cloneFixture(t)

	_, err := creator.CreateCheckout(context.Background(), "deleted-upstream")
	if err == nil {
		t.Fatal("CreateCheckout() should fail for a vanished remote ref")
	}
	if errors.GetExitCode(err) != errors.ExitConcurrentModification {
		t.Errorf("exit code = %d, want %d", errors.GetExitCode(err), errors.ExitConcurrentModification)
	}
	if got := store.Count("deleted-upstream"); got != 0 {
		t.Errorf("Count = %d, want 0 after failure", got)
	}
}

func TestCreateWorktree(t *testing.T) {
	repo, _, creator := cloneFixture(t)
	ctx := context.Background()

	parent := t.TempDir()
	res, err := creator.CreateWorktree(ctx, "develop", "", parent)
	if err != nil {
		t.Fatalf("CreateWorktree() error = %v", err)
	}

	if res.Branch != "develop-20260101120000" {
		t.Errorf("Branch = %q", res.Branch)
	}
	wantPath := filepath.Join(parent, "develop-20260101120000")
	if res.Path != wantPath {
		t.Errorf("Path = %q, want %q", res.Path, wantPath)
	}

	if _, err := os.Stat(res.Path); err != nil {
		t.Fatalf("worktree directory missing: %v", err)
	}

	// The worktree has the new branch checked out with tracking set.
	head, err := repo.HeadBranch(ctx, res.Path)
	if err != nil {
		t.Fatal(err)
	}
	if head != res.Branch {
		t.Errorf("worktree HEAD = %q, want %q", head, res.Branch)
	}
	upstream := strings.TrimSpace(testutil.Git(t, res.Path, "rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{upstream}"))
	if upstream != "origin/develop" {
		t.Errorf("upstream = %q, want origin/develop", upstream)
	}
}

func TestCreateWorktree_SlashedBranchStaysUnderParent(t *testing.T) {
	_, _, creator := cloneFixture(t)

	parent := t.TempDir()
	res, err := creator.CreateWorktree(context.Background(), "develop", "feature/deep/name-20260101120000", parent)
	if err != nil {
		t.Fatalf("CreateWorktree() error = %v", err)
	}

	rel, err := filepath.Rel(parent, res.Path)
	if err != nil || strings.HasPrefix(rel, "..") {
		t.Errorf("worktree path %q escapes parent %q", res.Path, parent)
	}
}

func TestCreateWorktree_PathCollision(t *testing.T) {
	_, store, creator := cloneFixture(t)

	parent := t.TempDir()
	occupied := filepath.Join(parent, "develop-20260101120000")
	if err := os.MkdirAll(occupied, 0755); err != nil {
		t.Fatal(err)
	}

	_, err := creator.CreateWorktree(context.Background(), "develop", "", parent)
	if err == nil {
		t.Fatal("CreateWorktree() should fail on an occupied path")
	}
	if errors.GetExitCode(err) != errors.ExitPathCollision {
		t.Errorf("exit code = %d, want %d", errors.GetExitCode(err), errors.ExitPathCollision)
	}
	if got := store.Count("develop"); got != 0 {
		t.Errorf("Count = %d, want 0 after failure", got)
	}
}

// Rollback behavior is exercised with a mock executor so individual git
// steps can be made to fail.
func TestCreateCheckout_RollsBackOnCheckoutFailure(t *testing.T) {
	exec := system.NewMockExecutor()
	exec.AddResponse("git rev-parse --show-toplevel", []byte("/repo\n"), nil)
	exec.AddResponse("git rev-parse --path-format=absolute --git-common-dir", []byte("/repo/.git\n"), nil)
	exec.AddResponse("git rev-parse --verify", []byte("abc123\n"), nil)
	exec.AddResponse("git show-ref", nil, fmt.Errorf("exit status 1")) // branch does not exist yet
	exec.AddResponse("git branch", nil, nil)
	exec.AddResponse("git checkout", nil, fmt.Errorf("local changes would be overwritten"))

	repo, err := git.Discover(context.Background(), exec, "/repo")
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	store, err := freq.Open(system.NewMockFS(), "/repo/.git")
	if err != nil {
		t.Fatal(err)
	}

	creator := NewCreator(repo, store, system.NewMockFS(), "origin")
	creator.now = fixedClock("20260101120000")

	_, err = creator.CreateCheckout(context.Background(), "develop")
	if err == nil {
		t.Fatal("CreateCheckout() should propagate the checkout failure")
	}
	if errors.GetExitCode(err) != errors.ExitRepoStateError {
		t.Errorf("exit code = %d, want %d", errors.GetExitCode(err), errors.ExitRepoStateError)
	}

	// The partially created branch was deleted.
	var rolledBack bool
	for _, cmd := range exec.Commands {
		if cmd.Name == "git" && len(cmd.Args) >= 3 && cmd.Args[0] == "branch" && cmd.Args[1] == "-D" && cmd.Args[2] == "develop-20260101120000" {
			rolledBack = true
		}
	}
	if !rolledBack {
		t.Error("expected git branch -D rollback after checkout failure")
	}

	if got := store.Count("develop"); got != 0 {
		t.Errorf("Count = %d, want 0 after rollback", got)
	}
}

func TestCreateWorktree_RollsBackOnUpstreamFailure(t *testing.T) {
	exec := system.NewMockExecutor()
	exec.AddResponse("git rev-parse --show-toplevel", []byte("/repo\n"), nil)
	exec.AddResponse("git rev-parse --path-format=absolute --git-common-dir", []byte("/repo/.git\n"), nil)
	exec.AddResponse("git rev-parse --verify", []byte("abc123\n"), nil)
	exec.AddResponse("git show-ref", nil, fmt.Errorf("exit status 1"))
	exec.AddResponse("git branch --no-track", nil, nil)
	exec.AddResponse("git branch --set-upstream-to=origin/develop", nil, fmt.Errorf("config locked"))
	exec.AddResponse("git branch -D", nil, nil)

	repo, err := git.Discover(context.Background(), exec, "/repo")
	if err != nil {
		t.Fatal(err)
	}
	store, err := freq.Open(system.NewMockFS(), "/repo/.git")
	if err != nil {
		t.Fatal(err)
	}

	creator := NewCreator(repo, store, system.NewMockFS(), "origin")
	creator.now = fixedClock("20260101120000")

	_, err = creator.CreateWorktree(context.Background(), "develop", "", "/parent")
	if err == nil {
		t.Fatal("CreateWorktree() should propagate the upstream failure")
	}

	var rolledBack, addedWorktree bool
	for _, cmd := range exec.Commands {
		if cmd.Name != "git" || len(cmd.Args) == 0 {
			continue
		}
		if cmd.Args[0] == "branch" && len(cmd.Args) >= 2 && cmd.Args[1] == "-D" {
			rolledBack = true
		}
		if cmd.Args[0] == "worktree" && len(cmd.Args) >= 2 && cmd.Args[1] == "add" {
			addedWorktree = true
		}
	}
	if !rolledBack {
		t.Error("expected branch rollback after upstream failure")
	}
	if addedWorktree {
		t.Error("worktree add must not run after upstream failure")
	}
}
