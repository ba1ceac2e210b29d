// Package testutil provides real-repository fixtures for integration tests.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// RequireGit skips the test if git is not available.
func RequireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found in PATH, skipping test")
	}
}

// Git runs a git command in dir and fails the test on error.
func Git(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v failed: %s: %v", args, output, err)
	}
	return string(output)
}

// InitRepo creates a git repository with one commit on branch main and
// returns its path.
func InitRepo(t *testing.T) string {
	t.Helper()
	RequireGit(t)
	dir := t.TempDir()

	cmd := exec.Command("git", "init", "-b", "main", dir)
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to init git repo: %s: %v", output, err)
	}

	Git(t, dir, "config", "user.email", "test@test.com")
	Git(t, dir, "config", "user.name", "Test User")

	CommitFile(t, dir, "README.md", "# Test\n", "Initial commit")
	return dir
}

// CommitFile writes a file and commits it.
func CommitFile(t *testing.T, dir, name, content, message string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	Git(t, dir, "add", name)
	Git(t, dir, "commit", "-m", message)
}

// CloneRepo clones upstream into a fresh directory so the clone has an
// `origin` remote with remote-tracking branches, and returns the clone path.
func CloneRepo(t *testing.T, upstream string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "clone")

	cmd := exec.Command("git", "clone", upstream, dir)
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to clone repo: %s: %v", output, err)
	}

	Git(t, dir, "config", "user.email", "test@test.com")
	Git(t, dir, "config", "user.name", "Test User")
	return dir
}

// AddRemoteBranch creates a branch in upstream and fetches it into clone,
// producing a remote-tracking branch origin/<name>.
func AddRemoteBranch(t *testing.T, upstream, clone, name string) {
	t.Helper()
	Git(t, upstream, "branch", name)
	Git(t, clone, "fetch", "origin")
}
