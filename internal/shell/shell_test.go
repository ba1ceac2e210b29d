package shell

import (
	"context"
	"fmt"
	"testing"

	"github.com/ledgewood/gitpick/internal/config"
	"github.com/ledgewood/gitpick/internal/errors"
	"github.com/ledgewood/gitpick/internal/system"
)

func TestSpawnUsesConfiguredShell(t *testing.T) {
	exec := system.NewMockExecutor()
	cfg := &config.Config{Shell: "zsh -l"}

	if err := Spawn(context.Background(), exec, cfg, "/work/repo-wt"); err != nil {
		t.Fatalf("Spawn() error = %v", err)
	}

	cmd, ok := exec.LastCommand()
	if !ok {
		t.Fatal("no command was executed")
	}
	if cmd.Name != "zsh" {
		t.Errorf("shell = %q, want %q", cmd.Name, "zsh")
	}
	if len(cmd.Args) != 1 || cmd.Args[0] != "-l" {
		t.Errorf("args = %v, want [-l]", cmd.Args)
	}
	if cmd.Dir != "/work/repo-wt" {
		t.Errorf("dir = %q, want worktree path", cmd.Dir)
	}
}

func TestSpawnFallsBackToShellEnv(t *testing.T) {
	t.Setenv("SHELL", "/bin/bash")

	exec := system.NewMockExecutor()
	if err := Spawn(context.Background(), exec, config.Default(), "/work"); err != nil {
		t.Fatalf("Spawn() error = %v", err)
	}

	cmd, ok := exec.LastCommand()
	if !ok || cmd.Name != "/bin/bash" {
		t.Errorf("command = %+v, want $SHELL", cmd)
	}
}

func TestSpawnReportsShellFailure(t *testing.T) {
	exec := system.NewMockExecutor()
	exec.InteractiveErr = fmt.Errorf("exit status 130")

	err := Spawn(context.Background(), exec, &config.Config{Shell: "zsh"}, "/work")
	if err == nil {
		t.Fatal("expected error from failing shell")
	}
	if errors.GetExitCode(err) != errors.ExitRepoStateError {
		t.Errorf("exit code = %d, want %d", errors.GetExitCode(err), errors.ExitRepoStateError)
	}
}

func TestSpawnInvalidShellConfig(t *testing.T) {
	exec := system.NewMockExecutor()
	err := Spawn(context.Background(), exec, &config.Config{Shell: "zsh 'unterminated"}, "/work")
	if err == nil {
		t.Fatal("expected error for malformed shell command")
	}
	if _, ok := exec.LastCommand(); ok {
		t.Error("no shell should be spawned when the config is invalid")
	}
}
