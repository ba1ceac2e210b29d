package system

import (
	"context"
	"errors"
	"testing"
)

func TestMockExecutor_PrefixMatching(t *testing.T) {
	m := NewMockExecutor()
	m.AddResponse("git rev-parse --verify", []byte("abc123\n"), nil)
	m.AddResponse("git rev-parse", []byte("fallback\n"), nil)
	m.AddResponse("git worktree", nil, errors.New("boom"))

	out, err := m.Execute(context.Background(), "/repo", "git", "rev-parse", "--verify", "refs/heads/x")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if string(out) != "abc123\n" {
		t.Errorf("Execute() = %q, want %q", out, "abc123\n")
	}

	out, err = m.Execute(context.Background(), "/repo", "git", "rev-parse", "HEAD")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if string(out) != "fallback\n" {
		t.Errorf("Execute() = %q, want %q", out, "fallback\n")
	}

	if _, err := m.Execute(context.Background(), "/repo", "git", "worktree", "add", "/x"); err == nil {
		t.Error("Execute() should return injected error")
	}
}

func TestMockExecutor_RecordsCommands(t *testing.T) {
	m := NewMockExecutor()

	_, _ = m.Execute(context.Background(), "/repo", "git", "status", "--porcelain")

	last, ok := m.LastCommand()
	if !ok {
		t.Fatal("LastCommand() returned no command")
	}
	if last.Dir != "/repo" || last.Name != "git" || last.Args[0] != "status" {
		t.Errorf("LastCommand() = %+v", last)
	}

	m.Reset()
	if _, ok := m.LastCommand(); ok {
		t.Error("LastCommand() after Reset should report no commands")
	}
}

func TestMockFS_RoundTrip(t *testing.T) {
	fs := NewMockFS()

	if err := fs.WriteFile("/state/freq.json", []byte("{}"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if !fs.Exists("/state/freq.json") {
		t.Error("Exists() should be true after WriteFile")
	}

	data, err := fs.ReadFile("/state/freq.json")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("ReadFile() = %q, want %q", data, "{}")
	}

	if err := fs.Rename("/state/freq.json", "/state/freq2.json"); err != nil {
		t.Fatalf("Rename() error = %v", err)
	}
	if fs.Exists("/state/freq.json") {
		t.Error("old path should be gone after Rename")
	}
	if !fs.Exists("/state/freq2.json") {
		t.Error("new path should exist after Rename")
	}
}

func TestMockFS_RemoveAll(t *testing.T) {
	fs := NewMockFS()
	fs.AddFile("/wt/feature/a.txt", []byte("a"), 0644)
	fs.AddFile("/wt/feature/sub/b.txt", []byte("b"), 0644)
	fs.AddFile("/wt/other.txt", []byte("c"), 0644)

	if err := fs.RemoveAll("/wt/feature"); err != nil {
		t.Fatalf("RemoveAll() error = %v", err)
	}
	if fs.Exists("/wt/feature/a.txt") || fs.Exists("/wt/feature/sub/b.txt") {
		t.Error("children should be removed")
	}
	if !fs.Exists("/wt/other.txt") {
		t.Error("sibling should be untouched")
	}
}
