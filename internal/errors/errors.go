package errors

import (
	"errors"
	"fmt"
)

// Exit codes for gitpick
const (
	ExitSuccess                = 0
	ExitGeneralError           = 1
	ExitRepoNotFound           = 2
	ExitRemoteNotConfigured    = 3
	ExitNameCollision          = 4
	ExitPathCollision          = 5
	ExitConcurrentModification = 6
	ExitCorruptFrequencyStore  = 7
	ExitFilesystemError        = 8
	ExitRepoStateError         = 9
)

// PickError is the base error type for gitpick
type PickError struct {
	Code    int
	Message string
	Cause   error
}

func (e *PickError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *PickError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *PickError) ExitCode() int {
	return e.Code
}

// New creates a new PickError
func New(code int, message string) *PickError {
	return &PickError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a PickError
func Wrap(code int, message string, cause error) *PickError {
	return &PickError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// RepoNotFound returns an error for running outside a git working directory
func RepoNotFound(dir string, cause error) *PickError {
	return Wrap(ExitRepoNotFound, fmt.Sprintf("not inside a git repository: %s", dir), cause)
}

// RemoteNotConfigured returns an error for a missing remote
func RemoteNotConfigured(remote string) *PickError {
	return New(ExitRemoteNotConfigured, fmt.Sprintf("remote %q is not configured (git remote add %s <url>)", remote, remote))
}

// NameCollision returns an error for an already-existing branch name
func NameCollision(branch string) *PickError {
	return New(ExitNameCollision, fmt.Sprintf("branch %q already exists", branch))
}

// PathCollision returns an error for an occupied worktree target path
func PathCollision(path string) *PickError {
	return New(ExitPathCollision, fmt.Sprintf("worktree path already occupied: %s", path))
}

// ConcurrentModification returns an error for a remote ref that vanished
// between listing and use
func ConcurrentModification(ref string) *PickError {
	return New(ExitConcurrentModification, fmt.Sprintf("remote branch %q no longer exists (a fetch may have pruned it)", ref))
}

// CorruptFrequencyStore returns an error for unreadable persisted state
func CorruptFrequencyStore(path string, cause error) *PickError {
	return Wrap(ExitCorruptFrequencyStore, fmt.Sprintf("frequency store is corrupt: %s", path), cause)
}

// FilesystemError returns an error for I/O failures during worktree
// creation or removal
func FilesystemError(op, path string, cause error) *PickError {
	return Wrap(ExitFilesystemError, fmt.Sprintf("%s failed for %s", op, path), cause)
}

// RepoStateError returns an error for a locked or incompatible repository state
func RepoStateError(message string, cause error) *PickError {
	return Wrap(ExitRepoStateError, message, cause)
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *PickError {
	return Wrap(ExitGeneralError, message, cause)
}

// GitError returns an error for a failed git invocation
func GitError(op string, cause error) *PickError {
	return Wrap(ExitGeneralError, fmt.Sprintf("git %s failed", op), cause)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var pickErr *PickError
	if errors.As(err, &pickErr) {
		return pickErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
