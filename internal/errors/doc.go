// Package errors provides typed errors with exit codes for gitpick.
//
// # Error Types
//
// PickError is the base error type that wraps an error with an exit code:
//
//	type PickError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
// Defined exit codes for different error categories:
//
//	ExitSuccess                = 0  // Success (including user cancel)
//	ExitGeneralError           = 1  // General/unknown errors
//	ExitRepoNotFound           = 2  // Not inside a git working directory
//	ExitRemoteNotConfigured    = 3  // Configured remote does not exist
//	ExitNameCollision          = 4  // Generated branch name already exists
//	ExitPathCollision          = 5  // Worktree target path occupied
//	ExitConcurrentModification = 6  // Remote ref vanished between listing and use
//	ExitCorruptFrequencyStore  = 7  // Persisted frequency state unreadable
//	ExitFilesystemError        = 8  // I/O failure during worktree create/remove
//	ExitRepoStateError         = 9  // Repository locked or in an incompatible state
//
// # Error Constructors
//
// Use the provided constructors for consistent error creation:
//
//	errors.NameCollision("develop-20260101120000")
//	errors.PathCollision("/repos/develop-20260101120000")
//	errors.CorruptFrequencyStore(path, err)
//
// # Extracting Exit Codes
//
// Use GetExitCode to extract the exit code from an error chain:
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
