// Package freq persists per-repository branch usage counters.
//
// The store is a single flat JSON object mapping branch short names to
// counts, kept in the repository's common .git directory so every worktree
// of one repository shares the same counters and different repositories
// never do.
//
// Writes go through a temp-file-and-rename so a killed process cannot
// leave a truncated file behind. There is no cross-process locking: two
// invocations racing on load-modify-save can lose one increment. That is a
// documented best-effort limitation, not a correctness guarantee.
package freq

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/ledgewood/gitpick/internal/errors"
	"github.com/ledgewood/gitpick/internal/logging"
	"github.com/ledgewood/gitpick/internal/system"
)

// FileName is the store file inside the repository's common .git directory.
const FileName = "branch-picker-freq.json"

// Store holds the usage counters for one repository, loaded fully into
// memory and flushed on every mutation.
type Store struct {
	fs     system.FileSystem
	path   string
	counts map[string]uint64
}

// Open loads the store for the repository whose common .git directory is
// commonDir. A missing file yields an empty store; a file that exists but
// does not parse is corruption and is never silently reset.
func Open(fs system.FileSystem, commonDir string) (*Store, error) {
	path := filepath.Join(commonDir, FileName)

	s := &Store{
		fs:     fs,
		path:   path,
		counts: make(map[string]uint64),
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, errors.CorruptFrequencyStore(path, err)
	}

	if err := json.Unmarshal(data, &s.counts); err != nil {
		return nil, errors.CorruptFrequencyStore(path, err)
	}
	if s.counts == nil {
		s.counts = make(map[string]uint64)
	}

	logging.Debug("loaded frequency store", "path", path, "entries", len(s.counts))
	return s, nil
}

// Path returns the on-disk location of the store file.
func (s *Store) Path() string {
	return s.path
}

// Count returns the usage count for a branch short name; unknown branches
// are 0.
func (s *Store) Count(name string) uint64 {
	return s.counts[name]
}

// Increment raises the count for name by exactly 1 and persists the whole
// record before returning. Callers invoke it only after a branch creation
// has fully succeeded.
func (s *Store) Increment(name string) error {
	s.counts[name]++
	if err := s.save(); err != nil {
		// Undo the in-memory bump so a retry does not double-count.
		s.counts[name]--
		return err
	}
	logging.Debug("incremented branch frequency", "branch", name, "count", s.counts[name])
	return nil
}

// save writes the record to a temp file in the same directory and renames
// it over the store file, so readers see either the old or the new
// content, never a truncated one.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.counts, "", "  ")
	if err != nil {
		return errors.FilesystemError("encode", s.path, err)
	}
	data = append(data, '\n')

	tmp := s.path + ".tmp"
	if err := s.fs.WriteFile(tmp, data, 0644); err != nil {
		return errors.FilesystemError("write", tmp, err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		return errors.FilesystemError("rename", s.path, err)
	}
	return nil
}
