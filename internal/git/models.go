package git

import (
	"time"
)

// RepositoryStatus represents the status of a Git repository.
type RepositoryStatus struct {
	Path               string    // Repository path
	IsDirty            bool      // Has uncommitted changes
	CurrentBranch      string    // Current branch name, empty on a detached HEAD
	LastCommit         string    // Last commit hash
	LastCommitTime     time.Time // Last commit time
	UncommittedChanges []string  // List of uncommitted changes
}
