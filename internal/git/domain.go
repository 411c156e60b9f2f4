package git

import (
	"time"
)

// Identity is the committer identity configured for a repository.
type Identity struct {
	Name  string
	Email string
}

// CommitInfo represents a single commit in a log range.
type CommitInfo struct {
	Hash    string // Commit hash
	Summary string // First paragraph of the message, on one line
}

// TagInfo represents information about a Git tag.
type TagInfo struct {
	Name string    // Tag name
	Hash string    // Commit hash the tag points to
	Date time.Time // Tagger date, or the commit date for lightweight tags
}

// CommitRequest describes a commit of a set of worktree files.
type CommitRequest struct {
	Path    string   // Repository path
	Files   []string // Files to stage, relative to the repository root
	Message string   // Commit message
	Author  Identity // Author and committer
}

// TagCreateRequest describes a tag to create on HEAD.
type TagCreateRequest struct {
	Path      string   // Repository path
	Name      string   // Tag name
	Message   string   // Annotation message, used when Annotated is set
	Annotated bool     // Create an annotated tag object
	Tagger    Identity // Tagger for annotated tags
}

// PushRequest describes refs to push to a remote.
type PushRequest struct {
	Path   string   // Repository path
	Remote string   // Remote name, defaults to origin
	Branch string   // Branch to push, optional
	Tags   []string // Tags to push
}
