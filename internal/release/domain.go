package release

import (
	"context"

	"github.com/apiarycd/autorelease/internal/credentials"
	"github.com/apiarycd/autorelease/internal/manifest"
)

// Bump is the semantic version component a release increments.
type Bump string

const (
	BumpNone  Bump = ""
	BumpPatch Bump = "patch"
	BumpMinor Bump = "minor"
	BumpMajor Bump = "major"
)

type Status string

const (
	StatusSkipped   Status = "skipped"
	StatusPublished Status = "published"
)

// Reason explains a skipped run.
type Reason string

const (
	ReasonNone      Reason = ""
	ReasonBranch    Reason = "branch"
	ReasonUnchanged Reason = "unchanged"
	ReasonDryRun    Reason = "dry-run"
)

// Identity is the author recorded on release commits and tags.
type Identity struct {
	Name  string
	Email string
}

// WorktreeStatus is the repository state the gate validates.
type WorktreeStatus struct {
	Branch  string   // empty on a detached HEAD
	Clean   bool     // no staged, unstaged or untracked changes
	Changes []string // paths with changes
}

// RunContext holds everything validated by the gate.
type RunContext struct {
	Branch   string
	Token    credentials.Token
	Identity Identity
}

// FingerprintPair holds the published and local package fingerprints.
// Remote is empty when the version was never published.
type FingerprintPair struct {
	Remote string
	Local  string
}

// Changed reports whether the local package differs from the published one.
func (p FingerprintPair) Changed() bool {
	return p.Remote != p.Local
}

// Outcome is the terminal result of a run.
type Outcome struct {
	RunID   string
	Status  Status
	Reason  Reason
	Message string

	Package         string
	PreviousVersion string
	Version         string
	Tag             string
	Bump            Bump
	Commits         int

	Fingerprints FingerprintPair
}

// Published reports whether the run published a new version.
func (o *Outcome) Published() bool {
	return o.Status == StatusPublished
}

// VCS is the version control port.
type VCS interface {
	// Status returns the current branch and worktree cleanliness.
	Status(ctx context.Context) (WorktreeStatus, error)

	// Identity returns the configured committer identity.
	Identity(ctx context.Context) (Identity, error)

	// BlameLine returns the commit that last touched a 1-based line of path.
	BlameLine(ctx context.Context, path string, line int) (string, error)

	// Summaries lists commit summaries in (base, HEAD].
	Summaries(ctx context.Context, base string) ([]string, error)

	// HasTag reports whether tag already exists.
	HasTag(ctx context.Context, tag string) (bool, error)

	// CommitAndTag commits files and tags the new commit.
	CommitAndTag(ctx context.Context, files []string, message, tag string, author Identity) error

	// Push pushes branch and tag to the shared remote.
	Push(ctx context.Context, branch, tag string) error
}

// Registry is the package registry port.
type Registry interface {
	// Available checks that the registry client can be invoked.
	Available(ctx context.Context) error

	// PublishedFingerprint returns the fingerprint of name@version, or an
	// empty string when it was never published.
	PublishedFingerprint(ctx context.Context, name, version string) (string, error)

	// PackFingerprint returns the fingerprint of the locally packed package.
	PackFingerprint(ctx context.Context) (string, error)

	// Publish publishes the package at its current manifest version.
	Publish(ctx context.Context, token string) error
}

// Manifest is the package manifest port.
type Manifest interface {
	// Path returns the manifest path relative to the repository root.
	Path() string

	// Read returns the package name and version.
	Read(ctx context.Context) (*manifest.Descriptor, error)

	// SetVersion rewrites the version and returns the modified paths.
	SetVersion(ctx context.Context, version string) ([]string, error)
}

// TokenSource resolves the registry auth token.
type TokenSource interface {
	Resolve(ctx context.Context) (credentials.Token, error)
}
