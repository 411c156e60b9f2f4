package release

import "errors"

var (
	ErrTokenMissing    = errors.New("no auth token")
	ErrArtifactMissing = errors.New("build artifact not found")
	ErrToolMissing     = errors.New("required tool unavailable")
	ErrDirtyWorktree   = errors.New("working tree has uncommitted changes")
	ErrIdentityMissing = errors.New("git identity is not configured")
	ErrAttribution     = errors.New("cannot find the last version change")
	ErrInvalidVersion  = errors.New("invalid semantic version")
	ErrTagExists       = errors.New("release tag already exists")
	ErrBumpFailed      = errors.New("failed to apply version bump")
	ErrPublishFailed   = errors.New("failed to publish")
	ErrPushFailed      = errors.New("published but failed to push")
)
