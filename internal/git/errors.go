package git

import "errors"

var (
	ErrRepositoryNotFound = errors.New("repository not found")
	ErrInvalidRepository  = errors.New("invalid repository")
	ErrDetachedHead       = errors.New("HEAD is not on a branch")
	ErrTagAlreadyExists   = errors.New("tag already exists")
	ErrFileNotFound       = errors.New("file not found")
	ErrLineOutOfRange     = errors.New("line out of range")
	ErrBlameFailed        = errors.New("failed to blame file")
	ErrCommitNotFound     = errors.New("commit not found")
	ErrCommitFailed       = errors.New("failed to commit")
	ErrPushFailed         = errors.New("failed to push")
	ErrAuthentication     = errors.New("invalid authentication settings")
)
