package registry

import "errors"

var (
	ErrToolNotFound        = errors.New("package manager not found")
	ErrFingerprintNotFound = errors.New("fingerprint not found in pack output")
	ErrQueryFailed         = errors.New("registry query failed")
	ErrPackFailed          = errors.New("pack failed")
	ErrPublishFailed       = errors.New("publish failed")
)
