package manifest

import "errors"

var (
	ErrManifestNotFound = errors.New("manifest not found")
	ErrInvalidManifest  = errors.New("invalid manifest")
	ErrNoNameField      = errors.New("manifest has no name field")
	ErrNoVersionField   = errors.New("manifest has no version field")
	ErrWriteFailed      = errors.New("failed to write manifest")
)
