package credentials

import "errors"

var (
	ErrTokenNotFound = errors.New("auth token not found")
	ErrSecretFile    = errors.New("failed to read secret file")
)
