package registry

import "time"

type Config struct {
	// Command is the package manager executable, resolved through PATH.
	Command string
	// Dir is the package root the command runs in.
	Dir string
	// TokenEnv is the environment variable the auth token is exposed as.
	TokenEnv string
	// Timeout bounds each command invocation. Zero means no limit.
	Timeout time.Duration
}
