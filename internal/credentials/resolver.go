package credentials

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
)

// Resolver looks the auth token up in the environment, then in a secret file.
type Resolver struct {
	config Config

	// environment overrides the process environment when set.
	environment map[string]string

	logger *zap.Logger
}

func NewResolver(config Config, logger *zap.Logger) *Resolver {
	return &Resolver{
		config: config,
		logger: logger,
	}
}

// Resolve returns the first token found in NPM_TOKEN, the file named by
// NPM_TOKEN_FILE, or the configured secret file.
func (r *Resolver) Resolve(_ context.Context) (Token, error) {
	var src envSource
	if err := env.ParseWithOptions(&src, env.Options{Environment: r.environment}); err != nil {
		return Token{}, fmt.Errorf("failed to parse environment: %w", err)
	}

	if value := strings.TrimSpace(src.Token); value != "" {
		r.logger.Debug("token resolved from environment", zap.String("variable", EnvToken))
		return Token{Value: value, Source: EnvToken}, nil
	}

	if src.TokenFile != "" {
		return r.readFile(src.TokenFile, true)
	}

	if r.config.SecretFile != "" {
		return r.readFile(r.config.SecretFile, false)
	}

	return Token{}, fmt.Errorf("%w: %s is not set and no secret file is configured", ErrTokenNotFound, EnvToken)
}

func (r *Resolver) readFile(path string, required bool) (Token, error) {
	path, err := expandHome(path)
	if err != nil {
		return Token{}, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !required {
		return Token{}, fmt.Errorf("%w: %s is not set and %s does not exist", ErrTokenNotFound, EnvToken, path)
	}
	if err != nil {
		return Token{}, fmt.Errorf("%w: %w", ErrSecretFile, err)
	}

	value := strings.TrimSpace(string(data))
	if value == "" {
		return Token{}, fmt.Errorf("%w: %s is empty", ErrTokenNotFound, path)
	}

	r.logger.Debug("token resolved from file", zap.String("path", path))

	return Token{Value: value, Source: path}, nil
}

func expandHome(path string) (string, error) {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, rest), nil
}
