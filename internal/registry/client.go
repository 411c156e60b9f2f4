package registry

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

const notFoundCode = "E404"

var shasumPattern = regexp.MustCompile(`^[0-9a-f]{40}$`)

// Client drives the package manager for registry queries, packing and
// publishing.
type Client struct {
	config Config
	runner Runner

	fingerprint *regexp.Regexp

	logger *zap.Logger
}

func NewClient(config Config, runner Runner, logger *zap.Logger) *Client {
	tool := strings.TrimSuffix(filepath.Base(config.Command), filepath.Ext(config.Command))

	return &Client{
		config: config,
		runner: runner,

		fingerprint: regexp.MustCompile(regexp.QuoteMeta(tool) + ` notice shasum:\s+([0-9a-f]{40})`),

		logger: logger,
	}
}

// Available checks that the package manager can be found.
func (c *Client) Available(_ context.Context) error {
	path, err := c.runner.LookPath(c.config.Command)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrToolNotFound, c.config.Command, err)
	}

	c.logger.Debug("package manager found", zap.String("path", path))

	return nil
}

// PublishedFingerprint returns the shasum of name@version in the registry,
// or an empty string when that version was never published.
func (c *Client) PublishedFingerprint(ctx context.Context, name, version string) (string, error) {
	ref := name + "@" + version

	output, err := c.run(ctx, nil, "view", ref, "dist.shasum")
	if err != nil {
		if strings.Contains(string(output.Stderr), notFoundCode) {
			c.logger.Info("package version not published", zap.String("package", ref))
			return "", nil
		}

		return "", fmt.Errorf("%w: %s: %w", ErrQueryFailed, ref, err)
	}

	// stderr carries warnings and notices only
	shasum := strings.TrimSpace(string(output.Stdout))
	if shasum == "" {
		c.logger.Info("package version not published", zap.String("package", ref))
		return "", nil
	}
	if !shasumPattern.MatchString(shasum) {
		return "", fmt.Errorf("%w: %s: unexpected output %q", ErrQueryFailed, ref, shasum)
	}

	c.logger.Debug("published fingerprint",
		zap.String("package", ref),
		zap.String("shasum", shasum))

	return shasum, nil
}

// PackFingerprint packs the package without writing the tarball and returns
// the shasum reported by the package manager.
func (c *Client) PackFingerprint(ctx context.Context) (string, error) {
	output, err := c.run(ctx, nil, "pack", "--dry-run")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPackFailed, err)
	}

	match := c.fingerprint.FindSubmatch(output.Combined())
	if match == nil {
		c.logger.Error("unexpected pack output",
			zap.ByteString("stdout", output.Stdout),
			zap.ByteString("stderr", output.Stderr))
		return "", fmt.Errorf("%w: expected a line matching %q", ErrFingerprintNotFound, c.fingerprint.String())
	}

	shasum := string(match[1])

	c.logger.Debug("local fingerprint", zap.String("shasum", shasum))

	return shasum, nil
}

// Publish publishes the package in Dir with token exposed through TokenEnv.
func (c *Client) Publish(ctx context.Context, token string) error {
	var env []string
	if c.config.TokenEnv != "" {
		env = append(env, c.config.TokenEnv+"="+token)
	}

	output, err := c.run(ctx, env, "publish")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	c.logger.Info("package published", zap.ByteString("output", output.Stdout))

	return nil
}

func (c *Client) run(ctx context.Context, env []string, args ...string) (Output, error) {
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	c.logger.Debug("running package manager",
		zap.String("command", c.config.Command),
		zap.Strings("args", args))

	return c.runner.Run(ctx, c.config.Dir, env, c.config.Command, args...)
}
