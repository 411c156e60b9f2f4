package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-core-fx/config"
	"github.com/go-playground/validator/v10"
)

var ErrInvalidConfig = errors.New("invalid config")

type releaseConfig struct {
	Branch        string `koanf:"branch"         validate:"required"`
	ArtifactPath  string `koanf:"artifact_path"  validate:"required"`
	CommitMessage string `koanf:"commit_message" validate:"required"`
	TagPrefix     string `koanf:"tag_prefix"`
	SkipExitCode  int    `koanf:"skip_exit_code" validate:"gte=0,lte=125"`
	DryRun        bool   `koanf:"dry_run"`
}

type gitSSHAuthConfig struct {
	PrivateKey string `koanf:"private_key"`
	Passphrase string `koanf:"passphrase"`
}

type gitHTTPSAuthConfig struct {
	Username string `koanf:"username"`
	Token    string `koanf:"token"`
}

type gitAuthConfig struct {
	SSH   gitSSHAuthConfig   `koanf:"ssh"`
	HTTPS gitHTTPSAuthConfig `koanf:"https"`
}

type gitConfig struct {
	Dir    string        `koanf:"dir"    validate:"required"`
	Remote string        `koanf:"remote" validate:"required"`
	Auth   gitAuthConfig `koanf:"auth"`
}

type registryConfig struct {
	Command string        `koanf:"command" validate:"required"`
	Timeout time.Duration `koanf:"timeout" validate:"gte=0"`
}

type manifestConfig struct {
	Path     string `koanf:"path"      validate:"required"`
	LockPath string `koanf:"lock_path"`
}

type credentialsConfig struct {
	SecretFile string `koanf:"secret_file"`
}

type metricsConfig struct {
	PushgatewayURL string        `koanf:"pushgateway_url" validate:"omitempty,url"`
	Job            string        `koanf:"job"             validate:"required"`
	Timeout        time.Duration `koanf:"timeout"         validate:"gte=0"`
}

type Config struct {
	Release     releaseConfig     `koanf:"release"`
	Git         gitConfig         `koanf:"git"`
	Registry    registryConfig    `koanf:"registry"`
	Manifest    manifestConfig    `koanf:"manifest"`
	Credentials credentialsConfig `koanf:"credentials"`
	Metrics     metricsConfig     `koanf:"metrics"`
}

// Overrides are command line values applied on top of the loaded config.
// Zero values leave the config untouched.
type Overrides struct {
	Branch string
	Dir    string
	DryRun bool
}

func (o Overrides) apply(cfg *Config) {
	if o.Branch != "" {
		cfg.Release.Branch = o.Branch
	}
	if o.Dir != "" {
		cfg.Git.Dir = o.Dir
	}
	if o.DryRun {
		cfg.Release.DryRun = true
	}
}

func Default() Config {
	//nolint:exhaustruct,mnd //default values
	return Config{
		Release: releaseConfig{
			Branch:        "master",
			ArtifactPath:  "build",
			CommitMessage: "%s",
			TagPrefix:     "v",
			SkipExitCode:  0,
		},

		Git: gitConfig{
			Dir:    ".",
			Remote: "origin",
		},

		Registry: registryConfig{
			Command: "npm",
			Timeout: 5 * time.Minute,
		},

		Manifest: manifestConfig{
			Path:     "package.json",
			LockPath: "package-lock.json",
		},

		Credentials: credentialsConfig{
			SecretFile: "~/.npm-token",
		},

		Metrics: metricsConfig{
			Job:     "autorelease",
			Timeout: 10 * time.Second,
		},
	}
}

func New(overrides Overrides, validate *validator.Validate) (Config, error) {
	cfg := Default()

	options := []config.Option{}
	if yamlPath := os.Getenv("CONFIG_PATH"); yamlPath != "" {
		options = append(options, config.WithLocalYAML(yamlPath))
	}

	if err := config.Load(&cfg, options...); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	overrides.apply(&cfg)

	if err := cfg.Validate(validate); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks struct constraints and the commit message template.
func (c Config) Validate(validate *validator.Validate) error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := checkTemplate(c.Release.CommitMessage); err != nil {
		return fmt.Errorf("%w: release.commit_message: %w", ErrInvalidConfig, err)
	}

	return nil
}

// checkTemplate requires exactly one %s and no other verbs; %% is allowed.
func checkTemplate(message string) error {
	unescaped := strings.ReplaceAll(message, "%%", "")
	if n := strings.Count(unescaped, "%s"); n != 1 {
		return fmt.Errorf("want exactly one %%s, found %d", n)
	}

	if strings.Contains(strings.Replace(unescaped, "%s", "", 1), "%") {
		return fmt.Errorf("unsupported verb in %q", message)
	}

	return nil
}
