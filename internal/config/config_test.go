package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate(validator.New()))
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "empty branch", mutate: func(c *Config) { c.Release.Branch = "" }},
		{name: "empty artifact", mutate: func(c *Config) { c.Release.ArtifactPath = "" }},
		{name: "no placeholder", mutate: func(c *Config) { c.Release.CommitMessage = "release" }},
		{name: "two placeholders", mutate: func(c *Config) { c.Release.CommitMessage = "%s %s" }},
		{name: "other verb", mutate: func(c *Config) { c.Release.CommitMessage = "%s (%d)" }},
		{name: "escaped placeholder only", mutate: func(c *Config) { c.Release.CommitMessage = "100%%s" }},
		{name: "skip exit code", mutate: func(c *Config) { c.Release.SkipExitCode = 300 }},
		{name: "no command", mutate: func(c *Config) { c.Registry.Command = "" }},
		{name: "bad pushgateway", mutate: func(c *Config) { c.Metrics.PushgatewayURL = "not a url" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)

			require.ErrorIs(t, cfg.Validate(validator.New()), ErrInvalidConfig)
		})
	}
}

func TestValidateTemplates(t *testing.T) {
	for _, message := range []string{"%s", "v%s", "chore(release): %s", "100%% ready: %s"} {
		cfg := Default()
		cfg.Release.CommitMessage = message

		require.NoError(t, cfg.Validate(validator.New()), message)
	}
}

func TestOverrides(t *testing.T) {
	cfg := Default()
	Overrides{}.apply(&cfg)
	require.Equal(t, Default(), cfg)

	Overrides{Branch: "main", Dir: "/src/pkg", DryRun: true}.apply(&cfg)
	require.Equal(t, "main", cfg.Release.Branch)
	require.Equal(t, "/src/pkg", cfg.Git.Dir)
	require.True(t, cfg.Release.DryRun)
}

func TestNewFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	yaml := `release:
  branch: main
  commit_message: "chore(release): %s"
manifest:
  lock_path: npm-shrinkwrap.json
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := New(Overrides{Dir: "/work"}, validator.New())
	require.NoError(t, err)

	require.Equal(t, "main", cfg.Release.Branch)
	require.Equal(t, "chore(release): %s", cfg.Release.CommitMessage)
	require.Equal(t, "npm-shrinkwrap.json", cfg.Manifest.LockPath)
	require.Equal(t, "package.json", cfg.Manifest.Path)
	require.Equal(t, "build", cfg.Release.ArtifactPath)
	require.Equal(t, "/work", cfg.Git.Dir)
}
