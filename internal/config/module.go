package config

import (
	"github.com/apiarycd/autorelease/internal/credentials"
	"github.com/apiarycd/autorelease/internal/git"
	"github.com/apiarycd/autorelease/internal/manifest"
	"github.com/apiarycd/autorelease/internal/registry"
	"github.com/apiarycd/autorelease/internal/release"
	"github.com/apiarycd/autorelease/pkg/pushfx"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"config",
		fx.Provide(New),
		fx.Provide(func(cfg Config) git.Config {
			return git.Config{
				Dir:    cfg.Git.Dir,
				Remote: cfg.Git.Remote,
				Auth: git.AuthConfig{
					SSH: git.SSHAuthConfig{
						PrivateKey: cfg.Git.Auth.SSH.PrivateKey,
						Passphrase: cfg.Git.Auth.SSH.Passphrase,
					},
					HTTPS: git.HTTPSAuthConfig{
						Username: cfg.Git.Auth.HTTPS.Username,
						Token:    cfg.Git.Auth.HTTPS.Token,
					},
				},
			}
		}),
		fx.Provide(func(cfg Config) registry.Config {
			return registry.Config{
				Command:  cfg.Registry.Command,
				Dir:      cfg.Git.Dir,
				TokenEnv: credentials.EnvToken,
				Timeout:  cfg.Registry.Timeout,
			}
		}),
		fx.Provide(func(cfg Config) manifest.Config {
			return manifest.Config{
				Dir:      cfg.Git.Dir,
				Path:     cfg.Manifest.Path,
				LockPath: cfg.Manifest.LockPath,
			}
		}),
		fx.Provide(func(cfg Config) credentials.Config {
			return credentials.Config{
				SecretFile: cfg.Credentials.SecretFile,
			}
		}),
		fx.Provide(func(cfg Config) release.Config {
			return release.Config{
				Dir:           cfg.Git.Dir,
				Branch:        cfg.Release.Branch,
				ArtifactPath:  cfg.Release.ArtifactPath,
				CommitMessage: cfg.Release.CommitMessage,
				TagPrefix:     cfg.Release.TagPrefix,
				DryRun:        cfg.Release.DryRun,
			}
		}),
		fx.Provide(func(cfg Config) pushfx.Config {
			return pushfx.Config{
				URL:     cfg.Metrics.PushgatewayURL,
				Job:     cfg.Metrics.Job,
				Timeout: cfg.Metrics.Timeout,
			}
		}),
	)
}
