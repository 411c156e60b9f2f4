package credentials

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestResolver(t *testing.T, secretFile string, environment map[string]string) *Resolver {
	t.Helper()

	r := NewResolver(Config{SecretFile: secretFile}, zaptest.NewLogger(t))
	r.environment = environment

	return r
}

func writeSecret(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	return path
}

func TestResolver_FromEnvironment(t *testing.T) {
	secret := writeSecret(t, "from-file")
	r := newTestResolver(t, secret, map[string]string{"NPM_TOKEN": " from-env \n"})

	token, err := r.Resolve(context.Background())
	require.NoError(t, err)
	require.Equal(t, "from-env", token.Value)
	require.Equal(t, EnvToken, token.Source)
	require.Equal(t, "NPM_TOKEN=from-env", token.Env())
	require.NotContains(t, token.String(), "from-env")
}

func TestResolver_FromTokenFileVariable(t *testing.T) {
	secret := writeSecret(t, "from-variable-file\n")
	r := newTestResolver(t, "", map[string]string{"NPM_TOKEN_FILE": secret})

	token, err := r.Resolve(context.Background())
	require.NoError(t, err)
	require.Equal(t, "from-variable-file", token.Value)
	require.Equal(t, secret, token.Source)
}

func TestResolver_FromSecretFile(t *testing.T) {
	secret := writeSecret(t, "from-file\n")
	r := newTestResolver(t, secret, map[string]string{})

	token, err := r.Resolve(context.Background())
	require.NoError(t, err)
	require.Equal(t, "from-file", token.Value)
}

func TestResolver_NotFound(t *testing.T) {
	r := newTestResolver(t, "", map[string]string{})
	_, err := r.Resolve(context.Background())
	require.ErrorIs(t, err, ErrTokenNotFound)

	r = newTestResolver(t, filepath.Join(t.TempDir(), "missing"), map[string]string{})
	_, err = r.Resolve(context.Background())
	require.ErrorIs(t, err, ErrTokenNotFound)

	r = newTestResolver(t, writeSecret(t, "  \n"), map[string]string{})
	_, err = r.Resolve(context.Background())
	require.ErrorIs(t, err, ErrTokenNotFound)
}

func TestResolver_MissingExplicitFile(t *testing.T) {
	r := newTestResolver(t, "", map[string]string{"NPM_TOKEN_FILE": filepath.Join(t.TempDir(), "missing")})

	_, err := r.Resolve(context.Background())
	require.ErrorIs(t, err, ErrSecretFile)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	path, err := expandHome("~/.npm-token")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".npm-token"), path)

	path, err = expandHome("/etc/token")
	require.NoError(t, err)
	require.Equal(t, "/etc/token", path)
}
