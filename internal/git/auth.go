package git

import (
	"fmt"

	"github.com/go-git/go-git/v6/plumbing/transport"
	githttp "github.com/go-git/go-git/v6/plumbing/transport/http"
	gitssh "github.com/go-git/go-git/v6/plumbing/transport/ssh"
)

// defaultHTTPSUsername is accepted by the common forges for token auth.
const defaultHTTPSUsername = "x-access-token"

// authMethod converts the configured credentials to a go-git transport
// auth method. A nil method lets go-git fall back to its defaults, which
// for SSH remotes means the running ssh-agent.
func authMethod(cfg AuthConfig) (transport.AuthMethod, error) {
	if cfg.SSH.PrivateKey != "" && cfg.HTTPS.Token != "" {
		return nil, fmt.Errorf("%w: only one of ssh and https auth may be set", ErrAuthentication)
	}

	switch {
	case cfg.SSH.PrivateKey != "":
		keys, err := gitssh.NewPublicKeysFromFile("git", cfg.SSH.PrivateKey, cfg.SSH.Passphrase)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrAuthentication, err)
		}
		return keys, nil
	case cfg.HTTPS.Token != "":
		username := cfg.HTTPS.Username
		if username == "" {
			username = defaultHTTPSUsername
		}
		return &githttp.BasicAuth{
			Username: username,
			Password: cfg.HTTPS.Token,
		}, nil
	default:
		return nil, nil //nolint:nilnil // no explicit auth configured
	}
}
