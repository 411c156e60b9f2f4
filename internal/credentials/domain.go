package credentials

// EnvToken is the environment variable carrying the registry auth token.
const EnvToken = "NPM_TOKEN"

// Token is a resolved registry auth token.
type Token struct {
	Value  string
	Source string // environment variable or file the token was read from
}

// IsZero reports whether no token was resolved.
func (t Token) IsZero() bool {
	return t.Value == ""
}

// Env returns the token as a KEY=value environment entry.
func (t Token) Env() string {
	return EnvToken + "=" + t.Value
}

// String masks the token value.
func (t Token) String() string {
	if t.IsZero() {
		return "<none>"
	}
	return "<redacted from " + t.Source + ">"
}

type envSource struct {
	Token     string `env:"NPM_TOKEN"`
	TokenFile string `env:"NPM_TOKEN_FILE"`
}
