package git

type AuthConfig struct {
	SSH   SSHAuthConfig
	HTTPS HTTPSAuthConfig
}

type SSHAuthConfig struct {
	PrivateKey string
	Passphrase string
}

type HTTPSAuthConfig struct {
	Username string
	Token    string
}

type Config struct {
	Dir    string
	Remote string
	Auth   AuthConfig
}
