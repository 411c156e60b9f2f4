package credentials

type Config struct {
	// SecretFile is read when neither NPM_TOKEN nor NPM_TOKEN_FILE is set.
	// A leading "~/" is expanded to the user's home directory.
	SecretFile string
}
