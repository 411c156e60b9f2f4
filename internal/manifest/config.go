package manifest

type Config struct {
	// Dir is the repository root the paths below are relative to.
	Dir string
	// Path of the package manifest.
	Path string
	// LockPath of the lock file, rewritten alongside the manifest when present.
	LockPath string
}
