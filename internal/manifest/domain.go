package manifest

// Descriptor is the package identity read from the manifest.
type Descriptor struct {
	Name    string
	Version string

	// VersionLine is the 1-based line of the version field in the manifest.
	VersionLine int
}
