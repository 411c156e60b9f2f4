package release

type Config struct {
	// Dir is the repository root.
	Dir string
	// Branch is the only branch releases are cut from.
	Branch string
	// ArtifactPath is the build output that must exist before packing,
	// relative to Dir.
	ArtifactPath string
	// CommitMessage is the version commit template; its single %s is
	// replaced by the new version.
	CommitMessage string
	// TagPrefix is prepended to the version to name the release tag.
	TagPrefix string
	// DryRun stops after classification without mutating anything.
	DryRun bool
}
