package version

var (
	// Version is the semantic version of this build.
	Version = "1.0.0"

	// GitCommit is set at build time via -ldflags.
	GitCommit = ""
)

func init() {
	if GitCommit != "" {
		Version += "+" + GitCommit[:8]
	}
}
