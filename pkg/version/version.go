package version

// version is set at build time with -ldflags "-X github.com/cbodonnell/melange/pkg/version.version=..."
var version = "dev"

// Get returns the version string.
func Get() string {
	return version
}
