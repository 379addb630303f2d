// Package version exposes the build version of the ecotally binary.
package version

// version is set at build time via -ldflags "-X github.com/mfleet/ecotally/pkg/version.version=v1.2.3".
//
//nolint:gochecknoglobals // Build-time injection target
var version = "dev"

// GetVersion returns the current build version string.
func GetVersion() string {
	return version
}
