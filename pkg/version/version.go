// Package version exposes the b62 build version.
package version

import (
	"github.com/Masterminds/semver/v3"
)

// DevVersion is reported when no valid version was stamped at build time.
const DevVersion = "0.0.0-dev"

// version is set at build time:
//
//	go build -ldflags "-X github.com/rshade/b62/pkg/version.version=1.2.3" ./cmd/b62
//
//nolint:gochecknoglobals // Overwritten by the linker.
var version = DevVersion

// GetVersion returns the build version normalized to semver without a
// leading "v". A missing or malformed stamp yields DevVersion.
func GetVersion() string {
	v, err := Parse()
	if err != nil {
		return DevVersion
	}
	return v.String()
}

// Parse parses the stamped build version.
func Parse() (*semver.Version, error) {
	return semver.NewVersion(version)
}
