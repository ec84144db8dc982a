package version

import (
	"github.com/Masterminds/semver/v3"
)

var (
	parsedVersion  *semver.Version
	parseAttempted bool
)

// resetParsedVersion clears the cached parsed version for testing.
func resetParsedVersion() {
	parsedVersion = nil
	parseAttempted = false
}

// Parsed returns the parsed semantic version, or nil if unparseable.
// This is computed lazily on first call and cached.
func Parsed() *semver.Version {
	if parsedVersion != nil || parseAttempted {
		return parsedVersion
	}
	parseAttempted = true

	v, err := semver.NewVersion(Version)
	if err != nil {
		return nil
	}
	parsedVersion = v
	return parsedVersion
}

// IsDevBuild returns true if this is a development build (no valid semver).
func IsDevBuild() bool {
	return Parsed() == nil
}

// Compare compares two version strings.
// Returns: -1 if a < b, 0 if equal, 1 if a > b.
// Returns 0 if either version is unparseable.
func Compare(a, b string) int {
	av, err := semver.NewVersion(a)
	if err != nil {
		return 0
	}
	bv, err := semver.NewVersion(b)
	if err != nil {
		return 0
	}
	return av.Compare(bv)
}

// IsNewer returns true if a is a strictly newer semantic version than b.
// Returns false if either version is unparseable.
func IsNewer(a, b string) bool {
	return Compare(a, b) > 0
}
