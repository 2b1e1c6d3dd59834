package versions

import "github.com/Masterminds/semver/v3"

// IsNewerVersion reports whether candidate is strictly greater than current.
// Both strings are compared as semantic versions when possible; otherwise the
// comparison falls back to plain lexicographic ordering. Component version
// strings in the catalog are not guaranteed to be semver.
func IsNewerVersion(candidate, current string) bool {
	candSV, errCand := semver.NewVersion(candidate)
	currSV, errCurr := semver.NewVersion(current)

	if errCand != nil || errCurr != nil {
		return candidate > current
	}

	return candSV.GreaterThan(currSV)
}
