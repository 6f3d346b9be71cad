package domain

import (
	"errors"
	"strings"
)

const bundleVersionSegments = 3

// VersionInfo is the optional version tag recorded for a defined package.
type VersionInfo struct {
	Version    string
	HasVersion bool
}

// NewVersionInfo returns a present version tag.
func NewVersionInfo(version string) VersionInfo {
	return VersionInfo{Version: version, HasVersion: true}
}

// NoVersion returns an absent version tag.
func NoVersion() VersionInfo {
	return VersionInfo{}
}

// BundleVersion normalizes a raw project version into an OSGi bundle version.
//
// The raw version is split on the first '-'; the part before it is split on '.',
// empty segments become "0", at most three segments are kept and the result is
// padded with "0" segments to exactly three.
func BundleVersion(raw *string) (string, error) {
	if raw == nil {
		return "", errors.Join(ErrConfiguration, ErrMissingVersion)
	}
	return NormalizeVersion(*raw), nil
}

// NormalizeVersion applies the bundle version rule to a version string that is known to be present.
func NormalizeVersion(raw string) string {
	numeric, _, _ := strings.Cut(raw, "-")

	segments := make([]string, 0, bundleVersionSegments)
	for _, s := range strings.Split(numeric, ".") {
		if len(segments) == bundleVersionSegments {
			break
		}
		if s == "" {
			s = "0"
		}
		segments = append(segments, s)
	}
	for len(segments) < bundleVersionSegments {
		segments = append(segments, "0")
	}

	return strings.Join(segments, ".")
}
