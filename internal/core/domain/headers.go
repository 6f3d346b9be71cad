package domain

import (
	"maps"
	"slices"
	"strings"
)

// Manifest header names.
const (
	HeaderManifestVersion       = "Manifest-Version"
	HeaderCreatedBy             = "Created-By"
	HeaderBundleManifestVersion = "Bundle-ManifestVersion"
	HeaderBundleName            = "Bundle-Name"
	HeaderBundleSymbolicName    = "Bundle-SymbolicName"
	HeaderBundleVersion         = "Bundle-Version"
	HeaderBundleVendor          = "Bundle-Vendor"
	HeaderBundleClassPath       = "Bundle-ClassPath"
	HeaderImportPackage         = "Import-Package"
	HeaderExportPackage         = "Export-Package"
)

const (
	// ManifestVersion is the value of the Manifest-Version main attribute.
	ManifestVersion = "1.0"

	// BundleManifestVersion marks the manifest as an OSGi R4+ bundle manifest.
	BundleManifestVersion = "2"
)

// Headers is the assembled set of bundle manifest headers.
// Entries are independent; multi-valued headers carry their own internal ordering.
type Headers map[string]string

// SetIfNotEmpty stores value under key unless value is empty.
func (h Headers) SetIfNotEmpty(key, value string) {
	if value != "" {
		h[key] = value
	}
}

// Get returns the value of the named header. Header names are matched
// case-insensitively as in jar manifests; an exact match is preferred, then the
// lexically first name that matches.
func (h Headers) Get(name string) string {
	if v, ok := h[name]; ok {
		return v
	}
	for _, k := range slices.Sorted(maps.Keys(h)) {
		if strings.EqualFold(k, name) {
			return h[k]
		}
	}
	return ""
}
