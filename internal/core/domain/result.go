package domain

import "time"

// GenerationResult is the outcome of one manifest generation invocation.
type GenerationResult struct {
	Headers Headers
	// Tally is the combined tally of the module's own output and its included artifacts.
	Tally *PackageTally
	// Imports holds the computed imports that survived manual overrides, keyed by package.
	Imports map[string]ResolvedImport
	// Overrides holds the manual import overrides, keyed by package.
	Overrides map[string]ManualOverride
	// Unresolved lists referenced, undefined packages no provider exports, sorted.
	Unresolved []string
	// Conflicts lists packages defined by several sources with different versions.
	Conflicts []VersionConflict
	// Artifacts is the partition the manifest was generated from.
	Artifacts ArtifactSet
}

// Fingerprint records the inputs a module's manifest was last generated from.
type Fingerprint struct {
	Module    string    `json:"module,omitzero"`
	InputHash string    `json:"input_hash,omitzero"`
	Timestamp time.Time `json:"timestamp,omitzero"`
}
