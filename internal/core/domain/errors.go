package domain

import "go.trai.ch/zerr"

var (
	// ErrMalformedType is returned when a compiled type's binary content cannot be parsed.
	ErrMalformedType = zerr.New("malformed compiled type")

	// ErrGrammar is returned when an export or import declaration violates the clause grammar.
	ErrGrammar = zerr.New("invalid package declaration")

	// ErrResolution is returned when a manual import clause carries parameters other than a single version.
	ErrResolution = zerr.New("invalid manual import")

	// ErrConfiguration is returned when required scalar configuration is absent.
	ErrConfiguration = zerr.New("invalid configuration")

	// ErrMissingVersion is returned when the bundle version is not configured.
	ErrMissingVersion = zerr.New("missing project version")

	// ErrMissingModuleName is returned in workspace mode when a module file has no module name.
	ErrMissingModuleName = zerr.New("missing module name")

	// ErrInvalidModuleName is returned when a module name is invalid.
	ErrInvalidModuleName = zerr.New("module name can only contain alphanumeric characters, dots, hyphens and underscores")

	// ErrDuplicateModuleName is returned when multiple modules share the same name in a workspace.
	ErrDuplicateModuleName = zerr.New("duplicate module name")

	// ErrModuleNotFound is returned when a requested module is not part of the workspace.
	ErrModuleNotFound = zerr.New("module not found")

	// ErrInvalidArtifactID is returned when an artifact id is not of the form group:artifact[:version].
	ErrInvalidArtifactID = zerr.New("invalid artifact id, expected group:artifact[:version]")

	// ErrMissingArtifactPath is returned when an artifact has no file path.
	ErrMissingArtifactPath = zerr.New("missing artifact path")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigNotFound is returned when the config file cannot be found.
	ErrConfigNotFound = zerr.New("could not find bundler.yaml or bundler.work.yaml")

	// ErrArchiveOpenFailed is returned when an archive cannot be opened.
	ErrArchiveOpenFailed = zerr.New("failed to open archive")

	// ErrArchiveReadFailed is returned when an archive entry cannot be read.
	ErrArchiveReadFailed = zerr.New("failed to read archive entry")

	// ErrArchiveWriteFailed is returned when the bundle archive cannot be written.
	ErrArchiveWriteFailed = zerr.New("failed to write bundle archive")

	// ErrManifestParseFailed is returned when a manifest cannot be parsed.
	ErrManifestParseFailed = zerr.New("failed to parse manifest")

	// ErrManifestWriteFailed is returned when the manifest file cannot be written.
	ErrManifestWriteFailed = zerr.New("failed to write manifest")

	// ErrTypeReadFailed is returned when a compiled type file cannot be read from disk.
	ErrTypeReadFailed = zerr.New("failed to read compiled type")

	// ErrGenerationFailed is returned when manifest generation fails for at least one module.
	ErrGenerationFailed = zerr.New("manifest generation failed")

	// ErrModuleGenerationFailed is returned when manifest generation for a single module fails.
	ErrModuleGenerationFailed = zerr.New("module manifest generation failed")

	// ErrStoreCreateFailed is returned when the fingerprint store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create fingerprint store directory")

	// ErrStoreReadFailed is returned when a fingerprint cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read fingerprint")

	// ErrStoreUnmarshalFailed is returned when a fingerprint cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal fingerprint")

	// ErrStoreMarshalFailed is returned when a fingerprint cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal fingerprint")

	// ErrStoreWriteFailed is returned when a fingerprint cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write fingerprint")

	// ErrFileOpenFailed is returned when a file cannot be opened.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrWriteHashFailed is returned when writing a hash to the digest fails.
	ErrWriteHashFailed = zerr.New("failed to write hash to digest")
)
