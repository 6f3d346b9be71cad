package domain

import (
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Dependency scopes.
const (
	ScopeCompile  = "compile"
	ScopeRuntime  = "runtime"
	ScopeProvided = "provided"
	ScopeSystem   = "system"
	ScopeTest     = "test"
)

// ArtifactTypeJar is the packaging type of a plain jar archive.
const ArtifactTypeJar = "jar"

// archiveTypes are the packaging types whose files are jar archives.
var archiveTypes = []string{ArtifactTypeJar, "test-jar", "bundle"}

// Artifact is a resolved dependency handed to bundler by the build tool.
type Artifact struct {
	GroupID    string
	ArtifactID string
	Version    string
	Type       string
	Scope      string
	Path       string
	// Trail lists the group:artifact ids of the dependencies that pulled this artifact in,
	// outermost first.
	Trail []string
}

// ParseArtifactID splits "group:artifact[:version]" into its parts.
func ParseArtifactID(id string) (group, artifact, version string, err error) {
	parts := strings.Split(id, ":")
	if len(parts) < 2 || len(parts) > 3 || parts[0] == "" || parts[1] == "" {
		return "", "", "", zerr.With(ErrInvalidArtifactID, "artifact_id", id)
	}
	if len(parts) == 3 {
		version = parts[2]
	}
	return parts[0], parts[1], version, nil
}

// Key returns the version-less "group:artifact" identity.
func (a Artifact) Key() string {
	return a.GroupID + ":" + a.ArtifactID
}

// ID returns the "group:artifact:version" identity.
func (a Artifact) ID() string {
	if a.Version == "" {
		return a.Key()
	}
	return a.Key() + ":" + a.Version
}

// FileName returns the base name of the artifact file.
func (a Artifact) FileName() string {
	return filepath.Base(a.Path)
}

// EmbeddedPath is the archive path the artifact is stored under when included in a bundle.
func (a Artifact) EmbeddedPath() string {
	return DependenciesDir + "/" + a.FileName()
}

// IsArchive reports whether the artifact's packaging type is a jar archive.
func (a Artifact) IsArchive() bool {
	t := a.Type
	if t == "" {
		t = ArtifactTypeJar
	}
	return slices.Contains(archiveTypes, t)
}

// VersionTag returns the artifact version normalized as a bundle version, if known.
func (a Artifact) VersionTag() VersionInfo {
	if a.Version == "" {
		return NoVersion()
	}
	return NewVersionInfo(NormalizeVersion(a.Version))
}

// ArtifactSet is the partition of a module's artifacts.
type ArtifactSet struct {
	// Include holds the artifacts embedded in the bundle, in declaration order.
	Include []Artifact
	// Provided holds the artifacts supplied by the runtime, in declaration order.
	Provided []Artifact
	// Ignored holds artifacts that are not jar archives.
	Ignored []Artifact
}

// TestProvided is the parsed set of artifacts supplied by the test runtime.
//
// Entries are "group:artifact" ids; an artifact is test provided when it, or an
// ancestor in its dependency trail, is listed. A "!group:artifact" entry excludes
// that artifact even when an ancestor is listed.
type TestProvided struct {
	ids []string
}

// ParseTestProvided parses a comma separated list of test provided artifact ids.
func ParseTestProvided(config string) TestProvided {
	var ids []string
	for _, s := range strings.Split(config, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			ids = append(ids, s)
		}
	}
	return TestProvided{ids: ids}
}

func (tp TestProvided) isTestProvided(a Artifact, known map[string]bool) bool {
	if len(tp.ids) == 0 || slices.Contains(tp.ids, "!"+a.Key()) {
		return false
	}
	if slices.Contains(tp.ids, a.Key()) {
		return true
	}
	for _, parent := range a.Trail {
		key := trailKey(parent)
		if known[key] && slices.Contains(tp.ids, key) {
			return true
		}
	}
	return false
}

// trailKey strips everything past "group:artifact" from a trail entry.
func trailKey(entry string) string {
	first := strings.IndexByte(entry, ':')
	if first < 0 {
		return entry
	}
	second := strings.IndexByte(entry[first+1:], ':')
	if second < 0 {
		return entry
	}
	return entry[:first+1+second]
}

// PartitionArtifacts splits artifacts into the included and provided sets.
//
// Compile and runtime scoped archives are included; provided and system scoped
// archives are provided; test scoped archives are provided when test provided and
// included otherwise. Declaration order is preserved within each set.
func PartitionArtifacts(artifacts []Artifact, testProvided TestProvided) ArtifactSet {
	known := make(map[string]bool, len(artifacts))
	for _, a := range artifacts {
		known[a.Key()] = true
	}

	var set ArtifactSet
	for _, a := range artifacts {
		if !a.IsArchive() {
			set.Ignored = append(set.Ignored, a)
			continue
		}
		switch a.Scope {
		case ScopeProvided, ScopeSystem:
			set.Provided = append(set.Provided, a)
		case ScopeTest:
			if testProvided.isTestProvided(a, known) {
				set.Provided = append(set.Provided, a)
			} else {
				set.Include = append(set.Include, a)
			}
		default:
			set.Include = append(set.Include, a)
		}
	}
	return set
}
