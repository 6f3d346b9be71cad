package osgi

import (
	"errors"
	"fmt"
	"strings"

	"go.trai.ch/bundler/internal/core/domain"
	"go.trai.ch/zerr"
)

// ParseManualOverrides parses a manual Import-Package declaration. Each clause may carry
// at most one parameter, and it must be the version attribute; any other shape fails with
// domain.ErrResolution listing the clause's parameter names. Blank input yields no overrides.
func ParseManualOverrides(declaration string) (map[string]domain.ManualOverride, error) {
	out := make(map[string]domain.ManualOverride)
	if strings.TrimSpace(declaration) == "" {
		return out, nil
	}

	entries, err := ParseExports(declaration)
	if err != nil {
		return nil, zerr.Wrap(err, "invalid Import-Package override")
	}

	for _, e := range entries {
		version, hasVersion, err := singleVersion(e.Parameters)
		if err != nil {
			return nil, err
		}
		for _, pkg := range e.PackageNames {
			out[pkg] = domain.ManualOverride{PackageName: pkg, Version: version, HasVersion: hasVersion}
		}
	}
	return out, nil
}

func singleVersion(params []domain.Parameter) (string, bool, error) {
	switch {
	case len(params) == 0:
		return "", false, nil
	case len(params) == 1 && params[0].Name == versionAttribute && !params[0].Directive:
		return params[0].Value, true, nil
	default:
		names := make([]string, 0, len(params))
		for _, p := range params {
			names = append(names, p.Name)
		}
		err := zerr.New(fmt.Sprintf("a single, optional version parameter expected, but got [%s]", strings.Join(names, ", ")))
		return "", false, errors.Join(domain.ErrResolution, zerr.With(err, "parameters", names))
	}
}
