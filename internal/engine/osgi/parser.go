// Package osgi parses OSGi package declarations and resolves package imports against them.
package osgi

import (
	"errors"
	"fmt"
	"strings"

	"go.trai.ch/bundler/internal/core/domain"
	"go.trai.ch/zerr"
)

const versionAttribute = "version"

// clause is the raw text and tokens of one comma-separated clause.
type clause struct {
	text   string
	tokens []token
}

// ParseExports parses an Export-Package style declaration into one entry per clause.
// Blank input yields no entries. Grammar violations fail with domain.ErrGrammar naming
// the offending clause.
func ParseExports(declaration string) ([]domain.ExportEntry, error) {
	clauses, err := splitClauses(declaration)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.ExportEntry, 0, len(clauses))
	for _, c := range clauses {
		entry, err := parseClause(c)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func splitClauses(declaration string) ([]clause, error) {
	if strings.TrimSpace(declaration) == "" {
		return nil, nil
	}

	toks, scanErr := tokenize(declaration)
	if scanErr != nil {
		start := 0
		for _, t := range toks {
			if t.kind == tokComma {
				start = t.pos + 1
			}
		}
		return nil, grammarError(declaration[start:], scanErr.reason)
	}

	var clauses []clause
	start := 0
	var current []token
	for _, t := range toks {
		if t.kind == tokComma {
			clauses = append(clauses, clause{text: strings.TrimSpace(declaration[start:t.pos]), tokens: current})
			start = t.pos + 1
			current = nil
			continue
		}
		current = append(current, t)
	}
	clauses = append(clauses, clause{text: strings.TrimSpace(declaration[start:]), tokens: current})
	return clauses, nil
}

// parseClause parses: name {";" name} {";" param}, where param is key ("=" | ":=") value.
func parseClause(c clause) (domain.ExportEntry, error) {
	if len(c.tokens) == 0 {
		return domain.ExportEntry{}, grammarError(c.text, "empty clause")
	}

	var entry domain.ExportEntry
	toks := c.tokens
	for i := 0; i < len(toks); {
		first := toks[i]
		if first.kind != tokWord {
			return domain.ExportEntry{}, grammarError(c.text, fmt.Sprintf("unexpected %q", first.text))
		}

		if i+1 < len(toks) && (toks[i+1].kind == tokEquals || toks[i+1].kind == tokAssign) {
			if i+2 >= len(toks) || (toks[i+2].kind != tokWord && toks[i+2].kind != tokString) {
				return domain.ExportEntry{}, grammarError(c.text, fmt.Sprintf("missing value for parameter %q", first.text))
			}
			entry.Parameters = append(entry.Parameters, domain.Parameter{
				Name:      first.text,
				Value:     toks[i+2].text,
				Directive: toks[i+1].kind == tokAssign,
			})
			i += 3
		} else {
			if len(entry.Parameters) > 0 {
				return domain.ExportEntry{}, grammarError(c.text, fmt.Sprintf("package %q follows a parameter", first.text))
			}
			if !isPackageName(first.text) {
				return domain.ExportEntry{}, grammarError(c.text, fmt.Sprintf("invalid package name %q", first.text))
			}
			entry.PackageNames = append(entry.PackageNames, first.text)
			i++
		}

		if i < len(toks) {
			if toks[i].kind != tokSemicolon {
				return domain.ExportEntry{}, grammarError(c.text, fmt.Sprintf("expected ';' before %q", toks[i].text))
			}
			i++
			if i == len(toks) {
				return domain.ExportEntry{}, grammarError(c.text, "trailing ';'")
			}
		}
	}

	if len(entry.PackageNames) == 0 {
		return domain.ExportEntry{}, grammarError(c.text, "no package name")
	}
	for _, p := range entry.Parameters {
		if p.Name == versionAttribute && !p.Directive {
			entry.Version = p.Value
			entry.HasVersion = true
			break
		}
	}
	return entry, nil
}

func grammarError(clause, reason string) error {
	err := zerr.New(fmt.Sprintf("%s in clause %q", reason, clause))
	return errors.Join(domain.ErrGrammar, zerr.With(err, "clause", clause))
}
