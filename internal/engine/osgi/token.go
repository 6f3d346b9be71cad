package osgi

import (
	"strings"
	"unicode"
)

type tokenKind uint8

const (
	tokWord tokenKind = iota + 1
	tokString
	tokComma
	tokSemicolon
	tokEquals
	tokAssign // ":="
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// scanError is a tokenizer failure at a byte offset of the input.
type scanError struct {
	pos    int
	reason string
}

// tokenize splits a declaration into tokens. On failure it returns the tokens scanned so far.
func tokenize(s string) ([]token, *scanError) {
	var toks []token
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			i++
		case c == ',':
			toks = append(toks, token{kind: tokComma, text: ",", pos: i})
			i++
		case c == ';':
			toks = append(toks, token{kind: tokSemicolon, text: ";", pos: i})
			i++
		case c == '=':
			toks = append(toks, token{kind: tokEquals, text: "=", pos: i})
			i++
		case c == ':' && i+1 < len(s) && s[i+1] == '=':
			toks = append(toks, token{kind: tokAssign, text: ":=", pos: i})
			i += 2
		case c == '"':
			text, next, ok := scanQuoted(s, i)
			if !ok {
				return toks, &scanError{pos: i, reason: "unterminated quoted string"}
			}
			toks = append(toks, token{kind: tokString, text: text, pos: i})
			i = next
		default:
			start := i
			for i < len(s) && !isWordBoundary(s, i) {
				i++
			}
			toks = append(toks, token{kind: tokWord, text: s[start:i], pos: start})
		}
	}
	return toks, nil
}

func isWordBoundary(s string, i int) bool {
	switch s[i] {
	case ' ', '\t', '\r', '\n', ',', ';', '=', '"':
		return true
	case ':':
		return i+1 < len(s) && s[i+1] == '='
	default:
		return false
	}
}

// scanQuoted reads a double-quoted string starting at s[start]. A backslash escapes the next byte.
func scanQuoted(s string, start int) (string, int, bool) {
	var sb strings.Builder
	for i := start + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if i+1 >= len(s) {
				return "", 0, false
			}
			i++
			sb.WriteByte(s[i])
		case '"':
			return sb.String(), i + 1, true
		default:
			sb.WriteByte(s[i])
		}
	}
	return "", 0, false
}

// isPackageName reports whether name is a dotted sequence of Java identifiers.
func isPackageName(name string) bool {
	if name == "" {
		return false
	}
	for segment := range strings.SplitSeq(name, ".") {
		if segment == "" {
			return false
		}
		for i, r := range segment {
			if r == '_' || r == '$' || unicode.IsLetter(r) {
				continue
			}
			if i > 0 && unicode.IsDigit(r) {
				continue
			}
			return false
		}
	}
	return true
}
