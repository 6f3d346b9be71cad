// Package jar reads and writes jar archives and their MANIFEST.MF files.
package jar

import (
	"bufio"
	"bytes"
	"io"
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"go.trai.ch/bundler/internal/core/domain"
	"go.trai.ch/zerr"
)

// maxLineLength is the maximum manifest line length in bytes, excluding the line break.
const maxLineLength = 72

// EncodeManifest writes headers as a manifest main section.
//
// Manifest-Version comes first, the remaining headers follow sorted by name. Lines
// are wrapped at 72 bytes with single space continuations and end with CRLF.
func EncodeManifest(w io.Writer, headers domain.Headers) error {
	var buf bytes.Buffer

	version := headers[domain.HeaderManifestVersion]
	if version == "" {
		version = domain.ManifestVersion
	}
	writeHeader(&buf, domain.HeaderManifestVersion, version)

	keys := slices.Sorted(maps.Keys(headers))
	for _, k := range keys {
		if k == domain.HeaderManifestVersion {
			continue
		}
		writeHeader(&buf, k, headers[k])
	}
	buf.WriteString("\r\n")

	_, err := w.Write(buf.Bytes())
	return err
}

func writeHeader(buf *bytes.Buffer, key, value string) {
	line := key + ": " + value
	limit := maxLineLength
	for len(line) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		buf.WriteString(line[:cut])
		buf.WriteString("\r\n ")
		line = line[cut:]
		limit = maxLineLength - 1
	}
	buf.WriteString(line)
	buf.WriteString("\r\n")
}

// DecodeManifest parses the main section of a manifest. Continuation lines are
// joined and individual sections after the first blank line are ignored.
func DecodeManifest(r io.Reader) (domain.Headers, error) {
	headers := domain.Headers{}
	scanner := bufio.NewScanner(r)

	var key string
	var value strings.Builder
	flush := func() {
		if key != "" {
			headers[key] = value.String()
		}
		key = ""
		value.Reset()
	}

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			break
		}
		if strings.HasPrefix(line, " ") {
			if key == "" {
				return nil, zerr.With(domain.ErrManifestParseFailed, "line", lineNo)
			}
			value.WriteString(line[1:])
			continue
		}

		flush()
		k, v, ok := strings.Cut(line, ": ")
		if !ok {
			k, ok = strings.CutSuffix(line, ":")
		}
		if !ok || k == "" {
			return nil, zerr.With(domain.ErrManifestParseFailed, "line", lineNo)
		}
		key = k
		value.WriteString(v)
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, zerr.Wrap(err, domain.ErrManifestParseFailed.Error())
	}
	return headers, nil
}
