package classfile

import (
	"strings"
	"unicode/utf16"
)

// decodeModifiedUTF8 decodes the modified UTF-8 encoding used by CONSTANT_Utf8 entries:
// NUL is encoded as two bytes, supplementary characters as surrogate pairs of three
// bytes each, and four-byte forms never occur.
func decodeModifiedUTF8(b []byte) (string, error) {
	ascii := true
	for _, c := range b {
		if c == 0 || c >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return string(b), nil
	}

	units := make([]uint16, 0, len(b))
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c == 0:
			return "", malformed("invalid modified UTF-8: NUL byte at %d", i)
		case c < 0x80:
			units = append(units, uint16(c))
			i++
		case c&0xE0 == 0xC0:
			if i+1 >= len(b) || b[i+1]&0xC0 != 0x80 {
				return "", malformed("invalid modified UTF-8: truncated two-byte sequence at %d", i)
			}
			units = append(units, uint16(c&0x1F)<<6|uint16(b[i+1]&0x3F))
			i += 2
		case c&0xF0 == 0xE0:
			if i+2 >= len(b) || b[i+1]&0xC0 != 0x80 || b[i+2]&0xC0 != 0x80 {
				return "", malformed("invalid modified UTF-8: truncated three-byte sequence at %d", i)
			}
			units = append(units, uint16(c&0x0F)<<12|uint16(b[i+1]&0x3F)<<6|uint16(b[i+2]&0x3F))
			i += 3
		default:
			return "", malformed("invalid modified UTF-8: byte 0x%02x at %d", c, i)
		}
	}

	var sb strings.Builder
	sb.Grow(len(units))
	for _, r := range utf16.Decode(units) {
		sb.WriteRune(r)
	}
	return sb.String(), nil
}
