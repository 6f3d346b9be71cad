package classfile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bundler/internal/core/domain"
	"go.trai.ch/bundler/internal/engine/classfile"
	"go.trai.ch/bundler/internal/testutil/classgen"
)

func TestDecodeModifiedUTF8(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{name: "ascii", in: []byte("com/example"), want: "com/example"},
		{name: "two-byte", in: []byte{'c', 0xC3, 0xA9}, want: "cé"},
		{name: "encoded NUL", in: []byte{'a', 0xC0, 0x80, 'b'}, want: "a\x00b"},
		{name: "three-byte", in: []byte{0xE2, 0x82, 0xAC}, want: "€"},
		{name: "surrogate pair", in: classgen.EncodeModifiedUTF8("x\U0001F600"), want: "x\U0001F600"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := classfile.DecodeModifiedUTF8(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeModifiedUTF8_Invalid(t *testing.T) {
	for name, in := range map[string][]byte{
		"raw NUL":              {'a', 0x00},
		"four-byte form":       {0xF0, 0x9F, 0x98, 0x80},
		"truncated two-byte":   {0xC3},
		"truncated three-byte": {0xE2, 0x82},
		"bad continuation":     {0xC3, 0x41},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := classfile.DecodeModifiedUTF8(in)
			assert.ErrorIs(t, err, domain.ErrMalformedType)
		})
	}
}
