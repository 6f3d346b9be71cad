package classfile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bundler/internal/core/domain"
	"go.trai.ch/bundler/internal/engine/classfile"
)

func collect(t *testing.T, parse func(string, func(string)) error, in string) []string {
	t.Helper()
	var names []string
	require.NoError(t, parse(in, func(n string) { names = append(names, n) }))
	return names
}

func TestParseSignature(t *testing.T) {
	tests := []struct {
		name string
		sig  string
		want []string
	}{
		{name: "field", sig: "Ljava/util/List<Lcom/x/A;>;", want: []string{"java/util/List", "com/x/A"}},
		{name: "type variable", sig: "TT;", want: nil},
		{name: "array of generic", sig: "[Ljava/util/Set<*>;", want: []string{"java/util/Set"}},
		{name: "primitive array", sig: "[I", want: nil},
		{
			name: "inner class suffix keeps outer name",
			sig:  "Lcom/x/Outer<TK;>.Inner<Lcom/y/B;>.Deep;",
			want: []string{"com/x/Outer", "com/y/B"},
		},
		{
			name: "class with bounds",
			sig:  "<K::Ljava/lang/Comparable<TK;>;V:Lcom/v/Base;>Lcom/s/Super;Lcom/i/Iface<TV;>;",
			want: []string{"java/lang/Comparable", "com/v/Base", "com/s/Super", "com/i/Iface"},
		},
		{
			name: "method with throws",
			sig:  "<E:Ljava/lang/Exception;>([TE;JLcom/p/P<+Lcom/q/Q;>;)Lcom/r/R;^TE;^Lcom/t/T;",
			want: []string{"java/lang/Exception", "com/p/P", "com/q/Q", "com/r/R", "com/t/T"},
		},
		{name: "default package class", sig: "LTop;", want: []string{"Top"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, collect(t, classfile.ParseSignature, tt.sig))
		})
	}
}

func TestParseSignature_Invalid(t *testing.T) {
	for _, sig := range []string{
		"",
		"Ljava/util/List",
		"Ljava/util/List<>;",
		"Ljava/util/List<TT;;",
		"<>Ljava/lang/Object;",
		"<T>Ljava/lang/Object;",
		"(Ljava/lang/String;",
		"()V^Q",
		"TT",
		"I",
		"Lcom/x/A;trailing",
		"L;",
	} {
		t.Run(sig, func(t *testing.T) {
			err := classfile.ParseSignature(sig, func(string) {})
			assert.ErrorIs(t, err, domain.ErrMalformedType)
		})
	}
}

func TestParseMethodDescriptor(t *testing.T) {
	assert.Equal(t,
		[]string{"com/a/A", "com/b/B", "com/c/C"},
		collect(t, classfile.ParseMethodDesc, "(ILcom/a/A;[[Lcom/b/B;D)[Lcom/c/C;"),
	)
	assert.Empty(t, collect(t, classfile.ParseMethodDesc, "()V"))

	for _, desc := range []string{"", "V", "(", "()", "()VV", "(V)V", "(L;)V"} {
		assert.ErrorIs(t, classfile.ParseMethodDesc(desc, func(string) {}), domain.ErrMalformedType, desc)
	}
}
