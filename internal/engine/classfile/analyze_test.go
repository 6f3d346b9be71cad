package classfile_test

import (
	"bytes"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bundler/internal/core/domain"
	"go.trai.ch/bundler/internal/engine/classfile"
	"go.trai.ch/bundler/internal/testutil/classgen"
)

func referenced(t *testing.T, data []byte) []string {
	t.Helper()
	meta, err := classfile.Analyze(data)
	require.NoError(t, err)
	out := make([]string, 0, len(meta.ReferencedPackages))
	for p := range meta.ReferencedPackages {
		out = append(out, p.String())
	}
	slices.Sort(out)
	return out
}

func TestAnalyze_OwnedPackage(t *testing.T) {
	meta, err := classfile.Analyze(classgen.New("com/example/app/Main").Bytes())
	require.NoError(t, err)

	assert.Equal(t, "com/example/app/Main", meta.Name)
	assert.Equal(t, "com.example.app", meta.OwnedPackage.String())
	assert.Equal(t, []string{"java.lang"}, referenced(t, classgen.New("com/example/app/Main").Bytes()))
}

func TestAnalyze_References(t *testing.T) {
	tests := []struct {
		name  string
		class *classgen.Builder
		want  []string
	}{
		{
			name: "superclass and interfaces",
			class: classgen.New("com/example/Foo").
				Super("com/base/Base").
				Implements("org/api/Service", "com/example/Local"),
			want: []string{"com.base", "org.api"},
		},
		{
			name: "field and method descriptors",
			class: classgen.New("com/example/Foo").
				Field("cache", "Lcom/cache/Cache;").
				Field("matrix", "[[Lcom/math/Matrix;").
				Field("count", "I").
				Method("run", "(Lcom/in/Request;[JLcom/in/Options;)Lcom/out/Response;").
				Method("close", "()V"),
			want: []string{"com.cache", "com.in", "com.math", "com.out", "java.lang"},
		},
		{
			name: "constant pool references",
			class: classgen.New("com/example/Foo").
				ClassRef("org/thrown/Failure").
				ClassRef("[Lorg/arrays/Element;").
				FieldRef("org/owner/Holder", "value", "Lorg/field/Value;").
				MethodRef("org/owner2/Util", "call", "(Lorg/param/P;)Lorg/ret/R;").
				InterfaceMethodRef("org/iface/Api", "get", "()Ljava/util/List;").
				MethodType("(Lorg/mt/Arg;)V").
				InvokeDynamic("apply", "()Lorg/lambda/Fn;").
				MethodHandle("org/handle/Target", "make", "()V").
				StringConst("not/a/Class").
				LongConst(42),
			want: []string{
				"java.lang", "java.util", "org.arrays", "org.field", "org.handle", "org.iface",
				"org.lambda", "org.mt", "org.owner", "org.owner2", "org.param", "org.ret", "org.thrown",
			},
		},
		{
			name: "enclosing method of a local class",
			class: classgen.New("com/example/Outer$1").
				Attributes(classgen.EnclosingMethod("com/example/Outer", "compute", "(Lcom/arg/Arg;)Lcom/ret/Ret;")),
			want: []string{"com.arg", "com.ret", "java.lang"},
		},
		{
			name: "own and unnamed packages are excluded",
			class: classgen.New("com/example/Foo").
				Super("").
				Field("sibling", "Lcom/example/Bar;").
				Field("unnamed", "LDefaultPackageType;").
				Field("nested", "Lcom/example/sub/Baz;"),
			want: []string{"com.example.sub"},
		},
		{
			name: "annotations with nested enum class and array values",
			class: classgen.New("com/example/Foo").
				Attributes(classgen.Annotations(true, classgen.Annotation{
					Type: "Lorg/ann/Marker;",
					Values: []classgen.Pair{
						{Name: "level", Value: classgen.Enum("Lorg/enums/Level;", "HIGH")},
						{Name: "type", Value: classgen.ClassValue("Lorg/literal/Type;")},
						{Name: "none", Value: classgen.ClassValue("V")},
						{Name: "count", Value: classgen.Int(3)},
						{Name: "label", Value: classgen.Str("x")},
						{Name: "items", Value: classgen.Array(
							classgen.Nested(classgen.Annotation{Type: "Lorg/nested/Item;"}),
							classgen.ClassValue("[Lorg/arrayliteral/Thing;"),
						)},
					},
				})).
				Method("m", "()V", classgen.Annotations(false, classgen.Annotation{Type: "Lorg/invisible/Hint;"})),
			want: []string{"java.lang", "org.ann", "org.arrayliteral", "org.enums", "org.invisible", "org.literal", "org.nested"},
		},
		{
			name: "parameter type and default annotations",
			class: classgen.New("com/example/Foo").
				Method("m", "(I)V",
					classgen.ParameterAnnotations([]classgen.Annotation{{Type: "Lorg/param/NotNull;"}}),
					classgen.AnnotationDefault(classgen.Enum("Lorg/defaults/Mode;", "FAST")),
				).
				Field("f", "I", classgen.TypeAnnotations(classgen.TypeAnnotation{
					Target:     0x13,
					Annotation: classgen.Annotation{Type: "Lorg/types/Nullable;"},
				})).
				Method("g", "()V", classgen.TypeAnnotations(
					classgen.TypeAnnotation{Target: 0x01, TargetInfo: []byte{0}, Annotation: classgen.Annotation{Type: "Lorg/types/Bound;"}},
					classgen.TypeAnnotation{Target: 0x17, TargetInfo: []byte{0, 0}, Annotation: classgen.Annotation{Type: "Lorg/types/Throws;"}},
				)),
			want: []string{"java.lang", "org.defaults", "org.param", "org.types"},
		},
		{
			name: "generic signatures",
			class: classgen.New("com/example/Foo").
				Attributes(classgen.Signature("<T:Lorg/bound/Upper;:Lorg/bound/Iface;>Lorg/base/Base<TT;>;Lorg/api/Api<Lorg/arg/Arg;>.Inner<+Lorg/wild/W;>;")).
				Field("f", "Ljava/util/Map;", classgen.Signature("Ljava/util/Map<Lorg/key/K;[Lorg/value/V;>;")).
				Method("m", "()V", classgen.Signature("<R:Ljava/lang/Object;>(TR;Ljava/util/List<*>;)Lorg/result/Res<-TR;>;^Lorg/ex/Ex;^TE;")),
			want: []string{
				"java.lang", "java.util", "org.api", "org.arg", "org.base", "org.bound", "org.ex",
				"org.key", "org.result", "org.value", "org.wild",
			},
		},
		{
			name: "code attribute local variables",
			class: classgen.New("com/example/Foo").
				Method("m", "()V", classgen.Code(
					classgen.LocalVariables(classgen.LocalVariable{Name: "x", Descriptor: "Lorg/local/Var;"}),
					classgen.LocalVariableTypes(classgen.LocalVariable{Name: "x", Descriptor: "Ljava/util/List<Lorg/localtype/Elem;>;"}),
				)),
			want: []string{"java.lang", "java.util", "org.local", "org.localtype"},
		},
		{
			name: "record components",
			class: classgen.New("com/example/Point").
				Super("java/lang/Record").
				Attributes(classgen.Record(
					classgen.RecordComponent{Name: "x", Descriptor: "Lorg/coord/X;"},
					classgen.RecordComponent{
						Name:       "tags",
						Descriptor: "Ljava/util/Set;",
						Attributes: []classgen.Attribute{classgen.Signature("Ljava/util/Set<Lorg/tag/Tag;>;")},
					},
				)),
			want: []string{"java.lang", "java.util", "org.coord", "org.tag"},
		},
		{
			name: "unknown attributes are skipped",
			class: classgen.New("com/example/Foo").
				Attributes(classgen.Raw("SourceFile", []byte{0xFF, 0xFF}), classgen.Raw("Vendor", nil)),
			want: []string{"java.lang"},
		},
		{
			name:  "modified UTF-8 names",
			class: classgen.New("com/example/Foo").Field("f", "Lorg/café/Bar;").Field("g", "Lorg/emoji\U0001F600/Baz;"),
			want:  []string{"java.lang", "org.café", "org.emoji\U0001F600"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, referenced(t, tt.class.Bytes()))
		})
	}
}

func TestAnalyze_Malformed(t *testing.T) {
	valid := classgen.New("com/example/Foo").Field("f", "Lorg/x/Y;").Bytes()

	badMagic := slices.Clone(valid)
	badMagic[0] = 0xCA
	badMagic[3] = 0x00

	trailing := append(slices.Clone(valid), 0x00)

	// Constant pool count is at offset 8; the first entry's tag at offset 10.
	unknownTag := slices.Clone(valid)
	unknownTag[10] = 2

	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "bad magic", data: badMagic},
		{name: "trailing bytes", data: trailing},
		{name: "unknown constant tag", data: unknownTag},
		{name: "invalid field descriptor", data: classgen.New("com/example/Foo").Field("f", "Lorg/x/Y").Bytes()},
		{name: "invalid primitive", data: classgen.New("com/example/Foo").Field("f", "Q").Bytes()},
		{name: "invalid method descriptor", data: classgen.New("com/example/Foo").Method("m", "(I").Bytes()},
		{name: "invalid signature", data: classgen.New("com/example/Foo").Attributes(classgen.Signature("Ljava/util/List<>;")).Bytes()},
		{name: "invalid class name", data: classgen.New("com//Foo").Bytes()},
		{name: "unknown element value tag", data: classgen.New("com/example/Foo").Attributes(
			classgen.Annotations(true, classgen.Annotation{
				Type:   "Lorg/a/A;",
				Values: []classgen.Pair{{Name: "v", Value: func(_ *classgen.Builder, w *bytes.Buffer) { w.WriteByte('X') }}},
			}),
		).Bytes()},
		{name: "unknown type annotation target", data: classgen.New("com/example/Foo").Attributes(
			classgen.TypeAnnotations(classgen.TypeAnnotation{Target: 0x20, Annotation: classgen.Annotation{Type: "Lorg/a/A;"}}),
		).Bytes()},
		{name: "attribute body overruns", data: classgen.New("com/example/Foo").Attributes(classgen.Raw("Signature", []byte{0x00})).Bytes()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := classfile.Analyze(tt.data)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrMalformedType)
		})
	}
}

func TestAnalyze_EveryTruncationFails(t *testing.T) {
	data := classgen.New("com/example/Foo").
		Implements("org/api/Api").
		Field("f", "Lorg/x/Y;", classgen.Signature("Ljava/util/List<Lorg/x/Y;>;")).
		Method("m", "()V", classgen.Code(classgen.LocalVariables(classgen.LocalVariable{Name: "a", Descriptor: "I"}))).
		Attributes(classgen.Annotations(true, classgen.Annotation{Type: "Lorg/a/A;"})).
		LongConst(7).
		Bytes()

	for n := range len(data) {
		_, err := classfile.Analyze(data[:n])
		require.ErrorIs(t, err, domain.ErrMalformedType, "prefix of %d bytes", n)
	}
}

func TestAnalyze_IndexOutOfRange(t *testing.T) {
	data := classgen.New("com/example/Foo").Bytes()
	// this_class follows the constant pool and access flags; point it past the pool.
	thisOffset := len(data) - 2*6 // this, super, interfaces, fields, methods, attributes
	data[thisOffset] = 0x7F
	data[thisOffset+1] = 0xFF

	_, err := classfile.Analyze(data)
	require.ErrorIs(t, err, domain.ErrMalformedType)
	assert.ErrorContains(t, err, "out of range")
}
