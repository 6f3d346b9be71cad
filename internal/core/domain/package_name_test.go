package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bundler/internal/core/domain"
)

func TestPackageOfClass(t *testing.T) {
	tests := []struct {
		class string
		want  string
	}{
		{class: "com/x/Foo", want: "com.x"},
		{class: "com/x/Foo$Inner", want: "com.x"},
		{class: "com.x.Foo", want: "com.x"},
		{class: "Foo", want: ""},
		{class: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.class, func(t *testing.T) {
			got := domain.PackageOfClass(tt.class)
			assert.Equal(t, tt.want, got.String())
			assert.Equal(t, tt.want == "", got.IsUnnamed())
		})
	}
}

func TestPackageName_Interned(t *testing.T) {
	assert.Equal(t, domain.NewPackageName("com.x"), domain.PackageOfClass("com/x/Foo"))
	assert.Equal(t, domain.PackageName{}, domain.NewPackageName(""))

	var p domain.PackageName
	require.NoError(t, p.UnmarshalText([]byte("org.y")))
	text, err := p.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "org.y", string(text))
}

func TestIsPlatformPackage(t *testing.T) {
	assert.True(t, domain.IsPlatformPackage("java"))
	assert.True(t, domain.IsPlatformPackage("java.util.concurrent"))
	assert.False(t, domain.IsPlatformPackage("javax.inject"))
	assert.False(t, domain.IsPlatformPackage("javafx"))
}
