package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/bundler/internal/core/domain"
)

func TestHeaders_Get(t *testing.T) {
	h := domain.Headers{
		"Export-package": "com.lower",
		"Bundle-Name":    "app",
		"bundle-name":    "other",
	}

	assert.Equal(t, "com.lower", h.Get(domain.HeaderExportPackage))
	assert.Equal(t, "app", h.Get(domain.HeaderBundleName))
	assert.Equal(t, "com.lower", h.Get("EXPORT-PACKAGE"))
	assert.Empty(t, h.Get(domain.HeaderImportPackage))
	assert.Empty(t, domain.Headers(nil).Get(domain.HeaderBundleName))
}

func TestHeaders_SetIfNotEmpty(t *testing.T) {
	h := domain.Headers{}
	h.SetIfNotEmpty(domain.HeaderBundleVendor, "")
	h.SetIfNotEmpty(domain.HeaderBundleName, "app")

	assert.Equal(t, domain.Headers{domain.HeaderBundleName: "app"}, h)
}
