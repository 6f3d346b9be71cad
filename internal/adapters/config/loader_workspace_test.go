package config_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bundler/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestLoad_Workspace(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, filepath.Join(root, domain.WorkFileName), `
version: "1"
modules:
  - "services/*"
  - "services/billing"
`)
	writeConfig(t, filepath.Join(root, "services", "orders", domain.ModuleFileName), `
module: orders
bundleVersion: "2.0"
outputDir: build/bundle
`)
	writeConfig(t, filepath.Join(root, "services", "billing", domain.ModuleFileName), `
module: billing
bundleVersion: "1"
bundleName: Billing Tests
`)
	writeConfig(t, filepath.Join(root, "services", "README.md"), "not a module")

	loader, _ := newLoader(t)
	ws, err := loader.Load(filepath.Join(root, "services", "orders"))
	require.NoError(t, err)

	assert.Equal(t, root, ws.Root)
	assert.Equal(t, []string{"billing", "orders"}, ws.Names())

	billing, ok := ws.Module("billing")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "services", "billing"), billing.Dir)
	assert.Equal(t, "Billing Tests", billing.BundleName)
	assert.Equal(t, "billing-tests", billing.SymbolicName)

	orders, ok := ws.Module("orders")
	require.True(t, ok)
	assert.Equal(t, "build/bundle", orders.OutputDir)
	assert.Equal(t, filepath.Join(root, "services", "orders", "build", "bundle", "META-INF", "MANIFEST.MF"), orders.ManifestFile())
}

func TestLoad_WorkspaceSkipsDirectoryWithoutModuleFile(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, filepath.Join(root, domain.WorkFileName), "modules: [\"modules/*\"]\n")
	writeConfig(t, filepath.Join(root, "modules", "a", domain.ModuleFileName), "module: a\n")
	writeConfig(t, filepath.Join(root, "modules", "b", "notes.txt"), "no module here")

	loader, logger := newLoader(t)
	logger.EXPECT().Warn("bundler.yaml missing in module modules/b, skipping")

	ws, err := loader.Load(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ws.Names())
}

func TestLoad_WorkspaceIgnoresModuleRoot(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, filepath.Join(root, domain.WorkFileName), "modules: [a]\n")
	writeConfig(t, filepath.Join(root, "a", domain.ModuleFileName), "module: a\nroot: ..\n")

	loader, logger := newLoader(t)
	logger.EXPECT().Warn("'root' defined in a is ignored in workspace mode")

	ws, err := loader.Load(root)
	require.NoError(t, err)
	assert.Equal(t, root, ws.Root)
}

func TestLoad_WorkspaceMissingModuleName(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, filepath.Join(root, domain.WorkFileName), "modules: [a]\n")
	writeConfig(t, filepath.Join(root, "a", domain.ModuleFileName), "bundleVersion: \"1\"\n")

	loader, _ := newLoader(t)
	_, err := loader.Load(root)
	require.ErrorContains(t, err, domain.ErrMissingModuleName.Error())

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, "a", zErr.Metadata()["directory"])
}

func TestLoad_WorkspaceDuplicateModuleName(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, filepath.Join(root, domain.WorkFileName), "modules: [\"*\"]\n")
	writeConfig(t, filepath.Join(root, "a", domain.ModuleFileName), "module: same\n")
	writeConfig(t, filepath.Join(root, "b", domain.ModuleFileName), "module: same\n")

	loader, _ := newLoader(t)
	_, err := loader.Load(root)
	require.ErrorContains(t, err, domain.ErrDuplicateModuleName.Error())

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	meta := zErr.Metadata()
	assert.Equal(t, "same", meta["module_name"])
	assert.Equal(t, "a", meta["first_occurrence"])
	assert.Equal(t, "b", meta["duplicate_at"])
}
