package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectProjectName_PackageJSON(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "package.json"),
		[]byte(`{"name": "chat-state-server"}`), 0o644))

	assert.Equal(t, "chat-state-server", DetectProjectName(root))
}

func TestDetectProjectName_ScopedPackageFlattened(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "package.json"),
		[]byte(`{"name": "@myorg/Chat App"}`), 0o644))

	assert.Equal(t, "chat-app", DetectProjectName(root))
}

func TestDetectProjectName_GoMod(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"),
		[]byte("module github.com/acme/widget-service\n\ngo 1.22\n"), 0o644))

	assert.Equal(t, "widget-service", DetectProjectName(root))
}

func TestDetectProjectName_PackageJSONWinsOverGoMod(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "package.json"),
		[]byte(`{"name": "frontend"}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"),
		[]byte("module github.com/acme/backend\n"), 0o644))

	assert.Equal(t, "frontend", DetectProjectName(root))
}

func TestDetectProjectName_FallsBackToDirName(t *testing.T) {
	root := t.TempDir()
	assert.Equal(t, filepath.Base(root), DetectProjectName(root))
}

func TestDetectProjectName_MalformedManifestIgnored(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "package.json"),
		[]byte("not json"), 0o644))

	assert.Equal(t, filepath.Base(root), DetectProjectName(root))
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "my-app", sanitizeName("My App"))
	assert.Equal(t, "app_2", sanitizeName("App_2"))
	assert.Equal(t, "trimmed", sanitizeName("--trimmed--"))
	assert.Equal(t, "", sanitizeName("!!!"))
}
