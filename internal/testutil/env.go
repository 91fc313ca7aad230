package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SetupTestDir creates a temporary directory with a .loanops directory and a
// config.yaml pointing at serverURL. Returns the temp directory path.
// The directory is automatically cleaned up when the test completes.
func SetupTestDir(t *testing.T, serverURL string) string {
	t.Helper()

	tmpDir := t.TempDir()
	dir := filepath.Join(tmpDir, ".loanops")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	configContent := "server:\n  url: " + serverURL + "\n  timeout: 5s\nlog:\n  level: error\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(configContent), 0o644))

	return tmpDir
}

// WriteTestFile writes content to a file relative to basePath, creating
// parent directories as needed.
func WriteTestFile(t *testing.T, basePath, relPath, content string) string {
	t.Helper()

	path := filepath.Join(basePath, relPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// MustMarshalJSON marshals v to JSON or fails the test.
func MustMarshalJSON(t *testing.T, v any) []byte {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}
