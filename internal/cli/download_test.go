package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thruflo/loanops/internal/testutil"
)

func TestDownloadCommand_OutputFlag(t *testing.T) {
	fake := testutil.NewFakeOrchestrator(t)
	fake.AddFile("sanction_abc123.pdf", testutil.SamplePDF)
	dir := testutil.SetupTestDir(t, fake.URL())
	dest := filepath.Join(t.TempDir(), "nested", "offer.pdf")

	out, err := executeCommand(t, nil, "--dir", dir, "download", "sanction_abc123.pdf", "-o", dest)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved "+dest)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, testutil.SamplePDF, data)
}

func TestDownloadCommand_NotFound(t *testing.T) {
	fake := testutil.NewFakeOrchestrator(t)
	dir := testutil.SetupTestDir(t, fake.URL())
	dest := filepath.Join(t.TempDir(), "missing.pdf")

	_, err := executeCommand(t, nil, "--dir", dir, "download", "missing.pdf", "-o", dest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")

	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))
}

func TestDownloadCommand_RejectsPaths(t *testing.T) {
	fake := testutil.NewFakeOrchestrator(t)
	dir := testutil.SetupTestDir(t, fake.URL())
	dest := filepath.Join(t.TempDir(), "x.pdf")

	_, err := executeCommand(t, nil, "--dir", dir, "download", "../etc/passwd", "-o", dest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid file reference")
}

func TestDownloadCommand_Flags(t *testing.T) {
	flag := downloadCmd.Flags().Lookup("output")
	require.NotNil(t, flag)
	assert.Equal(t, "o", flag.Shorthand)
}
