package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thruflo/loanops/internal/testutil"
)

func TestHealthCommand_Healthy(t *testing.T) {
	fake := testutil.NewFakeOrchestrator(t)
	dir := testutil.SetupTestDir(t, fake.URL())

	out, err := executeCommand(t, nil, "--dir", dir, "health")
	require.NoError(t, err)
	assert.Contains(t, out, "orchestrator at "+fake.URL()+": ok")
	assert.Contains(t, out, "Agentic Loan Orchestrator is running")
}

func TestHealthCommand_Unhealthy(t *testing.T) {
	fake := testutil.NewFakeOrchestrator(t)
	fake.SetHealthy(false)
	dir := testutil.SetupTestDir(t, fake.URL())

	_, err := executeCommand(t, nil, "--dir", dir, "health")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unreachable")
	assert.Contains(t, err.Error(), "503")
}

func TestHealthCommand_Unreachable(t *testing.T) {
	fake := testutil.NewFakeOrchestrator(t)
	dir := testutil.SetupTestDir(t, fake.URL())
	fake.Close()

	_, err := executeCommand(t, nil, "--dir", dir, "health")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect")
}

func TestHealthCommand_ServerFlagOverridesConfig(t *testing.T) {
	fake := testutil.NewFakeOrchestrator(t)
	dir := testutil.SetupTestDir(t, "http://127.0.0.1:1")

	out, err := executeCommand(t, nil, "--dir", dir, "--server", fake.URL(), "health")
	require.NoError(t, err)
	assert.Contains(t, out, fake.URL())
}

func TestHealthCommand_InvalidFlags(t *testing.T) {
	dir := testutil.SetupTestDir(t, "http://localhost:8000")

	_, err := executeCommand(t, nil, "--dir", dir, "--log-level", "chatty", "health")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.level")

	_, err = executeCommand(t, nil, "--dir", dir, "--server", "not a url", "health")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.url")
}
