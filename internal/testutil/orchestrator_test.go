package testutil

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thruflo/loanops/internal/backend"
)

func TestFakeOrchestrator_ScriptedReplies(t *testing.T) {
	orch := NewFakeOrchestrator(t)
	orch.Push(VerificationReply())
	orch.PushRaw(http.StatusInternalServerError, "boom")

	client := backend.NewClient(orch.URL())
	ctx := context.Background()

	resp, err := client.Chat(ctx, backend.ChatRequest{SessionID: "s1", Message: "I want a loan"})
	require.NoError(t, err)
	assert.Equal(t, "Let's verify your PAN", resp.Reply)

	_, err = client.Chat(ctx, backend.ChatRequest{SessionID: "s1", Message: "again"})
	se, ok := backend.IsStatusError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)

	resp, err = client.Chat(ctx, backend.ChatRequest{SessionID: "s1", Message: "empty queue"})
	require.NoError(t, err)
	assert.Equal(t, DefaultReply, resp.Reply)

	reqs := orch.Requests()
	require.Len(t, reqs, 3)
	assert.Equal(t, "I want a loan", reqs[0].Message)
	assert.Equal(t, "s1", reqs[2].SessionID)
}

func TestFakeOrchestrator_SanctionLetterRoundTrip(t *testing.T) {
	orch := NewFakeOrchestrator(t)
	orch.Push(SanctionLetterReply("sanction_s1.pdf"))

	resp, err := backend.NewClient(orch.URL()).Chat(context.Background(), backend.ChatRequest{SessionID: "s1", Message: "yes"})
	require.NoError(t, err)
	require.True(t, resp.HasSanctionLetter())
	assert.Equal(t, "sanction_s1.pdf", resp.SanctionLetter.File)
	assert.Equal(t, float64(50000), resp.LoanDetails["amount"])
}

func TestFakeOrchestrator_HealthAndDownload(t *testing.T) {
	orch := NewFakeOrchestrator(t)
	orch.AddFile("sanction_s1.pdf", SamplePDF)
	client := backend.NewClient(orch.URL())
	ctx := context.Background()

	health, err := client.Health(ctx)
	require.NoError(t, err)
	assert.True(t, health.OK())

	orch.SetHealthy(false)
	_, err = client.Health(ctx)
	assert.Error(t, err)

	var buf bytes.Buffer
	_, err = client.Download(ctx, "sanction_s1.pdf", &buf)
	require.NoError(t, err)
	assert.Equal(t, SamplePDF, buf.Bytes())

	_, err = client.Download(ctx, "missing.pdf", &buf)
	assert.Error(t, err)
}

func TestFakeOrchestrator_Close(t *testing.T) {
	orch := NewFakeOrchestrator(t)
	orch.Close()

	_, err := backend.NewClient(orch.URL()).Chat(context.Background(), backend.ChatRequest{SessionID: "s", Message: "hi"})
	assert.Error(t, err)
}
