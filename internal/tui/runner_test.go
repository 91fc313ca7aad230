package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thruflo/loanops/internal/backend"
	"github.com/thruflo/loanops/internal/chat"
	"github.com/thruflo/loanops/internal/stage"
	"github.com/thruflo/loanops/internal/testutil"
)

// scriptedSender replays responses in order.
type scriptedSender struct {
	mu        sync.Mutex
	responses []backend.ChatResponse
	err       error
}

func (s *scriptedSender) Chat(ctx context.Context, req backend.ChatRequest) (*backend.ChatResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}
	if len(s.responses) == 0 {
		return &backend.ChatResponse{Reply: "ok"}, nil
	}
	resp := s.responses[0]
	s.responses = s.responses[1:]
	return &resp, nil
}

func TestRunner_RefreshProjectsSnapshot(t *testing.T) {
	t.Parallel()

	conv := chat.New(&scriptedSender{}, chat.WithGreeting("Hello! How can I assist you?"))
	tui, _ := newTestTUI()
	r := NewRunner(tui, conv)

	r.Refresh()

	state := tui.GetState()
	assert.Equal(t, conv.SessionID(), state.SessionID)
	require.Len(t, state.Messages, 1)
	assert.Equal(t, "Hello! How can I assist you?", state.Messages[0].Text)
	assert.Equal(t, stage.Sales, state.Stage)
	assert.Len(t, state.Progress, 4)
}

func TestRunner_SubmitSanction(t *testing.T) {
	t.Parallel()

	sender := &scriptedSender{responses: []backend.ChatResponse{testutil.SanctionReply(500000)}}
	conv := chat.New(sender)
	tui, buf := newTestTUI()
	r := NewRunner(tui, conv)
	r.Refresh()

	r.handleAction(context.Background(), ActionEvent{Action: ActionSubmit, Input: "I accept"})
	r.Wait()
	r.Refresh()

	state := tui.GetState()
	assert.Equal(t, stage.Sanction, state.Stage)
	require.NotNil(t, state.Sanction)
	assert.Equal(t, "sanction_"+conv.SessionID()+".pdf", state.Sanction.FileReference)
	assert.Contains(t, tui.notice, state.Sanction.FileReference)
	assert.True(t, strings.Contains(buf.String(), Bell))
}

func TestRunner_SubmitConnectionFailure(t *testing.T) {
	t.Parallel()

	conv := chat.New(&scriptedSender{err: errors.New("dial tcp: connection refused")})
	tui, _ := newTestTUI()
	r := NewRunner(tui, conv)
	r.Refresh()

	r.handleAction(context.Background(), ActionEvent{Action: ActionSubmit, Input: "hello"})
	r.Wait()
	r.Refresh()

	state := tui.GetState()
	require.NotEmpty(t, state.Messages)
	assert.Equal(t, chat.ConnectionErrorText, state.Messages[len(state.Messages)-1].Text)
	assert.False(t, state.Busy)
	assert.Contains(t, tui.notice, "unreachable")
}

func TestRunner_IgnoresNonSubmitActions(t *testing.T) {
	t.Parallel()

	conv := chat.New(&scriptedSender{}, chat.WithGreeting(""))
	tui, _ := newTestTUI()
	r := NewRunner(tui, conv)

	r.handleAction(context.Background(), ActionEvent{Action: ActionQuit})
	r.Wait()
	assert.Empty(t, conv.Snapshot().Messages)
}
