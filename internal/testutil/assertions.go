package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thruflo/loanops/internal/stage"
	"github.com/thruflo/loanops/internal/transcript"
)

// AssertStatuses asserts the status of every pipeline step, in order.
func AssertStatuses(t *testing.T, progress []stage.StepProgress, expected ...stage.Status) {
	t.Helper()

	require.Len(t, progress, len(expected), "step count mismatch")
	for i := range expected {
		assert.Equal(t, expected[i], progress[i].Status, "step %s status mismatch", progress[i].ID)
	}
}

// AssertLastMessage asserts the newest transcript entry.
func AssertLastMessage(t *testing.T, messages []transcript.Message, sender transcript.Sender, text string) {
	t.Helper()

	require.NotEmpty(t, messages, "transcript is empty")
	last := messages[len(messages)-1]
	assert.Equal(t, sender, last.Sender, "last message sender mismatch")
	assert.Equal(t, text, last.Text, "last message text mismatch")
}
