package chat

import (
	"sync"

	"github.com/thruflo/loanops/internal/sanction"
	"github.com/thruflo/loanops/internal/stage"
	"github.com/thruflo/loanops/internal/transcript"
)

// Snapshot is a consistent, read-only copy of a conversation's state.
type Snapshot struct {
	SessionID      string
	Messages       []transcript.Message
	Stage          stage.Stage
	Progress       []stage.StepProgress
	Sanction       *sanction.Record
	ActiveAgent    string
	SanctionStatus string
	DecisionType   string
	Busy           bool
}

// HasSanction reports whether a sanction record was captured.
func (s Snapshot) HasSanction() bool {
	return s.Sanction != nil
}

// Snapshot returns the current state.
func (c *Conversation) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rec, _ := c.sanctions.Record()
	return Snapshot{
		SessionID:      c.session.ID(),
		Messages:       c.transcript.All(),
		Stage:          c.tracker.Current(),
		Progress:       c.tracker.Progress(),
		Sanction:       rec,
		ActiveAgent:    c.activeAgent,
		SanctionStatus: c.sanctionStatus,
		DecisionType:   c.decisionType,
		Busy:           c.busy.Load(),
	}
}

// Subscribe returns a channel that receives a signal after every state
// change, and a function that cancels the subscription and closes the
// channel. Signals coalesce: a slow reader sees one pending signal, not one
// per change, and should read Snapshot when it wakes.
func (c *Conversation) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	c.subMu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	c.subMu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			c.subMu.Lock()
			delete(c.subs, id)
			close(ch)
			c.subMu.Unlock()
		})
	}
	return ch, cancel
}

// notify signals every subscriber without blocking.
func (c *Conversation) notify() {
	c.subMu.Lock()
	defer c.subMu.Unlock()

	for _, ch := range c.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
