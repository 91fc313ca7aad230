// Package transcript provides the append-only log of chat turns exchanged
// with the loan orchestrator.
package transcript

import "sync"

// Sender identifies who produced a message.
type Sender string

// Sender values.
const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is a single chat turn. Messages are values and never change once
// appended.
type Message struct {
	Sender Sender `json:"sender"`
	Text   string `json:"text"`
}

// User returns a message sent by the user.
func User(text string) Message {
	return Message{Sender: SenderUser, Text: text}
}

// Bot returns a message sent by the orchestrator.
func Bot(text string) Message {
	return Message{Sender: SenderBot, Text: text}
}

// IsUser reports whether the message came from the user.
func (m Message) IsUser() bool {
	return m.Sender == SenderUser
}

// Transcript is an ordered, append-only sequence of messages.
// It is safe for concurrent use.
type Transcript struct {
	mu       sync.RWMutex
	messages []Message
}

// New creates a transcript, optionally seeded with initial messages.
func New(initial ...Message) *Transcript {
	t := &Transcript{messages: make([]Message, 0, len(initial)+16)}
	t.messages = append(t.messages, initial...)
	return t
}

// Append adds a message to the end of the transcript. Text is stored as-is.
func (t *Transcript) Append(m Message) {
	t.mu.Lock()
	t.messages = append(t.messages, m)
	t.mu.Unlock()
}

// All returns a copy of every message in insertion order.
func (t *Transcript) All() []Message {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}

// Last returns the most recent message, if any.
func (t *Transcript) Last() (Message, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if len(t.messages) == 0 {
		return Message{}, false
	}
	return t.messages[len(t.messages)-1], true
}
