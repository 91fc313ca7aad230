package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/thruflo/loanops/internal/chat"
	"github.com/thruflo/loanops/internal/logging"
	"github.com/thruflo/loanops/internal/session"
)

// newConversation builds a conversation from config, resuming sessionID
// when it is set.
func newConversation(a *app, sessionID string) (*chat.Conversation, error) {
	opts := []chat.Option{
		chat.WithGreeting(a.cfg.GreetingText(chat.DefaultGreeting)),
		chat.WithLogger(logging.Default()),
	}
	if sessionID != "" {
		s, err := session.FromID(sessionID)
		if err != nil {
			return nil, fmt.Errorf("invalid --session: %w", err)
		}
		opts = append(opts, chat.WithSession(s))
	}
	return chat.New(a.client, opts...), nil
}

// transcriptPrinter prints messages as they are appended.
type transcriptPrinter struct {
	out     io.Writer
	printed int
}

// flush prints everything appended since the last flush.
func (p *transcriptPrinter) flush(snap chat.Snapshot) {
	if p.printed >= len(snap.Messages) {
		return
	}
	printMessages(p.out, snap.Messages[p.printed:])
	p.printed = len(snap.Messages)
}

// sendAndPrint sends one message and prints the resulting transcript
// lines. A connection failure is printed like any reply and returned.
func sendAndPrint(ctx context.Context, conv *chat.Conversation, p *transcriptPrinter, text string) error {
	err := conv.Send(ctx, text)
	if err != nil && !errors.Is(err, chat.ErrConnection) {
		return err
	}
	p.flush(conv.Snapshot())
	return err
}
