package tui

import (
	"context"
	"errors"
	"sync"

	"github.com/thruflo/loanops/internal/chat"
	"github.com/thruflo/loanops/internal/logging"
)

// Conversation is the part of chat.Conversation the runner drives.
type Conversation interface {
	Snapshot() chat.Snapshot
	Subscribe() (<-chan struct{}, func())
	Send(ctx context.Context, text string) error
}

// Runner connects a TUI to a conversation. Every change notification
// re-projects the snapshot into the TUI, and submitted input is sent in the
// background so the key loop never blocks on the network.
type Runner struct {
	tui      *TUI
	conv     Conversation
	notifier *Notifier
	log      *logging.Logger
	wg       sync.WaitGroup
}

// NewRunner creates a Runner for the given TUI and conversation.
func NewRunner(tui *TUI, conv Conversation) *Runner {
	return &Runner{
		tui:      tui,
		conv:     conv,
		notifier: NewNotifier(tui),
		log:      logging.With("component", "tui"),
	}
}

// Run executes the TUI event loop until the user quits or ctx is cancelled.
// In-flight sends are cancelled and waited for before Run returns.
func (r *Runner) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		r.wg.Wait()
	}()

	updates, unsubscribe := r.conv.Subscribe()
	defer unsubscribe()

	r.tui.SetState(StateFromSnapshot(r.conv.Snapshot()))

	done := make(chan error, 1)
	go func() {
		done <- r.tui.Run(ctx)
	}()

	for {
		select {
		case err := <-done:
			return err

		case _, ok := <-updates:
			if !ok {
				return nil
			}
			r.Refresh()

		case action := <-r.tui.Actions():
			r.handleAction(ctx, action)
		}
	}
}

// Refresh pulls a fresh snapshot into the TUI, notifies on outcome
// transitions, and redraws.
func (r *Runner) Refresh() {
	prev := r.tui.GetState()
	next := StateFromSnapshot(r.conv.Snapshot())
	r.tui.SetState(next)
	if reason := r.notifier.Notify(prev, next); reason != NotifyReasonNone {
		r.log.Info("notified", "reason", reason.String(), "stage", next.Stage.String())
	}
	r.tui.Update()
}

func (r *Runner) handleAction(ctx context.Context, action ActionEvent) {
	if action.Action != ActionSubmit {
		return
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		err := r.conv.Send(ctx, action.Input)
		switch {
		case err == nil, errors.Is(err, chat.ErrConnection):
			// Connection failures are already in the transcript.
		case errors.Is(err, chat.ErrBusy):
			r.log.Debug("dropped input while busy")
		default:
			r.log.Warn("failed to send message", "error", err)
		}
	}()
}

// Wait blocks until every background send has finished.
func (r *Runner) Wait() {
	r.wg.Wait()
}
