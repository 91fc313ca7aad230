package tui

import (
	"fmt"

	"github.com/thruflo/loanops/internal/chat"
	"github.com/thruflo/loanops/internal/stage"
)

// NotificationReason represents why the user's attention is needed.
type NotificationReason int

const (
	NotifyReasonNone NotificationReason = iota
	NotifyReasonSanctioned
	NotifyReasonRejected
	NotifyReasonUnreachable
)

// String returns a human-readable title for the notification reason.
func (r NotificationReason) String() string {
	switch r {
	case NotifyReasonSanctioned:
		return "Sanctioned"
	case NotifyReasonRejected:
		return "Rejected"
	case NotifyReasonUnreachable:
		return "Unreachable"
	default:
		return "None"
	}
}

// Message returns the notice shown for the reason.
func (r NotificationReason) Message(state ViewState) string {
	switch r {
	case NotifyReasonSanctioned:
		if state.Sanction != nil {
			return fmt.Sprintf("Sanction letter ready: %s", state.Sanction.FileReference)
		}
		return "Loan sanctioned"
	case NotifyReasonRejected:
		return "Application rejected at underwriting"
	case NotifyReasonUnreachable:
		return "Orchestrator unreachable, try again"
	default:
		return ""
	}
}

// ReasonFor compares consecutive states and reports the transition that
// deserves a notification, if any.
func ReasonFor(prev, next ViewState) NotificationReason {
	switch {
	case prev.Sanction == nil && next.Sanction != nil:
		return NotifyReasonSanctioned
	case prev.Stage != stage.Rejected && next.Stage == stage.Rejected:
		return NotifyReasonRejected
	case len(next.Messages) > len(prev.Messages):
		last := next.Messages[len(next.Messages)-1]
		if !last.IsUser() && last.Text == chat.ConnectionErrorText {
			return NotifyReasonUnreachable
		}
	}
	return NotifyReasonNone
}

// Notifier rings the terminal bell and posts a notice when the conversation
// reaches an outcome.
type Notifier struct {
	tui *TUI
}

// NewNotifier creates a Notifier for the given TUI.
func NewNotifier(tui *TUI) *Notifier {
	return &Notifier{tui: tui}
}

// Notify reacts to the transition from prev to next and returns the reason
// it acted on.
func (n *Notifier) Notify(prev, next ViewState) NotificationReason {
	reason := ReasonFor(prev, next)
	if reason == NotifyReasonNone {
		return reason
	}
	n.tui.SetNotice(reason.Message(next))
	n.tui.Bell()
	return reason
}
