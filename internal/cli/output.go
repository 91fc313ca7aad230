package cli

import (
	"fmt"
	"io"

	"github.com/thruflo/loanops/internal/chat"
	"github.com/thruflo/loanops/internal/transcript"
	"github.com/thruflo/loanops/internal/tui"
)

// printMessages writes messages in transcript order.
func printMessages(out io.Writer, msgs []transcript.Message) {
	for _, msg := range msgs {
		prefix := "Bot: "
		if msg.IsUser() {
			prefix = "You: "
		}
		fmt.Fprintln(out, prefix+msg.Text)
	}
}

// printTracker writes the pipeline state in plain text.
func printTracker(out io.Writer, snap chat.Snapshot) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Session: %s\n", snap.SessionID)
	fmt.Fprintf(out, "Stage:   %s\n", snap.Stage)

	labelWidth, subWidth := 0, 0
	for _, p := range snap.Progress {
		labelWidth = max(labelWidth, len(p.Label))
		subWidth = max(subWidth, len(p.Sub))
	}
	for _, p := range snap.Progress {
		fmt.Fprintf(out, "  %s %-*s  %-*s  %s\n",
			tui.StatusIcon(p.Status), labelWidth, p.Label, subWidth, p.Sub, p.Status)
	}

	fmt.Fprintf(out, "Active Agent: %s\n", tui.WorkerName(snap.Stage))
	if snap.ActiveAgent != "" {
		fmt.Fprintf(out, "Backend Agent: %s\n", snap.ActiveAgent)
	}
	if snap.DecisionType != "" {
		fmt.Fprintf(out, "Decision: %s\n", snap.DecisionType)
	}
	if snap.SanctionStatus != "" {
		fmt.Fprintf(out, "Sanction Status: %s\n", snap.SanctionStatus)
	}

	if snap.HasSanction() {
		fmt.Fprintf(out, "Sanction letter: %s (%s)\n", snap.Sanction.FileReference, snap.Sanction.Source)
		for _, line := range tui.FormatLoanDetails(snap.Sanction.LoanDetails) {
			fmt.Fprintln(out, "  "+line)
		}
	}
}
