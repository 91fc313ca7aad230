// tui-demo is a manual test program for the chat TUI.
// Run with: go run ./cmd/tui-demo
//
// It drives a real conversation against a scripted in-process orchestrator
// that walks through every stage, so the tracker, busy input line and
// sanction notice can be checked without a backend. Pass -reject to end the
// script with a rejection instead of a sanction.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/thruflo/loanops/internal/backend"
	"github.com/thruflo/loanops/internal/chat"
	"github.com/thruflo/loanops/internal/logging"
	"github.com/thruflo/loanops/internal/tui"
)

// scriptedOrchestrator answers each turn from a fixed script after a delay.
type scriptedOrchestrator struct {
	delay time.Duration

	mu     sync.Mutex
	script []backend.ChatResponse
	turn   int
}

func (s *scriptedOrchestrator) Chat(ctx context.Context, req backend.ChatRequest) (*backend.ChatResponse, error) {
	select {
	case <-time.After(s.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.turn >= len(s.script) {
		return &backend.ChatResponse{Reply: "Your application is complete. Anything else?"}, nil
	}
	resp := s.script[s.turn]
	s.turn++
	return &resp, nil
}

func script(reject bool) []backend.ChatResponse {
	steps := []backend.ChatResponse{
		{Reply: "Great! How much would you like to borrow, and over what tenure?", ActiveAgent: "SalesAgent"},
		{Reply: "Thanks. To continue, please share your PAN so we can verify your identity.", ActiveAgent: "VerificationAgent"},
		{Reply: "Identity verified. Checking whether you are eligible now.", Stage: "underwriting", ActiveAgent: "UnderwritingAgent"},
	}
	if reject {
		return append(steps, backend.ChatResponse{
			Reply:        "We regret that your application could not be approved at this time.",
			Stage:        "rejected",
			ActiveAgent:  "UnderwritingAgent",
			DecisionType: "AUTOMATED",
		})
	}
	return append(steps, backend.ChatResponse{
		Reply:          "Congratulations! Your loan has been sanctioned.",
		Stage:          "sanction",
		ActiveAgent:    "SanctionAgent",
		SanctionStatus: "completed",
		DecisionType:   "AUTOMATED",
		LoanDetails:    backend.LoanDetails{"amount": 500000, "tenure": 24, "interest_rate": 10.5},
	})
}

func main() {
	reject := flag.Bool("reject", false, "End the script with a rejection")
	delay := flag.Duration("delay", 1200*time.Millisecond, "Simulated orchestrator latency")
	flag.Parse()

	if !tui.IsInteractive(os.Stdin) {
		fmt.Fprintln(os.Stderr, "tui-demo needs an interactive terminal")
		os.Exit(1)
	}

	fmt.Println("TUI Demo - Loan Chat")
	fmt.Println("====================")
	fmt.Println()
	fmt.Println("Type any message and press Enter; the scripted orchestrator")
	fmt.Println("advances one stage per message. Tab shows the tracker,")
	fmt.Println("PgUp/PgDn scroll, Ctrl+C quits.")
	fmt.Println()
	fmt.Println("Press Enter to start...")
	fmt.Scanln()

	logging.SetOutput(io.Discard)

	conv := chat.New(&scriptedOrchestrator{delay: *delay, script: script(*reject)})
	runner := tui.NewRunner(tui.NewTUI(os.Stdout), conv)

	if err := runner.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Demo error: %v\n", err)
		os.Exit(1)
	}

	snap := conv.Snapshot()
	fmt.Println()
	fmt.Printf("Session %s finished at stage %s with %d messages.\n", snap.SessionID, snap.Stage, len(snap.Messages))
	if snap.HasSanction() {
		fmt.Printf("Sanction letter: %s\n", snap.Sanction.FileReference)
	}
}
