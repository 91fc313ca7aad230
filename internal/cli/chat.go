package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/thruflo/loanops/internal/chat"
	"github.com/thruflo/loanops/internal/tui"
)

var chatSession string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive loan conversation",
	Long: `Opens a conversation with the loan orchestrator.

On a terminal this starts the full-screen client: transcript, input line and
a live tracker (tab switches to the detailed tracker). Otherwise messages are
read line by line from stdin and replies are printed as they arrive; type
/status to print the tracker or /quit to leave.

Example:
  loanops chat
  loanops chat --session 3f9a1c2b7d4e
  printf 'hi\n5 lakh\n' | loanops chat`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatSession, "session", "", "Resume an existing session id")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	interactive := isTerminal(cmd.InOrStdin()) && isTerminal(cmd.OutOrStdout())

	a, err := setup(interactive)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	healthErr := checkHealth(ctx, io.Discard, a.client)
	if healthErr != nil {
		a.log.Warn("health check failed", "error", healthErr)
	}

	conv, err := newConversation(a, chatSession)
	if err != nil {
		return err
	}

	if !interactive {
		if healthErr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", healthErr)
		}
		return runLineChat(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), conv)
	}

	screen := tui.NewTUI(os.Stdout)
	if healthErr != nil {
		screen.SetNotice("Health check failed: " + healthErr.Error())
	}
	runner := tui.NewRunner(screen, conv)
	err = runner.Run(ctx)

	out := cmd.OutOrStdout()
	snap := conv.Snapshot()
	printTracker(out, snap)
	if snap.HasSanction() {
		fmt.Fprintf(out, "\nDownload with: loanops download %s\n", snap.Sanction.FileReference)
	}

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// runLineChat drives the conversation from lines of in until EOF or /quit.
func runLineChat(ctx context.Context, in io.Reader, out io.Writer, conv *chat.Conversation) error {
	p := &transcriptPrinter{out: out}
	p.flush(conv.Snapshot())

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			printTracker(out, conv.Snapshot())
			return nil
		case "/status":
			printTracker(out, conv.Snapshot())
			continue
		}

		if err := sendAndPrint(ctx, conv, p, line); err != nil && !errors.Is(err, chat.ErrConnection) {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	printTracker(out, conv.Snapshot())
	return nil
}

// isTerminal reports whether v is an *os.File attached to a terminal.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && tui.IsInteractive(f)
}
