package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	sendSession     string
	sendDownloadDir string
)

var sendCmd = &cobra.Command{
	Use:   "send <message>...",
	Short: "Send messages in one session and print the outcome",
	Long: `Sends each argument as a chat message, in order, within a single
session, then prints the transcript and the application tracker.

With --download-dir, a sanction letter captured during the exchange is
downloaded into that directory.

Example:
  loanops send "I need a personal loan" "5 lakh over 24 months" "ABCDE1234F"
  loanops send --session 3f9a1c2b7d4e --download-dir ./letters "I accept"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSend,
}

func init() {
	sendCmd.Flags().StringVar(&sendSession, "session", "", "Resume an existing session id")
	sendCmd.Flags().StringVar(&sendDownloadDir, "download-dir", "", "Directory to save a sanction letter into")
	rootCmd.AddCommand(sendCmd)
}

func runSend(cmd *cobra.Command, args []string) error {
	a, err := setup(false)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmdContext(cmd)
	out := cmd.OutOrStdout()

	conv, err := newConversation(a, sendSession)
	if err != nil {
		return err
	}

	p := &transcriptPrinter{out: out}
	p.flush(conv.Snapshot())

	for i, text := range args {
		if err := sendAndPrint(ctx, conv, p, text); err != nil {
			printTracker(out, conv.Snapshot())
			return fmt.Errorf("message %d: %w", i+1, err)
		}
	}

	snap := conv.Snapshot()
	printTracker(out, snap)

	if snap.HasSanction() && sendDownloadDir != "" {
		file := snap.Sanction.FileReference
		dest := filepath.Join(sendDownloadDir, filepath.Base(file))
		n, err := downloadFile(ctx, a.client, file, dest)
		if err != nil {
			return fmt.Errorf("failed to download sanction letter: %w", err)
		}
		fmt.Fprintf(out, "Saved %s (%d bytes)\n", dest, n)
	}
	return nil
}
