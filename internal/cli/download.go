package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/thruflo/loanops/internal/backend"
)

var downloadOutput string

var downloadCmd = &cobra.Command{
	Use:   "download <file>",
	Short: "Download a sanction letter",
	Long: `Fetches a generated sanction letter from the orchestrator.

The file reference is the name shown by 'send' or the chat tracker, e.g.
sanction_3f9a1c2b7d4e.pdf. Without -o the file is saved under its own name
in the current directory.

Example:
  loanops download sanction_3f9a1c2b7d4e.pdf
  loanops download sanction_3f9a1c2b7d4e.pdf -o ~/letters/offer.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().StringVarP(&downloadOutput, "output", "o", "", "Destination path")
	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	a, err := setup(false)
	if err != nil {
		return err
	}
	defer a.close()

	dest := downloadOutput
	if dest == "" {
		dest = filepath.Base(args[0])
	}

	n, err := downloadFile(cmdContext(cmd), a.client, args[0], dest)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%d bytes)\n", dest, n)
	return nil
}

// downloadFile saves the orchestrator file into dest. A partial file is
// removed on failure.
func downloadFile(ctx context.Context, client *backend.Client, file, dest string) (int64, error) {
	if dir := filepath.Dir(dest); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	f, err := os.Create(dest)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", dest, err)
	}

	n, err := client.Download(ctx, file, f)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to write %s: %w", dest, closeErr)
	}
	if err != nil {
		os.Remove(dest)
		return 0, err
	}
	return n, nil
}
