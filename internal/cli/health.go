package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/thruflo/loanops/internal/backend"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the orchestrator is reachable",
	Long: `Calls the orchestrator's /health route and reports the result.
Exits non-zero when the orchestrator is unreachable or unhealthy.`,
	Args: cobra.NoArgs,
	RunE: runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
	a, err := setup(false)
	if err != nil {
		return err
	}
	defer a.close()

	return checkHealth(cmdContext(cmd), cmd.OutOrStdout(), a.client)
}

// checkHealth prints the orchestrator's health line and returns an error
// if it is not healthy.
func checkHealth(ctx context.Context, out io.Writer, client *backend.Client) error {
	health, err := client.Health(ctx)
	if err != nil {
		return fmt.Errorf("orchestrator at %s is unreachable: %w", client.BaseURL(), err)
	}
	if !health.OK() {
		return fmt.Errorf("orchestrator at %s reported status %q", client.BaseURL(), health.Status)
	}

	line := fmt.Sprintf("orchestrator at %s: %s", client.BaseURL(), health.Status)
	if health.Message != "" {
		line += " (" + health.Message + ")"
	}
	fmt.Fprintln(out, line)
	return nil
}

// cmdContext returns the command's context, or Background when run
// directly in tests.
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
