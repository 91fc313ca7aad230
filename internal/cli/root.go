package cli

import (
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Persistent flags shared by every command. Empty means "use config".
var (
	dirFlag      string
	serverFlag   string
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "loanops",
	Short: "Terminal client for the agentic loan orchestrator",
	Long: `loanops chats with a loan orchestrator backend and tracks the
application as it moves through sales, verification, underwriting and
sanction. When a loan is sanctioned the sanction letter can be downloaded.

Configuration is read from .loanops/config.yaml and .loanops/.env in the
working directory (or --dir).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("loanops version {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&dirFlag, "dir", "", "Project directory holding .loanops/ (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "", "Orchestrator base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
