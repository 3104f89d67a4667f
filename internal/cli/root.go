package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/xavierca1/lead-intake/internal/infra/integration/leadsapi"
)

var apiURL string

var rootCmd = &cobra.Command{
	Use:   "leadboard",
	Short: "Review invited leads and accept or decline them",
	Long: `Leadboard talks to the lead intake API.

By default, running leadboard without arguments launches the interactive TUI.
Use subcommands for scripted operations.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return launchTUI(cmd, args)
	},
}

// ExecuteContext runs the root command with ctx available to subcommands.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// newClient resolves the API URL at call time so a .env loaded in main
// still applies.
func newClient() *leadsapi.Client {
	if apiURL != "" {
		return leadsapi.NewClient(apiURL)
	}
	if v := os.Getenv("LEADS_API_URL"); v != "" {
		return leadsapi.NewClient(v)
	}
	return leadsapi.NewClient("http://localhost:8080")
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "lead intake API base URL (default $LEADS_API_URL or http://localhost:8080)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(acceptCmd)
	rootCmd.AddCommand(declineCmd)
	rootCmd.AddCommand(tuiCmd)
}
