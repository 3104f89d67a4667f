package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/xavierca1/lead-intake/internal/infra/integration/leadsapi"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List leads by status",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")

		leads, err := newClient().ListByStatus(cmd.Context(), status)
		if err != nil {
			return fmt.Errorf("failed to list leads: %w", err)
		}

		printLeads(cmd.OutOrStdout(), leads)
		return nil
	},
}

var acceptCmd = &cobra.Command{
	Use:   "accept [id]",
	Short: "Accept an invited lead",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := newClient().Accept(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to accept lead %d: %w", id, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Lead %d accepted\n", id)
		return nil
	},
}

var declineCmd = &cobra.Command{
	Use:   "decline [id]",
	Short: "Decline an invited lead",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := newClient().Decline(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to decline lead %d: %w", id, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Lead %d declined\n", id)
		return nil
	},
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid lead id %q", s)
	}
	return id, nil
}

func printLeads(w io.Writer, leads []leadsapi.Lead) {
	if len(leads) == 0 {
		fmt.Fprintln(w, "No leads found")
		return
	}

	fmt.Fprintf(w, "%-5s %-25s %-15s %-15s %12s %-10s\n", "ID", "Name", "Suburb", "Category", "Price", "Status")
	fmt.Fprintln(w, "----------------------------------------------------------------------------------------")

	for _, l := range leads {
		fmt.Fprintf(w, "%-5d %-25s %-15s %-15s %12s %-10s\n",
			l.ID,
			truncate(l.FullName(), 25),
			truncate(l.Suburb, 15),
			truncate(l.Category, 15),
			l.Price.StringFixed(2),
			l.Status,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d lead(s)\n", len(leads))
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func init() {
	listCmd.Flags().String("status", "Invited", "lead status (Invited, Accepted, Declined)")
}
