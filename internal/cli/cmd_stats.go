package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpggio/faultdesk/internal/bootstrap"
)

func newStatsCmd(opts *GlobalOpts) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(_ context.Context, app *bootstrap.App) error {
				stats := app.Cache.Summarize(app.Store.Snapshot())
				if jsonOutput {
					return writeJSON(cmd.OutOrStdout(), stats)
				}
				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "total:       %d\n", stats.Total)
				fmt.Fprintf(w, "pending:     %d\n", stats.Pending)
				fmt.Fprintf(w, "in progress: %d\n", stats.InProgress)
				fmt.Fprintf(w, "completed:   %d\n", stats.Completed)
				fmt.Fprintf(w, "active:      %d\n", stats.Active)
				fmt.Fprintf(w, "critical:    %d\n", stats.Critical)
				fmt.Fprintf(w, "today:       %d\n", stats.Today)
				_, err := fmt.Fprintf(w, "assigned:    %d\n", stats.Assigned)
				return err
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}
