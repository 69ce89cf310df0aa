package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rpggio/faultdesk/internal/bootstrap"
	"github.com/rpggio/faultdesk/internal/domain/fault"
	"github.com/rpggio/faultdesk/internal/domain/query"
)

func newListCmd(opts *GlobalOpts) *cobra.Command {
	var spec query.Spec
	var sortBy string
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List faults",
		Long: `List faults matching every given filter.
Search text matches title, description, location and reporter, ignoring case.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec.SortBy = query.SortBy(sortBy)
			return withApp(cmd, opts, func(_ context.Context, app *bootstrap.App) error {
				records, err := app.Cache.Query(app.Store.Snapshot(), spec)
				if err != nil {
					return err
				}
				if limit > 0 && len(records) > limit {
					records = records[:limit]
				}
				if jsonOutput {
					if records == nil {
						records = []fault.Fault{}
					}
					return writeJSON(cmd.OutOrStdout(), records)
				}
				return printFaults(cmd.OutOrStdout(), records)
			})
		},
	}

	cmd.Flags().StringVar(&spec.SearchText, "search", "", "text to search for")
	cmd.Flags().StringVar(&spec.Priority, "priority", query.All, "priority filter (low, medium, high, critical, all)")
	cmd.Flags().StringVar(&spec.Status, "status", query.All, "status filter (pending, in_progress, completed, all)")
	cmd.Flags().StringVar(&spec.Technician, "technician", "", "assignee filter")
	cmd.Flags().StringVar(&sortBy, "sort", string(query.SortByCreatedAt), "sort key (createdAt, priority, title)")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of faults to print")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	return cmd
}

func printFaults(w io.Writer, records []fault.Fault) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "no faults")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPRIORITY\tSTATUS\tTITLE\tLOCATION\tASSIGNED\tCREATED")
	for _, rec := range records {
		assigned := rec.AssignedTo
		if assigned == "" {
			assigned = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			rec.ID, rec.Priority, rec.Status, rec.Title, rec.Location, assigned,
			rec.CreatedAt.Local().Format(time.DateTime))
	}
	return tw.Flush()
}
