package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rpggio/faultdesk/internal/bootstrap"
	"github.com/rpggio/faultdesk/internal/domain/activity"
)

func newHistoryCmd(opts *GlobalOpts) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history [id]",
		Short: "Show the timeline of a fault, or recent activity across faults, newest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id int64
			if len(args) == 1 {
				parsed, err := parseID(args[0])
				if err != nil {
					return err
				}
				id = parsed
			}
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				listOpts := activity.ListOptions{Limit: limit}
				var entries []activity.Entry
				var err error
				if id > 0 {
					entries, err = app.Activity.History(ctx, id, listOpts)
				} else {
					entries, err = app.Activity.GetRecentActivity(ctx, listOpts)
				}
				if err != nil {
					return err
				}
				if jsonOutput {
					if entries == nil {
						entries = []activity.Entry{}
					}
					return writeJSON(cmd.OutOrStdout(), entries)
				}
				if len(entries) == 0 {
					_, err := fmt.Fprintln(cmd.OutOrStdout(), "no history")
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				for _, entry := range entries {
					actor := entry.Actor
					if actor == "" {
						actor = "-"
					}
					if id == 0 {
						fmt.Fprintf(tw, "#%d\t", entry.FaultID)
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
						entry.CreatedAt.Local().Format(time.DateTime), entry.Type, actor, entry.Summary)
				}
				return tw.Flush()
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of entries")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

func newNoteCmd(opts *GlobalOpts) *cobra.Command {
	var actor, text string

	cmd := &cobra.Command{
		Use:   "note <id>",
		Short: "Add a note to a fault's history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				entry, err := app.Activity.AddNote(ctx, id, actor, text)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "note %s added to fault %d\n", entry.ID, id)
				return err
			})
		},
	}

	cmd.Flags().StringVar(&actor, "actor", "", "who is writing the note")
	cmd.Flags().StringVar(&text, "text", "", "note text")
	_ = cmd.MarkFlagRequired("actor")
	_ = cmd.MarkFlagRequired("text")
	return cmd
}
