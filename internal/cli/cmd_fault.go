package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rpggio/faultdesk/internal/bootstrap"
	"github.com/rpggio/faultdesk/internal/domain/fault"
)

func newShowCmd(opts *GlobalOpts) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one fault",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, opts, func(_ context.Context, app *bootstrap.App) error {
				rec, ok := app.Store.GetByID(id)
				if !ok {
					return fmt.Errorf("%w: %d", fault.ErrFaultNotFound, id)
				}
				return printFault(cmd.OutOrStdout(), rec, jsonOutput)
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

func newCreateCmd(opts *GlobalOpts) *cobra.Command {
	var req fault.CreateRequest
	var priority, status string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Report a new fault",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Priority = fault.Priority(priority)
			req.Status = fault.Status(status)
			return withApp(cmd, opts, func(_ context.Context, app *bootstrap.App) error {
				rec, err := app.Store.Create(req)
				if err != nil {
					return err
				}
				if err := app.Persisted(); err != nil {
					return err
				}
				return printFault(cmd.OutOrStdout(), rec, false)
			})
		},
	}

	cmd.Flags().StringVar(&req.Title, "title", "", "short summary (3-100 characters)")
	cmd.Flags().StringVar(&req.Description, "description", "", "details (10-1000 characters)")
	cmd.Flags().StringVar(&priority, "priority", string(fault.PriorityMedium), "low, medium, high or critical")
	cmd.Flags().StringVar(&status, "status", "", "initial status (default pending)")
	cmd.Flags().StringVar(&req.Location, "location", "", "where the fault is")
	cmd.Flags().StringVar(&req.ReportedBy, "reported-by", "", "who reported it")
	cmd.Flags().StringVar(&req.AssignedTo, "assigned-to", "", "technician already responsible")
	cmd.Flags().StringArrayVar(&req.Photos, "photo", nil, "photo reference (repeatable)")

	return cmd
}

func newStatusCmd(opts *GlobalOpts) *cobra.Command {
	var actor string

	cmd := &cobra.Command{
		Use:   "status <id> <pending|in_progress|completed>",
		Short: "Change the status of a fault",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, opts, func(_ context.Context, app *bootstrap.App) error {
				rec, err := app.Store.ChangeStatus(id, fault.Status(args[1]), actor)
				if err != nil {
					return err
				}
				if err := app.Persisted(); err != nil {
					return err
				}
				return printFault(cmd.OutOrStdout(), rec, false)
			})
		},
	}

	cmd.Flags().StringVar(&actor, "actor", "", "technician making the change")
	return cmd
}

func newAssignCmd(opts *GlobalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "assign <id> [actor]",
		Short: "Assign a technician; omit the actor to unassign",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			actor := ""
			if len(args) == 2 {
				actor = args[1]
			}
			return withApp(cmd, opts, func(_ context.Context, app *bootstrap.App) error {
				rec, err := app.Store.Assign(id, actor)
				if err != nil {
					return err
				}
				if err := app.Persisted(); err != nil {
					return err
				}
				return printFault(cmd.OutOrStdout(), rec, false)
			})
		},
	}
}

func newDeleteCmd(opts *GlobalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Permanently delete a fault",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, opts, func(_ context.Context, app *bootstrap.App) error {
				if err := app.Store.Remove(id); err != nil {
					return err
				}
				if err := app.Persisted(); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "deleted fault %d\n", id)
				return err
			})
		},
	}
}

func printFault(w io.Writer, rec fault.Fault, jsonOutput bool) error {
	if jsonOutput {
		return writeJSON(w, rec)
	}
	fmt.Fprintf(w, "#%d %s\n", rec.ID, rec.Title)
	fmt.Fprintf(w, "  status:      %s\n", rec.Status)
	fmt.Fprintf(w, "  priority:    %s\n", rec.Priority)
	fmt.Fprintf(w, "  location:    %s\n", rec.Location)
	fmt.Fprintf(w, "  reported by: %s\n", rec.ReportedBy)
	if rec.Assigned() {
		fmt.Fprintf(w, "  assigned to: %s\n", rec.AssignedTo)
	}
	fmt.Fprintf(w, "  created:     %s\n", rec.CreatedAt.Local().Format(time.DateTime))
	fmt.Fprintf(w, "  updated:     %s\n", rec.UpdatedAt.Local().Format(time.DateTime))
	if rec.CompletedAt != nil {
		fmt.Fprintf(w, "  completed:   %s\n", rec.CompletedAt.Local().Format(time.DateTime))
	}
	if len(rec.Photos) > 0 {
		fmt.Fprintf(w, "  photos:      %s\n", strings.Join(rec.Photos, ", "))
	}
	_, err := fmt.Fprintf(w, "\n  %s\n", rec.Description)
	return err
}
