// Package cli provides the faultctl command tree. Every command opens the
// configured database, applies one operation through the fault store and
// closes it again.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rpggio/faultdesk/internal/bootstrap"
	"github.com/rpggio/faultdesk/internal/config"
)

// GlobalOpts holds flags shared by every subcommand.
type GlobalOpts struct {
	DBPath string
	Seed   bool
}

// NewRootCmd creates the root cobra command for faultctl.
func NewRootCmd() *cobra.Command {
	var opts GlobalOpts

	rootCmd := &cobra.Command{
		Use:   "faultctl",
		Short: "Manage facility fault reports",
		Long: `faultctl - manage facility fault reports

Reads and writes the same database as the faultdesk MCP server. Configuration
comes from FAULTDESK_* environment variables and the optional YAML file named
by FAULTDESK_CONFIG_PATH; --db overrides the database path.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "database path (overrides FAULTDESK_DB_PATH)")
	rootCmd.PersistentFlags().BoolVar(&opts.Seed, "seed", false, "load demo faults into an empty database")
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(
		newListCmd(&opts),
		newStatsCmd(&opts),
		newShowCmd(&opts),
		newCreateCmd(&opts),
		newStatusCmd(&opts),
		newAssignCmd(&opts),
		newDeleteCmd(&opts),
		newHistoryCmd(&opts),
		newNoteCmd(&opts),
	)

	return rootCmd
}

// Execute runs the root command with the given output writers.
func Execute(stdout, stderr io.Writer) error {
	rootCmd := NewRootCmd()
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd.Execute()
}

// openApp is replaced in tests to inject repositories.
var openApp = bootstrap.Open

// withApp opens the application for the duration of fn. Logs go to the
// command's stderr.
func withApp(cmd *cobra.Command, opts *GlobalOpts, fn func(ctx context.Context, app *bootstrap.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if opts.DBPath != "" {
		cfg.DB.Path = opts.DBPath
	}
	if opts.Seed {
		cfg.Seed = true
	}
	if cfg.Log.Level == "info" {
		cfg.Log.Level = "warn"
	}

	logger, closeLog := bootstrap.NewLogger(cfg.Log, cmd.ErrOrStderr())
	defer closeLog()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	app, err := openApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	return fn(ctx, app)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid fault id %q", arg)
	}
	return id, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
