package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/faultdesk/internal/bootstrap"
	"github.com/rpggio/faultdesk/internal/config"
	"github.com/rpggio/faultdesk/internal/mcp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Use stderr for logs to keep stdout clean for JSON-RPC.
	logger, closeLog := bootstrap.NewLogger(cfg.Log, os.Stderr)
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	mcpServer := mcp.NewServer(mcp.Config{
		Faults:   app.Store,
		Queries:  app.Cache,
		Activity: app.Activity,
		Logger:   logger,
	})

	if err := runStdioMode(ctx, logger, mcpServer); err != nil {
		logger.Error("stdio server error", "error", err)
		app.Close()
		os.Exit(1)
	}
}

func runStdioMode(ctx context.Context, logger *slog.Logger, mcpServer *sdkmcp.Server) error {
	logger.Info("starting stdio transport")

	// Run blocks until stdin closes or the context is canceled.
	err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{})
	if ctx.Err() != nil {
		logger.Info("shutting down")
		return nil
	}
	return err
}
