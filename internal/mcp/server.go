package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/faultdesk/internal/domain/activity"
	"github.com/rpggio/faultdesk/internal/domain/fault"
	"github.com/rpggio/faultdesk/internal/domain/query"
)

// FaultStore defines store operations needed by MCP.
type FaultStore interface {
	Create(req fault.CreateRequest) (fault.Fault, error)
	GetByID(id int64) (fault.Fault, bool)
	ChangeStatus(id int64, to fault.Status, actor string) (fault.Fault, error)
	Assign(id int64, actor string) (fault.Fault, error)
	Remove(id int64) error
	Snapshot() fault.Snapshot
}

// QueryService defines query operations needed by MCP.
type QueryService interface {
	Query(snap fault.Snapshot, spec query.Spec) ([]fault.Fault, error)
	Summarize(snap fault.Snapshot) query.Stats
}

// ActivityService defines history operations needed by MCP.
type ActivityService interface {
	History(ctx context.Context, faultID int64, opts activity.ListOptions) ([]activity.Entry, error)
	AddNote(ctx context.Context, faultID int64, actor, note string) (*activity.Entry, error)
}

// Config contains server configuration.
type Config struct {
	Faults   FaultStore
	Queries  QueryService
	Activity ActivityService
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "faultdesk",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(logger, "outbound"))

	registerTools(server, NewHandler(cfg.Faults, cfg.Queries, cfg.Activity), logger)

	return server
}
