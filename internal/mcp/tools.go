package mcp

import (
	"context"
	"encoding/json"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerTools(server *sdkmcp.Server, h *Handler, logger *slog.Logger) {
	addTool(server, logger, "create_fault",
		"Report a new fault. Returns the stored fault with its assigned id.",
		h.createFault)
	addTool(server, logger, "get_fault",
		"Get one fault by id.",
		h.getFault)
	addTool(server, logger, "change_fault_status",
		"Move a fault between pending, in_progress and completed. Completing sets completedAt; re-opening clears it.",
		h.changeStatus)
	addTool(server, logger, "assign_fault",
		"Assign a technician without changing the status. An empty actor clears the assignment.",
		h.assign)
	addTool(server, logger, "delete_fault",
		"Permanently delete a fault. Its id is never reused.",
		h.deleteFault)
	addTool(server, logger, "query_faults",
		"List faults filtered by search text, priority, status and technician, sorted by createdAt, priority or title.",
		h.queryFaults)
	addTool(server, logger, "summarize_faults",
		"Dashboard counters: total, pending, inProgress, completed, critical, today, assigned, active.",
		h.summarize)
	addTool(server, logger, "fault_history",
		"Timeline of a fault, newest first. History survives deletion.",
		h.history)
	addTool(server, logger, "add_fault_note",
		"Append a free-text note to a fault's history.",
		h.addNote)
}

// addTool registers fn as a typed tool. Domain errors become tool results
// flagged IsError whose text is the JSON-encoded APIError.
func addTool[In any](server *sdkmcp.Server, logger *slog.Logger, name, description string, fn func(context.Context, In) (any, error)) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{Name: name, Description: description},
		func(ctx context.Context, _ *sdkmcp.CallToolRequest, in In) (*sdkmcp.CallToolResult, any, error) {
			out, err := fn(ctx, in)
			if err != nil {
				apiErr := MapError(err)
				if apiErr.Code == "INTERNAL_ERROR" {
					logger.Error("tool failed", "tool", name, "error", err)
				}
				return jsonResult(apiErr, true)
			}
			return jsonResult(out, false)
		})
}

func jsonResult(v any, isError bool) (*sdkmcp.CallToolResult, any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, nil, err
	}
	return &sdkmcp.CallToolResult{
		IsError: isError,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil, nil
}
