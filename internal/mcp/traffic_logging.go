package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// trafficLoggingMiddleware logs each tool call at info level with the tool
// name, the fault it targets and its outcome. Everything else is only
// logged at debug level.
func trafficLoggingMiddleware(logger *slog.Logger, direction string) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if logger == nil {
				return next(ctx, method, req)
			}

			start := time.Now()
			result, err := next(ctx, method, req)

			if call, ok := req.(*sdkmcp.CallToolRequest); ok && call.Params != nil {
				logToolCall(ctx, logger, call.Params, result, err, time.Since(start))
				return result, err
			}
			if strings.HasPrefix(method, "notifications/") || !logger.Enabled(ctx, slog.LevelDebug) {
				return result, err
			}
			logger.DebugContext(ctx, "mcp traffic",
				"direction", direction,
				"method", method,
				"session_id", safeSessionID(req),
				"params", formatPayload(safeParams(req)),
				"result", formatPayload(result),
				"error", err,
			)
			return result, err
		}
	}
}

func logToolCall(ctx context.Context, logger *slog.Logger, params *sdkmcp.CallToolParamsRaw, result sdkmcp.Result, err error, elapsed time.Duration) {
	attrs := []any{"tool", params.Name, "duration", elapsed}

	var target struct {
		ID *int64 `json:"id"`
	}
	if len(params.Arguments) > 0 && json.Unmarshal(params.Arguments, &target) == nil && target.ID != nil {
		attrs = append(attrs, "fault_id", *target.ID)
	}

	res, _ := result.(*sdkmcp.CallToolResult)
	switch {
	case err != nil:
		logger.WarnContext(ctx, "tool call failed", append(attrs, "error", err)...)
	case res != nil && res.IsError:
		logger.InfoContext(ctx, "tool call rejected", append(attrs, "code", errorCode(res))...)
	default:
		logger.InfoContext(ctx, "tool call", attrs...)
	}
}

// errorCode extracts the APIError code from an error result.
func errorCode(res *sdkmcp.CallToolResult) string {
	for _, content := range res.Content {
		text, ok := content.(*sdkmcp.TextContent)
		if !ok {
			continue
		}
		var apiErr APIError
		if json.Unmarshal([]byte(text.Text), &apiErr) == nil && apiErr.Code != "" {
			return apiErr.Code
		}
	}
	return "unknown"
}

// The SDK accessors panic on partially built requests.
func safeSessionID(req sdkmcp.Request) (id string) {
	if req == nil {
		return ""
	}
	defer func() {
		if recover() != nil {
			id = ""
		}
	}()
	session := req.GetSession()
	if session == nil {
		return ""
	}
	return session.ID()
}

func safeParams(req sdkmcp.Request) (params any) {
	if req == nil {
		return nil
	}
	defer func() {
		if recover() != nil {
			params = nil
		}
	}()
	return req.GetParams()
}

func formatPayload(payload any) string {
	if payload == nil {
		return "<nil>"
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("%T", payload)
	}
	return string(data)
}
