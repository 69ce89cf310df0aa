package mcp

import (
	"context"
	"fmt"

	"github.com/rpggio/faultdesk/internal/domain/activity"
	"github.com/rpggio/faultdesk/internal/domain/fault"
	"github.com/rpggio/faultdesk/internal/domain/query"
)

// Handler implements the MCP tools on top of the domain services.
type Handler struct {
	faults   FaultStore
	queries  QueryService
	activity ActivityService
}

// NewHandler creates a new MCP handler.
func NewHandler(faults FaultStore, queries QueryService, activitySvc ActivityService) *Handler {
	return &Handler{
		faults:   faults,
		queries:  queries,
		activity: activitySvc,
	}
}

func (h *Handler) createFault(_ context.Context, p CreateFaultParams) (any, error) {
	rec, err := h.faults.Create(fault.CreateRequest{
		Title:       p.Title,
		Description: p.Description,
		Status:      p.Status,
		Priority:    p.Priority,
		Location:    p.Location,
		ReportedBy:  p.ReportedBy,
		AssignedTo:  p.AssignedTo,
		Photos:      p.Photos,
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (h *Handler) getFault(_ context.Context, p FaultIDParams) (any, error) {
	rec, ok := h.faults.GetByID(p.ID)
	if !ok {
		return nil, fmt.Errorf("%w: %d", fault.ErrFaultNotFound, p.ID)
	}
	return rec, nil
}

func (h *Handler) changeStatus(_ context.Context, p ChangeStatusParams) (any, error) {
	rec, err := h.faults.ChangeStatus(p.ID, p.Status, p.Actor)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (h *Handler) assign(_ context.Context, p AssignParams) (any, error) {
	rec, err := h.faults.Assign(p.ID, p.Actor)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (h *Handler) deleteFault(_ context.Context, p FaultIDParams) (any, error) {
	if err := h.faults.Remove(p.ID); err != nil {
		return nil, err
	}
	return DeleteResponse{ID: p.ID, Deleted: true}, nil
}

func (h *Handler) queryFaults(_ context.Context, p QueryParams) (any, error) {
	snap := h.faults.Snapshot()
	records, err := h.queries.Query(snap, query.Spec{
		SearchText: p.SearchText,
		Priority:   p.Priority,
		Status:     p.Status,
		SortBy:     p.SortBy,
		Technician: p.Technician,
	})
	if err != nil {
		return nil, err
	}
	total := len(records)
	if p.Limit > 0 && len(records) > p.Limit {
		records = records[:p.Limit]
	}
	return QueryResponse{Version: snap.Version, Total: total, Faults: records}, nil
}

func (h *Handler) summarize(_ context.Context, _ SummarizeParams) (any, error) {
	snap := h.faults.Snapshot()
	return SummaryResponse{Version: snap.Version, Stats: h.queries.Summarize(snap)}, nil
}

func (h *Handler) history(ctx context.Context, p HistoryParams) (any, error) {
	// Deleted faults keep their history, so only impossible ids are rejected.
	if p.ID <= 0 {
		return nil, fmt.Errorf("%w: %d", fault.ErrFaultNotFound, p.ID)
	}
	opts := activity.ListOptions{Limit: p.Limit, Offset: p.Offset}
	if p.Type != "" {
		typ := activity.Type(p.Type)
		opts.Type = &typ
	}
	entries, err := h.activity.History(ctx, p.ID, opts)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []activity.Entry{}
	}
	return entries, nil
}

func (h *Handler) addNote(ctx context.Context, p AddNoteParams) (any, error) {
	return h.activity.AddNote(ctx, p.ID, p.Actor, p.Note)
}
