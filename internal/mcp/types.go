package mcp

import (
	"github.com/rpggio/faultdesk/internal/domain/fault"
	"github.com/rpggio/faultdesk/internal/domain/query"
)

type CreateFaultParams struct {
	Title       string         `json:"title" jsonschema:"short summary, 3-100 characters"`
	Description string         `json:"description" jsonschema:"details of the fault, 10-1000 characters"`
	Priority    fault.Priority `json:"priority" jsonschema:"one of low, medium, high, critical"`
	Status      fault.Status   `json:"status,omitempty" jsonschema:"initial status; defaults to pending"`
	Location    string         `json:"location" jsonschema:"where the fault is"`
	ReportedBy  string         `json:"reportedBy" jsonschema:"who reported the fault"`
	AssignedTo  string         `json:"assignedTo,omitempty" jsonschema:"technician already responsible, if any"`
	Photos      []string       `json:"photos,omitempty" jsonschema:"photo references such as URIs, kept in order"`
}

type FaultIDParams struct {
	ID int64 `json:"id" jsonschema:"fault id"`
}

type ChangeStatusParams struct {
	ID     int64        `json:"id" jsonschema:"fault id"`
	Status fault.Status `json:"status" jsonschema:"one of pending, in_progress, completed"`
	Actor  string       `json:"actor,omitempty" jsonschema:"technician making the change; becomes assignee when starting work or when unassigned"`
}

type AssignParams struct {
	ID    int64  `json:"id" jsonschema:"fault id"`
	Actor string `json:"actor,omitempty" jsonschema:"technician to assign; empty clears the assignment"`
}

type QueryParams struct {
	SearchText string       `json:"searchText,omitempty" jsonschema:"case-insensitive text matched against title, description, location and reporter"`
	Priority   string       `json:"priority,omitempty" jsonschema:"priority filter or all"`
	Status     string       `json:"status,omitempty" jsonschema:"status filter or all"`
	SortBy     query.SortBy `json:"sortBy,omitempty" jsonschema:"createdAt (newest first), priority or title"`
	Technician string       `json:"technician,omitempty" jsonschema:"case-insensitive match against the assignee"`
	Limit      int          `json:"limit,omitempty" jsonschema:"maximum number of faults to return"`
}

type SummarizeParams struct{}

type HistoryParams struct {
	ID     int64  `json:"id" jsonschema:"fault id"`
	Type   string `json:"type,omitempty" jsonschema:"only entries of this type"`
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum number of entries"`
	Offset int    `json:"offset,omitempty" jsonschema:"entries to skip"`
}

type AddNoteParams struct {
	ID    int64  `json:"id" jsonschema:"fault id"`
	Actor string `json:"actor" jsonschema:"who is writing the note"`
	Note  string `json:"note" jsonschema:"note text"`
}

type QueryResponse struct {
	Version uint64        `json:"version"`
	Total   int           `json:"total"`
	Faults  []fault.Fault `json:"faults"`
}

type SummaryResponse struct {
	Version uint64 `json:"version"`
	query.Stats
}

type DeleteResponse struct {
	ID      int64 `json:"id"`
	Deleted bool  `json:"deleted"`
}
