package activity

import "time"

// Type represents the kind of history event
type Type string

const (
	TypeFaultCreated  Type = "fault_created"
	TypeStatusChanged Type = "status_changed"
	TypeFaultAssigned Type = "fault_assigned"
	TypeFaultDeleted  Type = "fault_deleted"
	TypeNoteAdded     Type = "note_added"
)

// Entry represents an event in a fault's history timeline
type Entry struct {
	ID        string    `json:"id"`
	FaultID   int64     `json:"faultId"`
	Type      Type      `json:"type"`
	Actor     string    `json:"actor,omitempty"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"createdAt"`
}
