package fault

import "time"

// Status represents the lifecycle state of a fault
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	// StatusCancelled is shown by some collaborators but is not part of the
	// store's state machine.
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is one of the three core lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Priority represents the severity of a fault
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	return p.Rank() >= 0
}

// Rank orders priorities by severity, most severe first. Unknown values rank -1.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	}
	return -1
}

// Fault is a single reported maintenance issue
type Fault struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	Location    string     `json:"location"`
	ReportedBy  string     `json:"reportedBy"`
	AssignedTo  string     `json:"assignedTo,omitempty"`
	Photos      []string   `json:"photos,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Assigned reports whether a technician is assigned.
func (f Fault) Assigned() bool {
	return trimmed(f.AssignedTo) != ""
}

// Clone returns a deep copy that shares no memory with f.
func (f Fault) Clone() Fault {
	out := f
	if f.Photos != nil {
		out.Photos = append([]string(nil), f.Photos...)
	}
	if f.CompletedAt != nil {
		completed := *f.CompletedAt
		out.CompletedAt = &completed
	}
	return out
}

// ChangeKind names the mutation that produced a snapshot.
type ChangeKind string

const (
	ChangeLoaded   ChangeKind = "loaded"
	ChangeCreated  ChangeKind = "created"
	ChangeStatus   ChangeKind = "status_changed"
	ChangeAssigned ChangeKind = "assigned"
	ChangeRemoved  ChangeKind = "removed"
)

// Change describes the mutation behind a snapshot.
type Change struct {
	Kind       ChangeKind `json:"kind"`
	FaultID    int64      `json:"faultId,omitempty"`
	Actor      string     `json:"actor,omitempty"`
	FromStatus Status     `json:"fromStatus,omitempty"`
	ToStatus   Status     `json:"toStatus,omitempty"`
	At         time.Time  `json:"at"`
}

// Snapshot is a point-in-time copy of the whole collection.
// Records are ordered by ID; display order comes from the query engine.
type Snapshot struct {
	Version uint64  `json:"version"`
	Records []Fault `json:"records"`
	Change  Change  `json:"change"`
}

// Find returns the record with the given id from the snapshot.
func (s Snapshot) Find(id int64) (Fault, bool) {
	for _, f := range s.Records {
		if f.ID == id {
			return f, true
		}
	}
	return Fault{}, false
}

// Observer receives a fresh snapshot after every mutation.
type Observer func(Snapshot)
