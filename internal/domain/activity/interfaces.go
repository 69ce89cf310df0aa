package activity

import (
	"context"

	"github.com/rpggio/faultdesk/internal/domain/fault"
)

// Repository provides persistence operations for history entries.
type Repository interface {
	Log(ctx context.Context, entry *Entry) error
	List(ctx context.Context, opts ListOptions) ([]Entry, error)
}

// FaultLookup resolves faults referenced by notes.
type FaultLookup interface {
	GetByID(id int64) (fault.Fault, bool)
}
