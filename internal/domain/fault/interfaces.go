package fault

import "context"

// Repository persists faults outside the process.
type Repository interface {
	LoadAll(ctx context.Context) ([]Fault, error)
	// LastID is the highest id ever persisted, deleted faults included.
	LastID(ctx context.Context) (int64, error)
	Save(ctx context.Context, rec *Fault) error
	Delete(ctx context.Context, id int64) error
}
