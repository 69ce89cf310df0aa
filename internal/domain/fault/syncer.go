package fault

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/rpggio/faultdesk/internal/repository"
)

// Syncer mirrors store changes into a Repository. It is registered as an
// observer; repository failures are logged and never reach the store. The
// outcome of the latest change is kept for callers that need it, see Err.
type Syncer struct {
	repo   Repository
	logger *slog.Logger

	mu  sync.Mutex
	err error
}

// NewSyncer creates a syncer writing to repo.
func NewSyncer(repo Repository, logger *slog.Logger) *Syncer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Syncer{repo: repo, logger: logger}
}

// Restore bulk-loads every persisted fault into store.
func (s *Syncer) Restore(ctx context.Context, store *Store) (int, error) {
	records, err := s.repo.LoadAll(ctx)
	if err != nil {
		return 0, err
	}
	lastID, err := s.repo.LastID(ctx)
	if err != nil {
		return 0, err
	}
	if err := store.Load(records, lastID); err != nil {
		return 0, err
	}
	return len(records), nil
}

// Observe applies the snapshot's change to the repository.
func (s *Syncer) Observe(snap Snapshot) {
	err := s.apply(context.Background(), snap)

	s.mu.Lock()
	s.err = err
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("failed to persist fault change",
			"kind", snap.Change.Kind,
			"fault_id", snap.Change.FaultID,
			"version", snap.Version,
			"error", err,
		)
	}
}

// Err returns the error from persisting the most recent change, or nil if it
// was stored. Each observed change resets it.
func (s *Syncer) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Syncer) apply(ctx context.Context, snap Snapshot) error {
	switch snap.Change.Kind {
	case ChangeCreated, ChangeStatus, ChangeAssigned:
		rec, ok := snap.Find(snap.Change.FaultID)
		if !ok {
			return ErrFaultNotFound
		}
		return s.repo.Save(ctx, &rec)
	case ChangeRemoved:
		err := s.repo.Delete(ctx, snap.Change.FaultID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	return nil
}
