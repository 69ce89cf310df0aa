package activity

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/faultdesk/internal/domain/fault"
)

// Service handles fault history operations.
type Service struct {
	repo   Repository
	faults FaultLookup
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new activity service.
func NewService(repo Repository, faults FaultLookup, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, faults: faults, logger: logger, now: time.Now}
}

// LogActivity logs an entry, filling in the id and timestamp if missing.
func (s *Service) LogActivity(ctx context.Context, entry *Entry) error {
	if entry == nil || entry.Type == "" {
		return ErrInvalidInput
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now()
	}
	if err := s.repo.Log(ctx, entry); err != nil {
		return fmt.Errorf("logging activity: %w", err)
	}
	return nil
}

// History lists the timeline of one fault, newest first.
func (s *Service) History(ctx context.Context, faultID int64, opts ListOptions) ([]Entry, error) {
	opts.FaultID = &faultID
	return s.repo.List(ctx, opts)
}

// GetRecentActivity lists entries across all faults.
func (s *Service) GetRecentActivity(ctx context.Context, opts ListOptions) ([]Entry, error) {
	return s.repo.List(ctx, opts)
}

// AddNote appends a free-text note to an existing fault's history.
func (s *Service) AddNote(ctx context.Context, faultID int64, actor, note string) (*Entry, error) {
	actor = strings.TrimSpace(actor)
	note = strings.TrimSpace(note)
	if actor == "" || note == "" {
		return nil, ErrInvalidInput
	}
	if _, ok := s.faults.GetByID(faultID); !ok {
		return nil, fmt.Errorf("%w: %d", fault.ErrFaultNotFound, faultID)
	}

	entry := &Entry{
		FaultID: faultID,
		Type:    TypeNoteAdded,
		Actor:   actor,
		Summary: note,
	}
	if err := s.LogActivity(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Observe records the change carried by a store snapshot. Bulk loads are
// not part of any fault's history.
func (s *Service) Observe(snap fault.Snapshot) {
	entry, ok := entryFor(snap)
	if !ok {
		return
	}
	if err := s.LogActivity(context.Background(), entry); err != nil {
		s.logger.Error("failed to record fault history",
			"kind", snap.Change.Kind,
			"fault_id", snap.Change.FaultID,
			"error", err,
		)
	}
}

func entryFor(snap fault.Snapshot) (*Entry, bool) {
	change := snap.Change
	entry := &Entry{
		FaultID:   change.FaultID,
		Actor:     change.Actor,
		CreatedAt: change.At,
	}

	switch change.Kind {
	case fault.ChangeCreated:
		entry.Type = TypeFaultCreated
		entry.Summary = "fault reported"
		if rec, ok := snap.Find(change.FaultID); ok {
			entry.Summary = fmt.Sprintf("fault reported: %s", rec.Title)
		}
	case fault.ChangeStatus:
		entry.Type = TypeStatusChanged
		if change.FromStatus == change.ToStatus {
			entry.Summary = fmt.Sprintf("status confirmed as %s", change.ToStatus)
		} else {
			entry.Summary = fmt.Sprintf("status changed from %s to %s", change.FromStatus, change.ToStatus)
		}
	case fault.ChangeAssigned:
		entry.Type = TypeFaultAssigned
		if change.Actor == "" {
			entry.Summary = "assignment cleared"
		} else {
			entry.Summary = fmt.Sprintf("assigned to %s", change.Actor)
		}
	case fault.ChangeRemoved:
		entry.Type = TypeFaultDeleted
		entry.Summary = "fault deleted"
	default:
		return nil, false
	}
	return entry, true
}
