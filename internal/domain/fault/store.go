package fault

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"
)

// Store owns the authoritative fault collection and broadcasts a snapshot to
// every subscribed observer after each mutation.
//
// Mutations are serialized. Observers run synchronously, in mutation order,
// before the mutating call returns. An observer may read the store but must
// not mutate it from inside its callback.
type Store struct {
	// writeMu serializes mutations including their notification; mu guards
	// the fields below. Lock order is writeMu then mu.
	writeMu sync.Mutex
	mu      sync.Mutex

	faults     map[int64]Fault
	lastID     int64
	version    uint64
	lastChange Change

	observers []subscription
	nextSub   uint64

	now    func() time.Time
	logger *slog.Logger
}

type subscription struct {
	id uint64
	fn Observer
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the store logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		faults: make(map[int64]Fault),
		now:    time.Now,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateRequest describes a fault creation request.
type CreateRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      Status   `json:"status,omitempty"`
	Priority    Priority `json:"priority"`
	Location    string   `json:"location"`
	ReportedBy  string   `json:"reportedBy"`
	AssignedTo  string   `json:"assignedTo,omitempty"`
	Photos      []string `json:"photos,omitempty"`
}

// Create validates req and adds a new fault with a fresh id.
func (s *Store) Create(req CreateRequest) (Fault, error) {
	if err := ValidateCreateInput(req); err != nil {
		return Fault{}, err
	}

	status := req.Status
	if status == "" {
		status = StatusPending
	}

	var out Fault
	err := s.mutate(func() (Change, error) {
		now := s.now()
		s.lastID++
		rec := Fault{
			ID:          s.lastID,
			Title:       trimmed(req.Title),
			Description: trimmed(req.Description),
			Status:      status,
			Priority:    req.Priority,
			Location:    trimmed(req.Location),
			ReportedBy:  trimmed(req.ReportedBy),
			AssignedTo:  trimmed(req.AssignedTo),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if len(req.Photos) > 0 {
			rec.Photos = append([]string(nil), req.Photos...)
		}
		if status == StatusCompleted {
			completed := now
			rec.CompletedAt = &completed
		}
		s.faults[rec.ID] = rec
		out = rec.Clone()
		return Change{Kind: ChangeCreated, FaultID: rec.ID, Actor: rec.ReportedBy, ToStatus: status, At: now}, nil
	})
	if err != nil {
		return Fault{}, err
	}
	return out, nil
}

// GetByID returns the fault with the given id. The boolean is false when absent.
func (s *Store) GetByID(id int64) (Fault, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.faults[id]
	if !ok {
		return Fault{}, false
	}
	return rec.Clone(), true
}

// ChangeStatus moves a fault to a new lifecycle state.
// A non-empty actor becomes the assignee when the fault is unassigned or
// when work starts on it.
func (s *Store) ChangeStatus(id int64, to Status, actor string) (Fault, error) {
	if !to.Valid() {
		return Fault{}, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, to)
	}
	actor = trimmed(actor)

	var out Fault
	err := s.mutate(func() (Change, error) {
		current, ok := s.faults[id]
		if !ok {
			return Change{}, fmt.Errorf("%w: %d", ErrFaultNotFound, id)
		}
		if err := ValidateTransition(current.Status, to); err != nil {
			return Change{}, err
		}

		now := s.stamp(current)
		updated := current.Clone()
		updated.Status = to
		updated.UpdatedAt = now
		switch {
		case to != StatusCompleted:
			updated.CompletedAt = nil
		case current.Status != StatusCompleted || updated.CompletedAt == nil:
			completed := now
			updated.CompletedAt = &completed
		}
		if actor != "" && (!updated.Assigned() || to == StatusInProgress) {
			updated.AssignedTo = actor
		}

		s.faults[id] = updated
		out = updated.Clone()
		return Change{Kind: ChangeStatus, FaultID: id, Actor: actor, FromStatus: current.Status, ToStatus: to, At: now}, nil
	})
	if err != nil {
		return Fault{}, err
	}
	return out, nil
}

// Assign sets the assignee without touching the status. An empty actor
// clears the assignment.
func (s *Store) Assign(id int64, actor string) (Fault, error) {
	var out Fault
	err := s.mutate(func() (Change, error) {
		current, ok := s.faults[id]
		if !ok {
			return Change{}, fmt.Errorf("%w: %d", ErrFaultNotFound, id)
		}

		now := s.stamp(current)
		updated := current.Clone()
		updated.AssignedTo = trimmed(actor)
		updated.UpdatedAt = now

		s.faults[id] = updated
		out = updated.Clone()
		return Change{Kind: ChangeAssigned, FaultID: id, Actor: updated.AssignedTo, At: now}, nil
	})
	if err != nil {
		return Fault{}, err
	}
	return out, nil
}

// Remove permanently deletes a fault. Its id is never handed out again.
func (s *Store) Remove(id int64) error {
	return s.mutate(func() (Change, error) {
		if _, ok := s.faults[id]; !ok {
			return Change{}, fmt.Errorf("%w: %d", ErrFaultNotFound, id)
		}
		delete(s.faults, id)
		return Change{Kind: ChangeRemoved, FaultID: id, At: s.now()}, nil
	})
}

// Load bulk-inserts previously persisted faults and raises the id counter to
// at least lastID, so ids of faults deleted before a restart stay retired.
// The whole batch is rejected if any record is invalid or reuses an id
// already held.
func (s *Store) Load(records []Fault, lastID int64) error {
	if len(records) == 0 {
		s.writeMu.Lock()
		defer s.writeMu.Unlock()
		s.mu.Lock()
		defer s.mu.Unlock()
		s.lastID = max(s.lastID, lastID)
		return nil
	}

	return s.mutate(func() (Change, error) {
		now := s.now()
		batch := make(map[int64]Fault, len(records))
		maxID := max(s.lastID, lastID)
		for _, rec := range records {
			if rec.ID <= 0 {
				return Change{}, &ValidationError{Field: "id", Reason: fmt.Sprintf("must be positive, got %d", rec.ID)}
			}
			if _, held := s.faults[rec.ID]; held {
				return Change{}, fmt.Errorf("%w: %d", ErrDuplicateID, rec.ID)
			}
			if _, dup := batch[rec.ID]; dup {
				return Change{}, fmt.Errorf("%w: %d", ErrDuplicateID, rec.ID)
			}
			if !rec.Status.Valid() {
				return Change{}, fmt.Errorf("fault %d: %w", rec.ID, &ValidationError{Field: "status", Reason: fmt.Sprintf("has unknown value %q", rec.Status)})
			}
			if err := ValidateCreateInput(requestOf(rec)); err != nil {
				return Change{}, fmt.Errorf("fault %d: %w", rec.ID, err)
			}
			batch[rec.ID] = normalize(rec.Clone(), now)
			maxID = max(maxID, rec.ID)
		}

		for id, rec := range batch {
			s.faults[id] = rec
		}
		s.lastID = maxID
		return Change{Kind: ChangeLoaded, At: now}, nil
	})
}

// Subscribe registers an observer and returns a function that removes it.
func (s *Store) Subscribe(observer Observer) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSub++
	id := s.nextSub
	s.observers = append(s.observers, subscription{id: id, fn: observer})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.observers = slices.DeleteFunc(s.observers, func(sub subscription) bool {
				return sub.id == id
			})
		})
	}
}

// Snapshot returns a copy of the current collection.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// mutate applies fn under both locks. On success it bumps the version and
// notifies every observer subscribed at that moment, still holding writeMu so
// notifications cannot interleave across mutations.
func (s *Store) mutate(fn func() (Change, error)) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	change, err := fn()
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.version++
	s.lastChange = change
	snap := s.snapshotLocked()
	observers := slices.Clone(s.observers)
	s.mu.Unlock()

	s.logger.Debug("fault store changed",
		"kind", change.Kind,
		"fault_id", change.FaultID,
		"version", snap.Version,
		"records", len(snap.Records),
		"observers", len(observers),
	)

	// Each observer gets its own copy; the last one takes snap itself.
	for i, sub := range observers {
		view := snap
		if i < len(observers)-1 {
			view = cloneSnapshot(snap)
		}
		sub.fn(view)
	}
	return nil
}

func (s *Store) snapshotLocked() Snapshot {
	records := make([]Fault, 0, len(s.faults))
	for _, rec := range s.faults {
		records = append(records, rec.Clone())
	}
	slices.SortFunc(records, func(a, b Fault) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return Snapshot{Version: s.version, Records: records, Change: s.lastChange}
}

// stamp returns the mutation time, never earlier than the record's creation.
func (s *Store) stamp(rec Fault) time.Time {
	now := s.now()
	if now.Before(rec.CreatedAt) {
		return rec.CreatedAt
	}
	return now
}

func cloneSnapshot(snap Snapshot) Snapshot {
	out := snap
	out.Records = make([]Fault, len(snap.Records))
	for i, rec := range snap.Records {
		out.Records[i] = rec.Clone()
	}
	return out
}

func normalize(rec Fault, now time.Time) Fault {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	if rec.UpdatedAt.Before(rec.CreatedAt) {
		rec.UpdatedAt = rec.CreatedAt
	}
	switch {
	case rec.Status != StatusCompleted:
		rec.CompletedAt = nil
	case rec.CompletedAt == nil:
		completed := rec.UpdatedAt
		rec.CompletedAt = &completed
	}
	rec.AssignedTo = trimmed(rec.AssignedTo)
	return rec
}

func requestOf(rec Fault) CreateRequest {
	return CreateRequest{
		Title:       rec.Title,
		Description: rec.Description,
		Status:      rec.Status,
		Priority:    rec.Priority,
		Location:    rec.Location,
		ReportedBy:  rec.ReportedBy,
		AssignedTo:  rec.AssignedTo,
		Photos:      rec.Photos,
	}
}
