// Package query derives filtered, sorted views and summary counts from fault
// store snapshots. It holds no state between calls.
package query

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rpggio/faultdesk/internal/domain/fault"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// All matches every value of a priority or status filter.
const All = "all"

// SortBy selects the ordering of a query result.
type SortBy string

const (
	SortByCreatedAt SortBy = "createdAt"
	SortByPriority  SortBy = "priority"
	SortByTitle     SortBy = "title"
)

// ErrInvalidSpec indicates a query specification with unknown values.
var ErrInvalidSpec = errors.New("invalid query spec")

// Spec describes which records to return and in what order.
type Spec struct {
	SearchText string `json:"searchText,omitempty"`
	Priority   string `json:"priority,omitempty"`
	Status     string `json:"status,omitempty"`
	SortBy     SortBy `json:"sortBy,omitempty"`
	Technician string `json:"technician,omitempty"`
}

// Validate reports whether every filter value is recognized.
func (s Spec) Validate() error {
	if s.Priority != "" && s.Priority != All && !fault.Priority(s.Priority).Valid() {
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidSpec, s.Priority)
	}
	if s.Status != "" && s.Status != All && !fault.Status(s.Status).Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidSpec, s.Status)
	}
	switch s.SortBy {
	case "", SortByCreatedAt, SortByPriority, SortByTitle:
	default:
		return fmt.Errorf("%w: unknown sort key %q", ErrInvalidSpec, s.SortBy)
	}
	return nil
}

func (s Spec) key() string {
	return strings.Join([]string{s.SearchText, s.Priority, s.Status, string(s.SortBy), s.Technician}, "\x00")
}

// Engine evaluates specs against record snapshots.
type Engine struct {
	lang     language.Tag
	location *time.Location
	now      func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithLanguage sets the collation language used for title sorting.
func WithLanguage(tag language.Tag) Option {
	return func(e *Engine) { e.lang = tag }
}

// WithLocation sets the time zone that defines "today".
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.location = loc
		}
	}
}

// WithClock overrides the time source used by Summarize.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates an engine. Titles collate in Turkish by default.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		lang:     language.Turkish,
		location: time.Local,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Query returns the records matching every filter of spec, ordered by its
// sort key. The result is a fresh slice; records are copies.
func (e *Engine) Query(records []fault.Fault, spec Spec) ([]fault.Fault, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	// Casers and collators carry internal buffers, so one per call.
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(spec.SearchText))
	technician := fold.String(strings.TrimSpace(spec.Technician))

	out := make([]fault.Fault, 0, len(records))
	for _, rec := range records {
		if spec.Priority != "" && spec.Priority != All && string(rec.Priority) != spec.Priority {
			continue
		}
		if spec.Status != "" && spec.Status != All && string(rec.Status) != spec.Status {
			continue
		}
		if technician != "" && !strings.Contains(fold.String(rec.AssignedTo), technician) {
			continue
		}
		if needle != "" && !matchesSearch(fold, rec, needle) {
			continue
		}
		out = append(out, rec.Clone())
	}

	switch spec.SortBy {
	case SortByPriority:
		slices.SortStableFunc(out, func(a, b fault.Fault) int {
			return a.Priority.Rank() - b.Priority.Rank()
		})
	case SortByTitle:
		col := collate.New(e.lang)
		slices.SortStableFunc(out, func(a, b fault.Fault) int {
			return col.CompareString(a.Title, b.Title)
		})
	default:
		slices.SortStableFunc(out, func(a, b fault.Fault) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	}
	return out, nil
}

// Summarize counts records as of the engine clock in its time zone.
func (e *Engine) Summarize(records []fault.Fault) Stats {
	return Summarize(records, e.now().In(e.location))
}

func matchesSearch(fold cases.Caser, rec fault.Fault, needle string) bool {
	for _, field := range []string{rec.Title, rec.Description, rec.Location, rec.ReportedBy} {
		if strings.Contains(fold.String(field), needle) {
			return true
		}
	}
	return false
}
