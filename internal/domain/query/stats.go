package query

import (
	"time"

	"github.com/rpggio/faultdesk/internal/domain/fault"
)

// Stats holds the dashboard counters for a snapshot.
type Stats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
	Critical   int `json:"critical"`
	Today      int `json:"today"`
	Assigned   int `json:"assigned"`
	Active     int `json:"active"`
}

// Summarize counts records. Today covers records created on now's calendar
// day in now's location; critical and active only count unfinished work.
func Summarize(records []fault.Fault, now time.Time) Stats {
	var s Stats
	y, m, d := now.Date()
	for _, rec := range records {
		s.Total++
		switch rec.Status {
		case fault.StatusPending:
			s.Pending++
		case fault.StatusInProgress:
			s.InProgress++
		case fault.StatusCompleted:
			s.Completed++
		}
		if rec.Status != fault.StatusCompleted {
			s.Active++
			if rec.Priority == fault.PriorityCritical {
				s.Critical++
			}
		}
		if cy, cm, cd := rec.CreatedAt.In(now.Location()).Date(); cy == y && cm == m && cd == d {
			s.Today++
		}
		if rec.Assigned() {
			s.Assigned++
		}
	}
	return s
}
