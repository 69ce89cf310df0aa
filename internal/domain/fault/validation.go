package fault

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	MinTitleLen       = 3
	MaxTitleLen       = 100
	MinDescriptionLen = 10
	MaxDescriptionLen = 1000
)

// ValidateCreateInput validates fields required to create a fault.
func ValidateCreateInput(req CreateRequest) error {
	if err := validateLength("title", req.Title, MinTitleLen, MaxTitleLen); err != nil {
		return err
	}
	if err := validateLength("description", req.Description, MinDescriptionLen, MaxDescriptionLen); err != nil {
		return err
	}
	if trimmed(req.Location) == "" {
		return &ValidationError{Field: "location", Reason: "is required"}
	}
	if trimmed(req.ReportedBy) == "" {
		return &ValidationError{Field: "reportedBy", Reason: "is required"}
	}
	if !req.Priority.Valid() {
		return &ValidationError{Field: "priority", Reason: fmt.Sprintf("has unknown value %q", req.Priority)}
	}
	if req.Status != "" && !req.Status.Valid() {
		return &ValidationError{Field: "status", Reason: fmt.Sprintf("has unknown value %q", req.Status)}
	}
	for i, photo := range req.Photos {
		if trimmed(photo) == "" {
			return &ValidationError{Field: fmt.Sprintf("photos[%d]", i), Reason: "is empty"}
		}
	}
	return nil
}

// ValidateTransition validates a requested status change.
// Every move between the three lifecycle states is allowed, including
// re-opening a completed fault; cancelled and unknown values are rejected.
func ValidateTransition(from, to Status) error {
	valid := false
	switch from {
	case StatusPending:
		switch to {
		case StatusPending, StatusInProgress, StatusCompleted:
			valid = true
		}
	case StatusInProgress:
		switch to {
		case StatusPending, StatusInProgress, StatusCompleted:
			valid = true
		}
	case StatusCompleted:
		switch to {
		case StatusPending, StatusInProgress, StatusCompleted:
			valid = true
		}
	}

	if !valid {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

func validateLength(field, value string, min, max int) error {
	n := utf8.RuneCountInString(trimmed(value))
	if n == 0 {
		return &ValidationError{Field: field, Reason: "is required"}
	}
	if n < min || n > max {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("must be %d-%d characters, got %d", min, max, n)}
	}
	return nil
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
