package sqlite

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/rpggio/faultdesk/internal/domain/activity"
	"github.com/rpggio/faultdesk/internal/repository"
)

// ActivityRepository implements activity.Repository for SQLite
type ActivityRepository struct {
	db *DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Log inserts a new activity entry
func (r *ActivityRepository) Log(ctx context.Context, entry *activity.Entry) error {
	if entry == nil || entry.ID == "" {
		return repository.ErrInvalidInput
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	query, args, err := sq.Insert("activity_log").
		Columns("id", "fault_id", "activity_type", "actor", "summary", "created_at").
		Values(entry.ID, entry.FaultID, string(entry.Type), entry.Actor, entry.Summary, entry.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build activity insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("activity %s already logged: %w", entry.ID, repository.ErrInvalidInput)
		}
		return fmt.Errorf("failed to log activity: %w", err)
	}
	return nil
}

// List returns activity entries matching the given filters, newest first
func (r *ActivityRepository) List(ctx context.Context, opts activity.ListOptions) ([]activity.Entry, error) {
	builder := sq.Select("id", "fault_id", "activity_type", "actor", "summary", "created_at").
		From("activity_log").
		OrderBy("created_at DESC", "rowid DESC")

	if opts.FaultID != nil {
		builder = builder.Where(sq.Eq{"fault_id": *opts.FaultID})
	}
	if opts.Type != nil {
		builder = builder.Where(sq.Eq{"activity_type": string(*opts.Type)})
	}
	if opts.Limit > 0 {
		builder = builder.Limit(uint64(opts.Limit))
	}
	if opts.Offset > 0 {
		if opts.Limit <= 0 {
			// SQLite requires LIMIT before OFFSET.
			builder = builder.Limit(1<<63 - 1)
		}
		builder = builder.Offset(uint64(opts.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build activity query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	var entries []activity.Entry
	for rows.Next() {
		var entry activity.Entry
		var entryType string
		if err := rows.Scan(
			&entry.ID,
			&entry.FaultID,
			&entryType,
			&entry.Actor,
			&entry.Summary,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan activity entry: %w", err)
		}
		entry.Type = activity.Type(entryType)
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity rows: %w", err)
	}

	return entries, nil
}
