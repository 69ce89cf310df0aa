package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/rpggio/faultdesk/internal/domain/fault"
	"github.com/rpggio/faultdesk/internal/repository"
)

var faultColumns = []string{
	"id", "title", "description", "status", "priority", "location",
	"reported_by", "assigned_to", "photos", "created_at", "updated_at", "completed_at",
}

const faultUpsertSuffix = `ON CONFLICT(id) DO UPDATE SET
	title = excluded.title,
	description = excluded.description,
	status = excluded.status,
	priority = excluded.priority,
	location = excluded.location,
	reported_by = excluded.reported_by,
	assigned_to = excluded.assigned_to,
	photos = excluded.photos,
	updated_at = excluded.updated_at,
	completed_at = excluded.completed_at`

// FaultRepository implements fault.Repository for SQLite
type FaultRepository struct {
	db *DB
}

// NewFaultRepository creates a new FaultRepository
func NewFaultRepository(db *DB) *FaultRepository {
	return &FaultRepository{db: db}
}

// LoadAll returns every persisted fault ordered by id
func (r *FaultRepository) LoadAll(ctx context.Context) ([]fault.Fault, error) {
	query, args, err := sq.Select(faultColumns...).From("faults").OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build fault query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load faults: %w", err)
	}
	defer rows.Close()

	var out []fault.Fault
	for rows.Next() {
		rec, err := scanFault(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fault rows: %w", err)
	}
	return out, nil
}

// LastID returns the highest id ever stored, including ids of deleted faults.
// It is zero for a database that never held a fault.
func (r *FaultRepository) LastID(ctx context.Context) (int64, error) {
	query, args, err := sq.Select("seq").From("sqlite_sequence").Where(sq.Eq{"name": "faults"}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build sequence query: %w", err)
	}

	var id int64
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read fault sequence: %w", err)
	}
	return id, nil
}

// Save inserts or replaces a fault. created_at is kept from the first write.
func (r *FaultRepository) Save(ctx context.Context, rec *fault.Fault) error {
	if rec == nil || rec.ID <= 0 {
		return repository.ErrInvalidInput
	}

	photos, err := json.Marshal(nonNil(rec.Photos))
	if err != nil {
		return fmt.Errorf("failed to encode photos: %w", err)
	}
	var completedAt sql.NullTime
	if rec.CompletedAt != nil {
		completedAt = sql.NullTime{Time: *rec.CompletedAt, Valid: true}
	}

	query, args, err := sq.Insert("faults").
		Columns(faultColumns...).
		Values(
			rec.ID, rec.Title, rec.Description, string(rec.Status), string(rec.Priority), rec.Location,
			rec.ReportedBy, rec.AssignedTo, string(photos), rec.CreatedAt, rec.UpdatedAt, completedAt,
		).
		Suffix(faultUpsertSuffix).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build fault upsert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("fault %d rejected by schema: %w", rec.ID, repository.ErrInvalidInput)
		}
		return fmt.Errorf("failed to save fault %d: %w", rec.ID, err)
	}
	return nil
}

// Delete removes a fault
func (r *FaultRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := sq.Delete("faults").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build fault delete: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete fault %d: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete fault %d: %w", id, err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFault(row rowScanner) (fault.Fault, error) {
	var (
		rec         fault.Fault
		status      string
		priority    string
		photos      string
		completedAt sql.NullTime
	)
	if err := row.Scan(
		&rec.ID,
		&rec.Title,
		&rec.Description,
		&status,
		&priority,
		&rec.Location,
		&rec.ReportedBy,
		&rec.AssignedTo,
		&photos,
		&rec.CreatedAt,
		&rec.UpdatedAt,
		&completedAt,
	); err != nil {
		return fault.Fault{}, fmt.Errorf("failed to scan fault: %w", err)
	}

	rec.Status = fault.Status(status)
	rec.Priority = fault.Priority(priority)
	if err := json.Unmarshal([]byte(photos), &rec.Photos); err != nil {
		return fault.Fault{}, fmt.Errorf("failed to decode photos of fault %d: %w", rec.ID, err)
	}
	if len(rec.Photos) == 0 {
		rec.Photos = nil
	}
	if completedAt.Valid {
		t := completedAt.Time
		rec.CompletedAt = &t
	}
	return rec, nil
}

func nonNil(photos []string) []string {
	if photos == nil {
		return []string{}
	}
	return photos
}
