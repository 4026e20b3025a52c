// Package postgres persists time logs in PostgreSQL via database/sql.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"worklog/internal/timelog/models"
	"worklog/pkg/platform/sentinel"
	txcontext "worklog/pkg/platform/tx"
	"worklog/pkg/requestcontext"
)

// Store is the PostgreSQL-backed time log store. Every mutation is a single
// statement, so each operation is atomic at the store's isolation level;
// concurrent updates to the same record resolve last-write-wins.
type Store struct {
	db *sql.DB
}

// New constructs a PostgreSQL-backed store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const schema = `
CREATE TABLE IF NOT EXISTS time_logs (
	id          UUID PRIMARY KEY,
	owner_id    TEXT NOT NULL,
	service_id  TEXT,
	project_id  TEXT,
	hours       DOUBLE PRECISION NOT NULL CHECK (hours >= 0),
	work_date   DATE NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	work_type   TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS time_logs_owner_idx ON time_logs (owner_id, work_date DESC);
CREATE INDEX IF NOT EXISTS time_logs_service_idx ON time_logs (service_id) WHERE service_id IS NOT NULL;
CREATE INDEX IF NOT EXISTS time_logs_project_idx ON time_logs (project_id) WHERE project_id IS NOT NULL;
`

// EnsureSchema creates the time_logs table and indexes if absent.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure time_logs schema: %w", err)
	}
	return nil
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

const columns = `id, owner_id, service_id, project_id, hours, work_date, description, work_type, created_at, updated_at`

// Insert assigns an ID and timestamps, persists the record, and returns the
// stored copy.
func (s *Store) Insert(ctx context.Context, log *models.TimeLog) (*models.TimeLog, error) {
	stored := log.Clone()
	stored.ID = uuid.NewString()
	now := requestcontext.Now(ctx)
	stored.CreatedAt = now
	stored.UpdatedAt = now

	query := `
		INSERT INTO time_logs (` + columns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		stored.ID,
		stored.OwnerID,
		stored.ServiceID,
		stored.ProjectID,
		stored.Hours,
		stored.WorkDate,
		stored.Description,
		stored.WorkType,
		stored.CreatedAt,
		stored.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert time log: %w", err)
	}
	return stored, nil
}

// GetByID returns the record or sentinel.ErrNotFound.
func (s *Store) GetByID(ctx context.Context, id string) (*models.TimeLog, error) {
	row := s.execer(ctx).QueryRowContext(ctx,
		`SELECT `+columns+` FROM time_logs WHERE id = $1`, id)
	log, err := scanOne(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get time log: %w", err)
	}
	return log, nil
}

// ListByOwner returns the owner's records ordered by work date, newest first.
func (s *Store) ListByOwner(ctx context.Context, ownerID string) ([]*models.TimeLog, error) {
	rows, err := s.execer(ctx).QueryContext(ctx,
		`SELECT `+columns+` FROM time_logs WHERE owner_id = $1 ORDER BY work_date DESC, created_at DESC`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("list time logs by owner: %w", err)
	}
	return scanAll(rows)
}

// ListAll returns every record ordered by work date, newest first.
func (s *Store) ListAll(ctx context.Context) ([]*models.TimeLog, error) {
	rows, err := s.execer(ctx).QueryContext(ctx,
		`SELECT `+columns+` FROM time_logs ORDER BY work_date DESC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list time logs: %w", err)
	}
	return scanAll(rows)
}

// ListByOwnerAndDateRange returns the owner's records with
// start <= work_date <= end, both bounds inclusive.
func (s *Store) ListByOwnerAndDateRange(ctx context.Context, ownerID string, start, end models.Date) ([]*models.TimeLog, error) {
	rows, err := s.execer(ctx).QueryContext(ctx,
		`SELECT `+columns+` FROM time_logs
		 WHERE owner_id = $1 AND work_date BETWEEN $2 AND $3
		 ORDER BY work_date DESC, created_at DESC`,
		ownerID, start, end)
	if err != nil {
		return nil, fmt.Errorf("list time logs by date range: %w", err)
	}
	return scanAll(rows)
}

// ListByWorkItem returns records attributed to the work item through either
// the service or the project association.
func (s *Store) ListByWorkItem(ctx context.Context, workItemID string) ([]*models.TimeLog, error) {
	rows, err := s.execer(ctx).QueryContext(ctx,
		`SELECT `+columns+` FROM time_logs
		 WHERE service_id = $1 OR project_id = $1
		 ORDER BY work_date DESC, created_at DESC`,
		workItemID)
	if err != nil {
		return nil, fmt.Errorf("list time logs by work item: %w", err)
	}
	return scanAll(rows)
}

// Update overwrites the record's mutable fields and refreshes updated_at.
// The owner and created_at columns are deliberately absent from the SET list.
func (s *Store) Update(ctx context.Context, log *models.TimeLog) (*models.TimeLog, error) {
	row := s.execer(ctx).QueryRowContext(ctx,
		`UPDATE time_logs
		 SET service_id = $2, project_id = $3, hours = $4, work_date = $5,
		     description = $6, work_type = $7, updated_at = $8
		 WHERE id = $1
		 RETURNING `+columns,
		log.ID,
		log.ServiceID,
		log.ProjectID,
		log.Hours,
		log.WorkDate,
		log.Description,
		log.WorkType,
		requestcontext.Now(ctx),
	)
	updated, err := scanOne(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("update time log: %w", err)
	}
	return updated, nil
}

// Delete removes the record or returns sentinel.ErrNotFound.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.execer(ctx).ExecContext(ctx, `DELETE FROM time_logs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete time log: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete time log: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// ExistsByID reports whether a record with the ID is stored.
func (s *Store) ExistsByID(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.execer(ctx).QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM time_logs WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check time log exists: %w", err)
	}
	return exists, nil
}

// TotalHoursByOwner sums the owner's hours. SUM over no rows is NULL, which
// surfaces here as nil so callers can distinguish "no data" from "0 hours".
func (s *Store) TotalHoursByOwner(ctx context.Context, ownerID string) (*float64, error) {
	var total sql.NullFloat64
	err := s.execer(ctx).QueryRowContext(ctx,
		`SELECT SUM(hours) FROM time_logs WHERE owner_id = $1`, ownerID).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("sum hours by owner: %w", err)
	}
	if !total.Valid {
		return nil, nil
	}
	return &total.Float64, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOne(row rowScanner) (*models.TimeLog, error) {
	var log models.TimeLog
	err := row.Scan(
		&log.ID,
		&log.OwnerID,
		&log.ServiceID,
		&log.ProjectID,
		&log.Hours,
		&log.WorkDate,
		&log.Description,
		&log.WorkType,
		&log.CreatedAt,
		&log.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func scanAll(rows *sql.Rows) ([]*models.TimeLog, error) {
	defer rows.Close()

	logs := make([]*models.TimeLog, 0)
	for rows.Next() {
		log, err := scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("scan time log row: %w", err)
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate time log rows: %w", err)
	}
	return logs, nil
}
