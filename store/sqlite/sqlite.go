/*
Package sqlite provides the SQLite-backed persistence collaborator for the
leave store.

PURPOSE:
  Implements leave.Persistence: Load restores the ordered request
  collection at startup, Save writes the full newest-first snapshot after
  every mutation. The store remains the authority; this package only
  provides best-effort durability.

SNAPSHOT WRITES:
  Save replaces the whole table inside one transaction. The collection is
  small (a front end's worth of requests) and the ordering contract is
  positional, so a full rewrite is simpler and safer than diffing.

SCHEMA:
  leave_requests: one row per request, with a position column recording
  the newest-first order. Duration is stored as a decimal string to keep
  the Personal half-day exact.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) so readers don't block
  the single writer and crash recovery is cleaner.

USAGE:
  p, err := sqlite.New("./data/leave.db")
  if err != nil { ... }
  defer p.Close()

  store := leave.NewStore(p)
  if err := store.Load(ctx); err != nil { ... }

SEE ALSO:
  - leave/store.go: Persistence interface definition
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/edhr/leave-engine/leave"
)

// Persistence implements leave.Persistence on SQLite.
type Persistence struct {
	db *sql.DB
}

// New opens (or creates) the database at the given path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Persistence, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	p := &Persistence{db: db}
	if err := p.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return p, nil
}

// Close closes the database connection.
func (p *Persistence) Close() error {
	return p.db.Close()
}

func (p *Persistence) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS leave_requests (
		id                   TEXT PRIMARY KEY,
		position             INTEGER NOT NULL,
		requester_id         TEXT NOT NULL,
		requester_name       TEXT NOT NULL,
		requester_department TEXT NOT NULL,
		leave_type           TEXT NOT NULL,
		start_date           TEXT NOT NULL,
		end_date             TEXT NOT NULL,
		duration             TEXT NOT NULL,
		reason               TEXT NOT NULL,
		attachment           TEXT,
		status               TEXT NOT NULL,
		created_at           TEXT NOT NULL,
		updated_at           TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_leave_requests_position ON leave_requests(position);
	CREATE INDEX IF NOT EXISTS idx_leave_requests_requester ON leave_requests(requester_id);
	`
	_, err := p.db.Exec(schema)
	return err
}

// =============================================================================
// PERSISTENCE INTERFACE
// =============================================================================

// Load returns the persisted collection in its saved newest-first order.
func (p *Persistence) Load(ctx context.Context) ([]leave.Request, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, requester_id, requester_name, requester_department,
		       leave_type, start_date, end_date, duration, reason,
		       attachment, status, created_at, updated_at
		FROM leave_requests
		ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to load requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// Save replaces the persisted snapshot with the given newest-first
// collection, atomically.
func (p *Persistence) Save(ctx context.Context, requests []leave.Request) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM leave_requests`); err != nil {
		return fmt.Errorf("failed to clear requests: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO leave_requests (
			id, position, requester_id, requester_name, requester_department,
			leave_type, start_date, end_date, duration, reason,
			attachment, status, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, req := range requests {
		var attachment sql.NullString
		if req.Attachment != nil {
			attachment = sql.NullString{String: *req.Attachment, Valid: true}
		}
		_, err := stmt.ExecContext(ctx,
			string(req.ID), i,
			req.RequesterID, req.RequesterName, req.RequesterDepartment,
			string(req.Type),
			req.StartDate.String(), req.EndDate.String(),
			req.Duration.String(), req.Reason,
			attachment, string(req.Status),
			req.CreatedAt.UTC().Format(time.RFC3339Nano),
			req.UpdatedAt.UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("failed to insert request %s: %w", req.ID, err)
		}
	}

	return tx.Commit()
}

// =============================================================================
// ROW SCANNING
// =============================================================================

func scanRequest(rows *sql.Rows) (leave.Request, error) {
	var (
		req                  leave.Request
		id, leaveType        string
		startDate, endDate   string
		duration             string
		attachment           sql.NullString
		status               string
		createdAt, updatedAt string
	)
	err := rows.Scan(&id, &req.RequesterID, &req.RequesterName, &req.RequesterDepartment,
		&leaveType, &startDate, &endDate, &duration, &req.Reason,
		&attachment, &status, &createdAt, &updatedAt)
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to scan request: %w", err)
	}

	req.ID = leave.RequestID(id)
	req.Type = leave.Type(leaveType)
	req.Status = leave.Status(status)

	if req.StartDate, err = leave.ParseDate(startDate); err != nil {
		return leave.Request{}, err
	}
	if req.EndDate, err = leave.ParseDate(endDate); err != nil {
		return leave.Request{}, err
	}
	if req.Duration, err = decimal.NewFromString(duration); err != nil {
		return leave.Request{}, fmt.Errorf("invalid duration %q for request %s: %w", duration, id, err)
	}
	if attachment.Valid {
		req.Attachment = &attachment.String
	}
	if req.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return leave.Request{}, fmt.Errorf("invalid created_at for request %s: %w", id, err)
	}
	if req.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return leave.Request{}, fmt.Errorf("invalid updated_at for request %s: %w", id, err)
	}
	return req, nil
}
