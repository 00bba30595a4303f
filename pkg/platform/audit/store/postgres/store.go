package postgres

import (
	"context"
	"database/sql"
	"fmt"

	audit "deskwatch/pkg/platform/audit"
)

// Store implements audit.Store on PostgreSQL. Events are append-only; the
// monitor never updates or deletes them.
type Store struct {
	db *sql.DB
}

// New creates a PostgreSQL audit store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Schema is the table this store writes to. Applied by migrations in
// deployment; exported so integration tests can create it.
const Schema = `
CREATE TABLE IF NOT EXISTS monitor_audit (
	id         UUID PRIMARY KEY,
	occurred   TIMESTAMPTZ NOT NULL,
	action     TEXT NOT NULL,
	subject    TEXT NOT NULL DEFAULT '',
	recipient  TEXT NOT NULL DEFAULT '',
	channel    TEXT NOT NULL DEFAULT '',
	decision   TEXT NOT NULL DEFAULT '',
	reason     TEXT NOT NULL DEFAULT ''
)`

// Append writes one audit event.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	query := `
		INSERT INTO monitor_audit (id, occurred, action, subject, recipient, channel, decision, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		event.ID,
		event.Timestamp,
		string(event.Action),
		event.Subject,
		event.Recipient,
		event.Channel,
		event.Decision,
		event.Reason,
	)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

// CountByAction returns how many events exist for one action.
func (s *Store) CountByAction(ctx context.Context, action audit.Action) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM monitor_audit WHERE action = $1`, string(action),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count audit events: %w", err)
	}
	return count, nil
}
