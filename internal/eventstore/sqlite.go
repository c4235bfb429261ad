package eventstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/ledgertrace/ledgertrace/internal/model"
)

// SQLiteStore persists the event log to a SQLite database in WAL mode. A
// single connection is used throughout: SQLite gains nothing from a pool,
// and the design requires exactly one serializing writer anyway.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

const schema = `
CREATE TABLE IF NOT EXISTS events (
	event_id    TEXT PRIMARY KEY,
	timestamp   TEXT NOT NULL,
	event_kind  TEXT NOT NULL,
	entity_kind TEXT NOT NULL,
	entity_id   TEXT NOT NULL,
	payload_json TEXT NOT NULL,
	actor       TEXT NOT NULL,
	seq         INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_events_entity ON events(entity_kind, entity_id);
CREATE INDEX IF NOT EXISTS idx_events_seq ON events(seq);
`

// NewSQLiteStore opens (creating if necessary) a SQLite-backed event store
// at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating event store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening event store: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging event store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("creating event store schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Append writes events in the order given inside a single transaction,
// assigning each a monotonic sequence number so ties on identical
// timestamps still resolve to append order.
func (s *SQLiteStore) Append(ctx context.Context, events ...model.Event) error {
	if len(events) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning event append transaction: %w", err)
	}
	defer tx.Rollback()

	var next int64
	if err := tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(seq), 0) + 1 FROM events").Scan(&next); err != nil {
		return fmt.Errorf("reading next sequence: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO events
		(event_id, timestamp, event_kind, entity_kind, entity_id, payload_json, actor, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing event insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range events {
		if _, err := stmt.ExecContext(ctx, e.ID, e.Timestamp.UTC().Format(time.RFC3339Nano),
			string(e.Kind), string(e.EntityKind), e.EntityID, string(e.Payload), e.Actor, next+int64(i)); err != nil {
			return fmt.Errorf("appending event %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing event append: %w", err)
	}
	return nil
}

// Events returns every appended event in append (sequence) order.
func (s *SQLiteStore) Events(ctx context.Context) ([]model.Event, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT event_id, timestamp, event_kind, entity_kind, entity_id, payload_json, actor
		FROM events ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	var out []model.Event
	for rows.Next() {
		var e model.Event
		var ts, kind, entityKind, payload string
		if err := rows.Scan(&e.ID, &ts, &kind, &entityKind, &e.EntityID, &payload, &e.Actor); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parsing event timestamp %q: %w", ts, err)
		}
		e.Timestamp = parsed
		e.Kind = model.EventKind(kind)
		e.EntityKind = model.EntityKind(entityKind)
		e.Payload = []byte(payload)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Len reports the number of events currently in the store.
func (s *SQLiteStore) Len(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM events").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting events: %w", err)
	}
	return count, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
