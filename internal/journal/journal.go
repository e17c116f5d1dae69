// Package journal persists reminder dispatch attempts to a local SQLite
// database. The journal is an audit trail, not a dedup source: the scheduler
// keeps idempotency in memory and writes here after the fact.
package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/studybuddy/remindd/common"
)

const schema = `
CREATE TABLE IF NOT EXISTS sent_reminders (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    event_id    TEXT NOT NULL,
    event_kind  TEXT NOT NULL,
    rule        TEXT NOT NULL,
    event_start INTEGER NOT NULL,
    sent_at     INTEGER NOT NULL,
    recipient   TEXT NOT NULL,
    subject     TEXT NOT NULL,
    ok          INTEGER NOT NULL,
    error       TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_sent_reminders_sent_at ON sent_reminders (sent_at DESC);
`

// DefaultHistoryLimit caps history listings when the caller passes no limit.
const DefaultHistoryLimit = 50

// Journal is a SQLite-backed dispatch log. Safe for concurrent use; the
// underlying *sql.DB serializes access.
type Journal struct {
	db *sql.DB
}

// Open creates or opens the journal database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Journal, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("journal: create dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("journal: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: init schema: %w", err)
	}
	return &Journal{db: db}, nil
}

// Record appends one dispatch attempt. The entry's ID field is ignored.
func (j *Journal) Record(entry common.HistoryEntry) error {
	okInt := 0
	if entry.Ok {
		okInt = 1
	}
	_, err := j.db.Exec(`
        INSERT INTO sent_reminders (event_id, event_kind, rule, event_start, sent_at, recipient, subject, ok, error)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.EventID, entry.EventKind, entry.Rule,
		entry.EventStart.UnixMilli(), entry.SentAt.UnixMilli(),
		entry.Recipient, entry.Subject, okInt, entry.Error,
	)
	if err != nil {
		return fmt.Errorf("journal: record: %w", err)
	}
	return nil
}

// History returns the most recent attempts, newest first. limit <= 0 means
// DefaultHistoryLimit.
func (j *Journal) History(limit int) ([]common.HistoryEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	rows, err := j.db.Query(`
        SELECT id, event_id, event_kind, rule, event_start, sent_at, recipient, subject, ok, error
        FROM sent_reminders
        ORDER BY sent_at DESC, id DESC
        LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("journal: history: %w", err)
	}
	defer rows.Close()

	var entries []common.HistoryEntry
	for rows.Next() {
		var (
			e                 common.HistoryEntry
			eventStart, sentAt int64
			okInt             int
		)
		if err := rows.Scan(&e.ID, &e.EventID, &e.EventKind, &e.Rule, &eventStart, &sentAt, &e.Recipient, &e.Subject, &okInt, &e.Error); err != nil {
			return nil, fmt.Errorf("journal: scan: %w", err)
		}
		e.EventStart = time.UnixMilli(eventStart)
		e.SentAt = time.UnixMilli(sentAt)
		e.Ok = okInt != 0
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal: iterate: %w", err)
	}
	return entries, nil
}

// Close releases the database handle.
func (j *Journal) Close() error {
	return j.db.Close()
}
