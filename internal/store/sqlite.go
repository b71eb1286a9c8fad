package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteJournal struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the journal database at dbPath.
func OpenSQLite(dbPath string) (*SQLiteJournal, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	dsn := filepath.Clean(dbPath) + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	j := &SQLiteJournal{db: db}
	if err := j.initSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return j, nil
}

func (j *SQLiteJournal) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			started_at INTEGER NOT NULL,
			ended_at INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS entries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			expression TEXT NOT NULL,
			result TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			FOREIGN KEY(session_id) REFERENCES sessions(id)
		);`,
		`CREATE INDEX IF NOT EXISTS entries_session ON entries(session_id, id);`,
	}

	for _, query := range queries {
		if _, err := j.db.Exec(query); err != nil {
			return fmt.Errorf("failed to init schema: %w", err)
		}
	}
	return nil
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UTC().UnixMilli()
}

func fromMillis(v int64) time.Time {
	if v == 0 {
		return time.Time{}
	}
	return time.UnixMilli(v).UTC()
}

// Session Implementation

func (j *SQLiteJournal) CreateSession(session *Session) error {
	query := `INSERT INTO sessions (id, started_at, ended_at, status) VALUES (?, ?, ?, ?)`
	_, err := j.db.Exec(query, session.ID, toMillis(session.StartedAt), toMillis(session.EndedAt), session.Status)
	return err
}

func (j *SQLiteJournal) GetSession(id string) (*Session, error) {
	query := `SELECT id, started_at, ended_at, status FROM sessions WHERE id = ?`
	row := j.db.QueryRow(query, id)

	var session Session
	var started, ended int64
	if err := row.Scan(&session.ID, &started, &ended, &session.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("session not found: %s", id)
		}
		return nil, err
	}
	session.StartedAt = fromMillis(started)
	session.EndedAt = fromMillis(ended)
	return &session, nil
}

func (j *SQLiteJournal) EndSession(id, status string) error {
	query := `UPDATE sessions SET ended_at = ?, status = ? WHERE id = ?`
	res, err := j.db.Exec(query, toMillis(time.Now()), status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("session not found: %s", id)
	}
	return nil
}

// Entry Implementation

func (j *SQLiteJournal) AppendEntry(entry *Entry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	query := `INSERT INTO entries (session_id, expression, result, created_at) VALUES (?, ?, ?, ?)`
	res, err := j.db.Exec(query, entry.SessionID, entry.Expression, entry.Result, toMillis(entry.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to append entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	entry.ID = id
	return nil
}

func (j *SQLiteJournal) ListEntries(sessionID string) ([]*Entry, error) {
	query := `SELECT id, session_id, expression, result, created_at FROM entries WHERE session_id = ? ORDER BY id`
	rows, err := j.db.Query(query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

// RecentEntries returns the newest entries across all sessions, oldest first.
func (j *SQLiteJournal) RecentEntries(limit int) ([]*Entry, error) {
	query := `SELECT id, session_id, expression, result, created_at FROM (
		SELECT * FROM entries ORDER BY id DESC LIMIT ?
	) ORDER BY id`
	rows, err := j.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]*Entry, error) {
	var entries []*Entry
	for rows.Next() {
		var e Entry
		var created int64
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Expression, &e.Result, &created); err != nil {
			return nil, err
		}
		e.CreatedAt = fromMillis(created)
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
