package store

import "time"

// Session is one run of the calculator that wrote to the journal.
type Session struct {
	ID        string
	StartedAt time.Time
	EndedAt   time.Time
	Status    string
}

// Entry is a journaled evaluation.
type Entry struct {
	ID         int64
	SessionID  string
	Expression string
	Result     string
	CreatedAt  time.Time
}

// Journal defines the interface for history persistence.
type Journal interface {
	CreateSession(session *Session) error
	GetSession(id string) (*Session, error)
	EndSession(id, status string) error

	AppendEntry(entry *Entry) error
	ListEntries(sessionID string) ([]*Entry, error)
	RecentEntries(limit int) ([]*Entry, error)

	Close() error
}
