package database

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
)

// ErrClosed is returned by Conn.Get once the holder has been closed.
var ErrClosed = errors.New("database connection closed")

// Conn owns the process-wide database handle. The handle is opened on the
// first Get and shared by every later call until Close.
type Conn struct {
	path        string
	busyTimeout time.Duration

	mu     sync.Mutex
	db     *sqlx.DB
	closed bool
}

// NewConn returns a holder for the database at path. Nothing is opened yet.
func NewConn(path string, busyTimeout time.Duration) *Conn {
	return &Conn{path: path, busyTimeout: busyTimeout}
}

// Path returns the configured database path.
func (c *Conn) Path() string { return c.path }

// Get returns the shared handle, opening it and ensuring the schema on first
// use. A failed open is not cached; the next call tries again.
func (c *Conn) Get(ctx context.Context) (*sqlx.DB, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrClosed
	}
	if c.db != nil {
		return c.db, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	db, err := NewDB(c.path, c.busyTimeout)
	if err != nil {
		return nil, err
	}
	c.db = db
	return c.db, nil
}

// Close closes the handle if it was opened. Further Get calls fail with ErrClosed.
func (c *Conn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	CloseDB(c.db)
	c.db = nil
}
