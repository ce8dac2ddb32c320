package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// ErrInvalidDirection is reported when an entry carries an unknown direction.
var ErrInvalidDirection = errors.New("invalid message direction")

// AuditLog appends observed messages to the messages table.
type AuditLog struct {
	conn   *Conn
	logger *slog.Logger
}

// NewAuditLog creates an audit log writing through conn.
func NewAuditLog(conn *Conn, logger *slog.Logger) *AuditLog {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &AuditLog{
		conn:   conn,
		logger: logger.With("component", "audit_log"),
	}
}

// LogMessage appends one row for e. It never fails from the caller's point of
// view: any error is logged and dropped so the bot interaction carries on.
func (a *AuditLog) LogMessage(ctx context.Context, e Entry) {
	// The write must finish even if the update's context is being torn down.
	ctx = context.WithoutCancel(ctx)

	defer func() {
		if r := recover(); r != nil {
			a.logger.ErrorContext(ctx, "Failed to log message to SQLite",
				"direction", e.Direction, "error", fmt.Errorf("panic: %v", r))
		}
	}()

	if err := a.insert(ctx, e); err != nil {
		a.logger.ErrorContext(ctx, "Failed to log message to SQLite",
			"direction", e.Direction, "chat_id", derefInt(e.ChatID), "error", err)
	}
}

func (a *AuditLog) insert(ctx context.Context, e Entry) error {
	if !e.Direction.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidDirection, e.Direction)
	}

	raw, err := json.Marshal(e.Raw)
	if err != nil {
		return fmt.Errorf("failed to serialize raw payload: %w", err)
	}

	query, args, err := sq.Insert("messages").
		Columns("direction", "chat_id", "user_id", "message_id", "text", "raw_json").
		Values(string(e.Direction), e.ChatID, e.UserID, e.MessageID, e.Text, string(raw)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert: %w", err)
	}

	if a.conn == nil {
		return ErrClosed
	}
	db, err := a.conn.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}

	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		a.logger.DebugContext(ctx, "Logged message", "id", id, "direction", e.Direction)
	}
	return nil
}

// RunSQLMaintenance checkpoints the WAL back into the main database file and
// refreshes the query planner statistics. Rows are never touched.
func (a *AuditLog) RunSQLMaintenance(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	db, err := a.conn.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}

	startTime := time.Now()
	for _, stmt := range []string{"PRAGMA wal_checkpoint(TRUNCATE)", "PRAGMA optimize"} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			a.logger.ErrorContext(ctx, "Database maintenance statement failed", "statement", stmt, "error", err)
			return fmt.Errorf("failed to run %q: %w", stmt, err)
		}
	}

	a.logger.InfoContext(ctx, "Database maintenance completed", "duration", time.Since(startTime))
	return nil
}

func derefInt(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}
