// Package tasks implements scheduled maintenance tasks for the bot.
package tasks

import (
	"context"
	"log/slog"
)

// Maintainer performs housekeeping on the audit database.
// *database.AuditLog satisfies it.
type Maintainer interface {
	RunSQLMaintenance(ctx context.Context) error
}

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger *slog.Logger
	Store  Maintainer
}
