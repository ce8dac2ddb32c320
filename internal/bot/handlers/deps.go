package handlers

import (
	"context"
	"log/slog"

	"github.com/edgard/echobot/internal/database"
)

// MessageLogger records observed messages. Implementations must not fail the
// caller; *database.AuditLog swallows and reports its own errors.
type MessageLogger interface {
	LogMessage(ctx context.Context, e database.Entry)
}

// HandlerDeps provides dependencies for Telegram command handlers.
// Sender is expected to already be wrapped with NewAuditedSender.
type HandlerDeps struct {
	Logger *slog.Logger
	Sender Sender
}
