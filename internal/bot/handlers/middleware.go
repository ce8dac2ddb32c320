// Package handlers contains Telegram bot command and message handlers,
// along with their registration logic and middleware.
package handlers

import (
	"context"
	"log/slog"
	"runtime/debug"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// AuditInbound creates a middleware that records every update carrying a
// message as an inbound row before the handler runs.
func AuditInbound(audit MessageLogger) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
			if update != nil && update.Message != nil {
				audit.LogMessage(ctx, inboundEntry(update))
			}
			next(ctx, b, update)
		}
	}
}

// Recover creates a middleware that stops a panicking handler from taking
// the process down. The panic is logged and the update is dropped.
func Recover(logger *slog.Logger) tgbot.Middleware {
	log := logger.With("middleware", "Recover")
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
			defer func() {
				if r := recover(); r != nil {
					var updateID int64
					if update != nil {
						updateID = update.ID
					}
					log.ErrorContext(ctx, "Bot error: handler panicked",
						"update_id", updateID,
						"panic", r,
						"stack", string(debug.Stack()))
				}
			}()
			next(ctx, b, update)
		}
	}
}
