package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HealthReply is the fixed acknowledgment for /health.
const HealthReply = "OK"

// NewHealthHandler returns a handler for the /health command.
func NewHealthHandler(deps HandlerDeps) bot.HandlerFunc {
	return healthHandler{deps}.Handle
}

type healthHandler struct {
	deps HandlerDeps
}

func (h healthHandler) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	if _, err := Reply(ctx, h.deps.Sender, update, HealthReply); err != nil {
		h.deps.Logger.ErrorContext(ctx, "Failed to send health reply",
			"handler", "health", "error", err, "chat_id", update.Message.Chat.ID)
	}
}
