package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// EchoPrefix is prepended to every echoed message.
const EchoPrefix = "Echo: "

// EchoReply returns the reply for a received text, kept verbatim.
func EchoReply(text string) string {
	return EchoPrefix + text
}

// NewEchoHandler returns the catch-all handler for plain text messages.
func NewEchoHandler(deps HandlerDeps) bot.HandlerFunc {
	return echoHandler{deps}.Handle
}

type echoHandler struct {
	deps HandlerDeps
}

func (h echoHandler) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "echo")

	if update.Message == nil {
		log.WarnContext(ctx, "Echo handler received update without message", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	log.DebugContext(ctx, "Echoing message", "chat_id", chatID, "message_id", update.Message.ID)

	if _, err := Reply(ctx, h.deps.Sender, update, EchoReply(update.Message.Text)); err != nil {
		log.ErrorContext(ctx, "Failed to send echo", "error", err, "chat_id", chatID)
	}
}
