package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// StartReply is the greeting sent for /start.
func StartReply(firstName string) string {
	if firstName == "" {
		firstName = "there"
	}
	return fmt.Sprintf("Hello, %s! I am alive and ready.", firstName)
}

// NewStartHandler returns a handler for the /start command.
func NewStartHandler(deps HandlerDeps) bot.HandlerFunc {
	return startHandler{deps}.Handle
}

// startHandler greets the sender by first name.
type startHandler struct {
	deps HandlerDeps
}

func (h startHandler) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "start")

	if update.Message == nil {
		log.WarnContext(ctx, "Start handler received update without message", "update_id", update.ID)
		return
	}

	var firstName string
	if update.Message.From != nil {
		firstName = update.Message.From.FirstName
	}

	chatID := update.Message.Chat.ID
	log.InfoContext(ctx, "Handling /start command", "chat_id", chatID)

	if _, err := Reply(ctx, h.deps.Sender, update, StartReply(firstName)); err != nil {
		log.ErrorContext(ctx, "Failed to send welcome message", "error", err, "chat_id", chatID)
	}
}
