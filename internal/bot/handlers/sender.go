package handlers

import (
	"context"
	"errors"
	"log/slog"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/echobot/internal/database"
)

// ErrNoChat is returned by Reply when the update has no message to answer.
var ErrNoChat = errors.New("update carries no message to reply to")

// Sender is the outbound capability handlers use. *bot.Bot satisfies it.
type Sender interface {
	SendMessage(ctx context.Context, params *tgbot.SendMessageParams) (*models.Message, error)
}

type auditedSender struct {
	inner  Sender
	audit  MessageLogger
	logger *slog.Logger
}

// NewAuditedSender wraps inner so that every successful send is mirrored to
// audit as an outbound row. Results and errors of inner are returned as is.
func NewAuditedSender(inner Sender, audit MessageLogger, logger *slog.Logger) Sender {
	if logger == nil {
		logger = slog.Default()
	}
	return &auditedSender{
		inner:  inner,
		audit:  audit,
		logger: logger.With("component", "audited_sender"),
	}
}

func (s *auditedSender) SendMessage(ctx context.Context, params *tgbot.SendMessageParams) (*models.Message, error) {
	msg, err := s.inner.SendMessage(ctx, params)
	if err != nil {
		return msg, err
	}

	if msg == nil {
		s.logger.WarnContext(ctx, "Send succeeded without a message in the response, logging request instead")
		s.audit.LogMessage(ctx, outboundEntryFromParams(params))
		return msg, nil
	}

	s.audit.LogMessage(ctx, outboundEntry(msg))
	return msg, nil
}

// Reply sends text to the chat the update's message came from.
func Reply(ctx context.Context, sender Sender, update *models.Update, text string) (*models.Message, error) {
	if update == nil || update.Message == nil {
		return nil, ErrNoChat
	}
	return sender.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   text,
	})
}

// inboundEntry extracts the audit fields of an incoming message update.
func inboundEntry(update *models.Update) database.Entry {
	msg := update.Message
	e := database.Entry{
		Direction: database.DirectionIn,
		ChatID:    database.Int64(msg.Chat.ID),
		MessageID: database.Int64(int64(msg.ID)),
		Text:      textOrNil(msg.Text),
		Raw:       update,
	}
	if msg.From != nil {
		e.UserID = database.Int64(msg.From.ID)
	}
	return e
}

// outboundEntry takes every field from the message Telegram returned, so the
// chat id is always the numeric id even when the send addressed "@channel".
func outboundEntry(msg *models.Message) database.Entry {
	e := database.Entry{
		Direction: database.DirectionOut,
		ChatID:    database.Int64(msg.Chat.ID),
		MessageID: database.Int64(int64(msg.ID)),
		Text:      textOrNil(msg.Text),
		Raw:       msg,
	}
	if msg.From != nil {
		e.UserID = database.Int64(msg.From.ID)
	}
	return e
}

func outboundEntryFromParams(params *tgbot.SendMessageParams) database.Entry {
	e := database.Entry{Direction: database.DirectionOut, Raw: params}
	if params == nil {
		return e
	}
	e.Text = textOrNil(params.Text)
	switch id := params.ChatID.(type) {
	case int64:
		e.ChatID = database.Int64(id)
	case int:
		e.ChatID = database.Int64(int64(id))
	}
	return e
}

func textOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
