// Package telegram handles the setup and registration of Telegram bot handlers.
package telegram

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/echobot/internal/bot/handlers"
)

// NewTelegramBot creates a new Telegram bot instance using the go-telegram/bot library.
// Client errors (polling failures, API errors) are reported to logger; they
// never stop the bot. Creating the bot calls getMe, so a bad token fails here.
// Handlers run on the polling worker, one update at a time, so a handler has
// finished its writes before the next update or shutdown.
func NewTelegramBot(token string, logger *slog.Logger, opts ...bot.Option) (*bot.Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "telegram_bot")

	opts = append([]bot.Option{
		bot.WithErrorsHandler(ErrorsHandler(log)),
		bot.WithNotAsyncHandlers(),
		bot.WithDefaultHandler(func(context.Context, *bot.Bot, *models.Update) {}),
	}, opts...)

	b, err := bot.New(token, opts...)
	if err != nil {
		log.Error("Failed to create Telegram bot instance", "error", err)
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	log.Info("Telegram bot instance created successfully", "token", maskToken(token))
	return b, nil
}

// ErrorsHandler reports errors raised inside the client library.
func ErrorsHandler(log *slog.Logger) func(err error) {
	return func(err error) {
		log.Error("Bot error", "error", err)
	}
}

// maskToken keeps the bot id part of "123456:secret" and hides the rest.
func maskToken(token string) string {
	const keep = 8
	if len(token) <= keep {
		return "***"
	}
	return token[:keep] + "..."
}

// applyMiddleware wraps a handler function with a slice of middleware.
// Middleware are applied in reverse order so the first one in the slice is the outermost.
func applyMiddleware(handler bot.HandlerFunc, mw []bot.Middleware) bot.HandlerFunc {
	for i := len(mw) - 1; i >= 0; i-- {
		handler = mw[i](handler)
	}
	return handler
}

// Registrar is the part of *bot.Bot used to register handlers.
type Registrar interface {
	RegisterHandlerMatchFunc(matchFunc bot.MatchFunc, f bot.HandlerFunc, m ...bot.Middleware) string
}

// RegisterHandlers registers each handler under its match function, wrapped
// in the handler's own middleware. It returns the handler ids keyed by name.
func RegisterHandlers(b Registrar, logger *slog.Logger, registeredHandlers []handlers.RegisteredHandler) (map[string]string, error) {
	if b == nil {
		return nil, fmt.Errorf("bot instance cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "handler_registry")

	if len(registeredHandlers) == 0 {
		log.Warn("No handlers provided for registration.")
		return nil, nil
	}

	ids := make(map[string]string, len(registeredHandlers))
	for _, regHandler := range registeredHandlers {
		if regHandler.Handler == nil || regHandler.Match == nil {
			log.Warn("Skipping registration for incomplete handler", "name", regHandler.Name)
			continue
		}

		finalHandler := applyMiddleware(regHandler.Handler, regHandler.Middleware)
		ids[regHandler.Name] = b.RegisterHandlerMatchFunc(regHandler.Match, finalHandler)
		log.Debug("Registered handler", "name", regHandler.Name, "middleware_count", len(regHandler.Middleware))
	}

	log.Info("Registered Telegram handlers successfully", "count", len(ids))
	return ids, nil
}
