package handlers

import (
	"slices"
	"strings"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// RegisteredHandler pairs a handler with the updates it answers and the
// middleware that wraps it.
type RegisteredHandler struct {
	Name       string
	Match      tgbot.MatchFunc
	Handler    tgbot.HandlerFunc
	Middleware []tgbot.Middleware
}

// RegisterAllCommands returns every user-reachable behaviour: the commands
// first, then the echo handler that answers all other text.
func RegisterAllCommands(deps HandlerDeps) []RegisteredHandler {
	commands := []RegisteredHandler{
		{Name: "start", Match: CommandMatch("start"), Handler: NewStartHandler(deps)},
		{Name: "health", Match: CommandMatch("health"), Handler: NewHealthHandler(deps)},
	}

	names := make([]string, 0, len(commands))
	for _, c := range commands {
		names = append(names, c.Name)
	}

	return append(commands, RegisteredHandler{
		Name:    "echo",
		Match:   TextMatch(names...),
		Handler: NewEchoHandler(deps),
	})
}

// CommandMatch matches messages whose first word is /command, optionally
// addressed as /command@botname and followed by arguments.
func CommandMatch(command string) tgbot.MatchFunc {
	return func(update *models.Update) bool {
		return update != nil && update.Message != nil && commandName(update.Message.Text) == command
	}
}

// TextMatch matches text messages that none of the given commands match.
// Unknown commands count as text.
func TextMatch(commands ...string) tgbot.MatchFunc {
	return func(update *models.Update) bool {
		if update == nil || update.Message == nil || update.Message.Text == "" {
			return false
		}
		name := commandName(update.Message.Text)
		return name == "" || !slices.Contains(commands, name)
	}
}

// commandName returns "start" for "/start@bot args", or "" if text is not a command.
func commandName(text string) string {
	if !strings.HasPrefix(text, "/") {
		return ""
	}
	name := strings.TrimPrefix(strings.Fields(text)[0], "/")
	if i := strings.IndexByte(name, '@'); i >= 0 {
		name = name[:i]
	}
	return name
}
