package handlers

import (
	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/dualcoach/internal/chat"
	"github.com/edgard/dualcoach/internal/telegram"
)

var slashCommands = []struct {
	cmd         chat.Command
	description string
}{
	{chat.CommandStart, "Начать работу с ботом"},
	{chat.CommandHelp, "Помощь"},
	{chat.CommandReset, "Удалить все мои данные"},
	{chat.CommandStop, "Завершить сессию"},
}

// RegisterAllCommands initializes and returns a map of all slash command handlers.
func RegisterAllCommands(deps HandlerDeps) map[string]telegram.RegisteredHandler {
	handlers := make(map[string]telegram.RegisteredHandler, len(slashCommands))
	middleware := []tgbot.Middleware{PrivateOnly(deps)}

	for _, c := range slashCommands {
		handlers["/"+c.cmd.String()] = telegram.RegisteredHandler{
			HandlerType: tgbot.HandlerTypeMessageText,
			Pattern:     c.cmd.String(),
			Handler:     NewCommandHandler(deps, c.cmd),
			MatchType:   tgbot.MatchTypeCommandStartOnly,
			Middleware:  middleware,
		}
	}
	return handlers
}

// DefaultHandler wraps the message handler with the same middleware as commands.
// It is installed with bot.WithDefaultHandler.
func DefaultHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return PrivateOnly(deps)(NewMessageHandler(deps))
}

// BotCommands lists the slash commands for the client-side command menu.
func BotCommands() []models.BotCommand {
	out := make([]models.BotCommand, 0, len(slashCommands))
	for _, c := range slashCommands {
		out = append(out, models.BotCommand{Command: c.cmd.String(), Description: c.description})
	}
	return out
}
