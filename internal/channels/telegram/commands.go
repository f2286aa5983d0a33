package telegram

import (
	"context"
	"log/slog"

	"github.com/mymmrac/telego"
)

// SyncMenuCommands registers bot commands with Telegram via setMyCommands.
func (c *Channel) SyncMenuCommands(ctx context.Context, commands []telego.BotCommand) error {
	if err := c.bot.DeleteMyCommands(ctx, nil); err != nil {
		slog.Debug("deleteMyCommands failed (may not exist)", "error", err)
	}

	if len(commands) == 0 {
		return nil
	}

	return c.bot.SetMyCommands(ctx, &telego.SetMyCommandsParams{
		Commands: commands,
	})
}

// DefaultMenuCommands returns the bot menu shown in the Telegram client.
func DefaultMenuCommands() []telego.BotCommand {
	return []telego.BotCommand{
		{Command: "start", Description: "Show the welcome message"},
		{Command: "help", Description: "Show available commands"},
		{Command: "note", Description: "Save a note"},
		{Command: "task", Description: "Add a task"},
		{Command: "list", Description: "View all items"},
		{Command: "search", Description: "Search items"},
		{Command: "summary", Description: "Summarize your items"},
		{Command: "query", Description: "Ask a general question"},
		{Command: "summarize_meeting", Description: "Summarize a voice meeting transcript"},
		{Command: "delete_tasks", Description: "Delete all tasks"},
		{Command: "delete_notes", Description: "Delete all notes"},
	}
}
