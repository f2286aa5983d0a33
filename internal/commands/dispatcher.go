// Package commands maps incoming chat commands to handlers that talk to
// the item store and the inference provider, returning formatted replies.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nextlevelbuilder/jotbot/internal/bus"
	"github.com/nextlevelbuilder/jotbot/internal/providers"
	"github.com/nextlevelbuilder/jotbot/internal/store"
	"github.com/nextlevelbuilder/jotbot/internal/transcribe"
)

// helpText is the /start and /help reply, also sent for unknown commands.
const helpText = `🌟 *Welcome to your Productivity Assistant!* 🌟

Available commands:
- ` + "`/note [text]`" + ` 📝: Save a note
- ` + "`/task [text]`" + ` ✅: Add a task
- ` + "`/list`" + ` 📋: View all items
- ` + "`/search [query]`" + ` 🔍: Search items (bullet points)
- ` + "`/summary`" + ` 📊: Get summary (bullet points)
- ` + "`/query [text]`" + ` 🤖: Ask any general question and get a final answer
- ` + "`/summarize_meeting`" + ` 🗣️: Summarize a meeting transcript from a voice message
- ` + "`/delete_tasks`" + ` 🗑️: Delete all tasks
- ` + "`/delete_notes`" + ` 🗑️: Delete all notes
- ` + "`/help`" + ` ❓: Show this message

*Examples:*
1. ` + "`/note Call John about project`" + `
2. ` + "`/task Submit report by Friday`" + `
3. ` + "`/query What is the capital of France?`" + `

Type ` + "`/help`" + ` anytime for assistance!`

// Dispatcher routes one command to its handler. It is stateless between
// messages; side effects are confined to the store and provider calls.
type Dispatcher struct {
	store       store.Store
	provider    providers.Provider
	transcriber transcribe.Transcriber // nil disables /summarize_meeting
}

func NewDispatcher(st store.Store, provider providers.Provider, transcriber transcribe.Transcriber) *Dispatcher {
	return &Dispatcher{store: st, provider: provider, transcriber: transcriber}
}

// Dispatch handles a single inbound command and returns the reply text.
// Every failure degrades to a plain-text notice; the reply is never empty.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd bus.InboundCommand) string {
	switch cmd.Command {
	case "start", "help":
		return helpText
	case "note":
		return d.saveItem(ctx, store.KindNote, cmd)
	case "task":
		return d.saveItem(ctx, store.KindTask, cmd)
	case "list":
		return d.listItems(ctx, cmd)
	case "search":
		return d.search(ctx, cmd)
	case "summary":
		return d.summary(ctx, cmd)
	case "query":
		return d.query(ctx, cmd)
	case "summarize_meeting":
		return d.summarizeMeeting(ctx, cmd)
	case "delete_tasks":
		return d.deleteAll(ctx, store.KindTask, cmd)
	case "delete_notes":
		return d.deleteAll(ctx, store.KindNote, cmd)
	default:
		return helpText
	}
}

func (d *Dispatcher) saveItem(ctx context.Context, kind store.Kind, cmd bus.InboundCommand) string {
	if cmd.Args == "" {
		if kind == store.KindTask {
			return "❌ Please add task text\nExample: `/task Buy groceries`"
		}
		return "❌ Please add note text\nExample: `/note Call John`"
	}

	if _, err := d.store.Insert(ctx, kind, cmd.OwnerID, cmd.Args); err != nil {
		slog.Error("save item failed", "kind", kind, "owner_id", cmd.OwnerID, "error", err)
		return fmt.Sprintf("❌ Error saving %s. Please try again.", kind)
	}

	if kind == store.KindTask {
		return "✅ *Task added!* Use `/list` to view all."
	}
	return "✅ *Note saved!* Use `/list` to view all."
}

func (d *Dispatcher) listItems(ctx context.Context, cmd bus.InboundCommand) string {
	items, err := d.store.List(ctx, cmd.OwnerID)
	if err != nil {
		slog.Error("list items failed", "owner_id", cmd.OwnerID, "error", err)
		return "❌ Error retrieving items. Please try again."
	}
	if len(items) == 0 {
		return "📝 No items yet. Add with `/note` or `/task`"
	}
	return renderList(items)
}

func (d *Dispatcher) search(ctx context.Context, cmd bus.InboundCommand) string {
	if cmd.Args == "" {
		return "❌ Please add search text\nExample: `/search project`"
	}

	items, err := d.store.List(ctx, cmd.OwnerID)
	if err != nil {
		slog.Error("search: list items failed", "owner_id", cmd.OwnerID, "error", err)
		return "❌ Error during search. Please try again."
	}
	if len(items) == 0 {
		return "📝 No items to search"
	}

	response, err := d.provider.Generate(ctx, buildSearchPrompt(cmd.Args, items))
	if err != nil {
		slog.Error("search: generate failed", "owner_id", cmd.OwnerID, "error", err)
		return "❌ Error during search. Please try again."
	}
	if response == "" {
		return "❌ No matches found"
	}
	return fmt.Sprintf("🔍 *Search Results:*\n\n%s", response)
}

func (d *Dispatcher) summary(ctx context.Context, cmd bus.InboundCommand) string {
	items, err := d.store.List(ctx, cmd.OwnerID)
	if err != nil {
		slog.Error("summary: list items failed", "owner_id", cmd.OwnerID, "error", err)
		return "❌ Error generating summary. Please try again."
	}
	if len(items) == 0 {
		return "📝 No items to summarize"
	}

	counts, err := d.store.Counts(ctx, cmd.OwnerID)
	if err != nil {
		slog.Error("summary: counts failed", "owner_id", cmd.OwnerID, "error", err)
		return "❌ Error generating summary. Please try again."
	}

	lines := summaryContent(items)
	response, err := d.provider.Generate(ctx, buildSummaryPrompt(lines))
	if err != nil || response == "" {
		// Model unavailable: still give the user their counts.
		if err != nil {
			slog.Warn("summary: generate failed, using basic summary", "owner_id", cmd.OwnerID, "error", err)
		}
		return renderBasicSummary(counts, lines)
	}
	return renderSummary(counts, response)
}

func (d *Dispatcher) query(ctx context.Context, cmd bus.InboundCommand) string {
	if cmd.Args == "" {
		return "❌ Please provide a query!\nExample: `/query What is the capital of France?`"
	}

	response, err := d.provider.Generate(ctx, buildQueryPrompt(cmd.Args))
	if err != nil {
		slog.Error("query: generate failed", "owner_id", cmd.OwnerID, "error", err)
		return "❌ Error processing query. Please try again."
	}
	if response == "" {
		return "ℹ️ No response from the AI. Please try again."
	}
	return fmt.Sprintf("🤖 *Response:*\n%s", response)
}

func (d *Dispatcher) summarizeMeeting(ctx context.Context, cmd bus.InboundCommand) string {
	if len(cmd.VoiceAudio) == 0 {
		return "❌ Please attach a voice message with your meeting transcript after using the /summarize_meeting command."
	}
	if d.transcriber == nil {
		return "❌ Voice transcription is not configured on this bot."
	}

	transcript, err := d.transcriber.Transcribe(ctx, "voice.ogg", cmd.VoiceAudio)
	if err != nil {
		slog.Error("summarize_meeting: transcription failed", "owner_id", cmd.OwnerID, "error", err)
		return "❌ Error processing meeting summary. Please try again."
	}

	response, err := d.provider.Generate(ctx, buildMeetingPrompt(transcript))
	if err != nil {
		slog.Error("summarize_meeting: generate failed", "owner_id", cmd.OwnerID, "error", err)
		return "❌ Error processing meeting summary. Please try again."
	}
	if response == "" {
		return "❌ No summary could be generated. Please try again."
	}
	return fmt.Sprintf("🗣️ *Meeting Summary:*\n\n%s", response)
}

func (d *Dispatcher) deleteAll(ctx context.Context, kind store.Kind, cmd bus.InboundCommand) string {
	n, err := d.store.DeleteAll(ctx, kind, cmd.OwnerID)
	if err != nil {
		slog.Error("delete all failed", "kind", kind, "owner_id", cmd.OwnerID, "error", err)
		return fmt.Sprintf("❌ Error deleting %ss. Please try again.", kind)
	}
	return fmt.Sprintf("🗑️ Deleted %d %s(s).", n, kind)
}
