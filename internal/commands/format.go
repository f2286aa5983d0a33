package commands

import (
	"fmt"
	"strings"

	"github.com/nextlevelbuilder/jotbot/internal/store"
)

// renderList formats the owner's items for the /list reply.
// Items arrive in insertion order and are numbered per kind.
func renderList(items []store.Item) string {
	var notes, tasks []store.Item
	for _, it := range items {
		if it.Kind == store.KindTask {
			tasks = append(tasks, it)
		} else {
			notes = append(notes, it)
		}
	}

	var sb strings.Builder
	sb.WriteString("📝 *Your Items:*\n")

	if len(notes) > 0 {
		sb.WriteString("\n*Notes:*\n")
		for i, it := range notes {
			fmt.Fprintf(&sb, "🔹 %d. [%s] %s\n", i+1, it.CreatedAt.Format("2006-01-02"), it.Text)
		}
	}

	if len(tasks) > 0 {
		sb.WriteString("\n*Tasks:*\n")
		for i, it := range tasks {
			status := "⏳"
			if it.Done {
				status = "✅"
			}
			fmt.Fprintf(&sb, "🔹 %d. [%s] %s %s\n", i+1, it.CreatedAt.Format("2006-01-02"), status, it.Text)
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

// renderSummary wraps the model's summary with total counts.
func renderSummary(counts store.Counts, generated string) string {
	return fmt.Sprintf(
		"📊 *Summary of Your Items:*\n\n🔹 Total Notes: %d\n🔹 Total Tasks: %d\n\n%s\n\n👉 Use `/list` to view all items.",
		counts.Notes, counts.Tasks, generated)
}

// renderBasicSummary is the fallback when the model is unavailable:
// counts plus the first few recent content lines.
func renderBasicSummary(counts store.Counts, lines []string) string {
	if len(lines) > 3 {
		lines = lines[:3]
	}
	return fmt.Sprintf(
		"📊 *Basic Summary:*\n\n🔹 Total Notes: %d\n🔹 Total Tasks: %d\n\nRecent Items:\n🔹 %s\n\n👉 Use `/list` to view all items.",
		counts.Notes, counts.Tasks, strings.Join(lines, "\n🔹 "))
}
