package commands

import (
	"fmt"
	"strings"

	"github.com/nextlevelbuilder/jotbot/internal/store"
)

// summaryRecentPerKind caps how many recent items of each kind feed the
// summary prompt, keeping it small for the local model.
const summaryRecentPerKind = 5

// describeItem renders one item as a prompt content line.
func describeItem(it store.Item) string {
	date := it.CreatedAt.Format("2006-01-02")
	switch it.Kind {
	case store.KindTask:
		status := "pending"
		if it.Done {
			status = "completed"
		}
		return fmt.Sprintf("Task (%s): %s (Status: %s)", date, it.Text, status)
	default:
		return fmt.Sprintf("Note (%s): %s", date, it.Text)
	}
}

// buildSearchPrompt asks the model to pick items matching the query.
func buildSearchPrompt(query string, items []store.Item) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Find exact matches for: %q\nContent:\n", query)
	for _, it := range items {
		sb.WriteString(describeItem(it))
		sb.WriteByte('\n')
	}
	sb.WriteString("\nReturn only the matching items as bullet points. Each bullet point should start with 🔹. Do not include any intermediate reasoning.\n")
	return sb.String()
}

// summaryContent returns the content lines for the summary prompt:
// the most recent items of each kind, newest first.
func summaryContent(items []store.Item) []string {
	var notes, tasks []store.Item
	for _, it := range items {
		if it.Kind == store.KindTask {
			tasks = append(tasks, it)
		} else {
			notes = append(notes, it)
		}
	}

	var lines []string
	for _, recent := range [][]store.Item{notes, tasks} {
		n := len(recent)
		for i := 0; i < summaryRecentPerKind && i < n; i++ {
			it := recent[n-1-i] // insertion order, so walk backwards for newest first
			if it.Kind == store.KindTask {
				status := "pending"
				if it.Done {
					status = "completed"
				}
				lines = append(lines, fmt.Sprintf("Task: %s (Status: %s)", it.Text, status))
			} else {
				lines = append(lines, fmt.Sprintf("Note: %s", it.Text))
			}
		}
	}
	return lines
}

// buildSummaryPrompt asks the model for a bullet-point summary.
func buildSummaryPrompt(lines []string) string {
	return fmt.Sprintf(
		"Summarize these items concisely.\nItems:\n%s\n\nReturn only the final summary as bullet points (each starting with 🔹), including total counts.\n",
		strings.Join(lines, "\n"))
}

// buildQueryPrompt wraps a free-form question.
func buildQueryPrompt(query string) string {
	return fmt.Sprintf(
		"For the following input, return only the final answer as bullet points (each starting with 🔹). Do not include any intermediate reasoning.\nInput: %s\n",
		query)
}

// buildMeetingPrompt wraps a meeting transcript for summarization.
func buildMeetingPrompt(transcript string) string {
	return fmt.Sprintf(
		"Summarize the following meeting transcript and list follow-up action items as bullet points (each starting with 🔹). Do not include any internal thinking.\nMeeting Transcript:\n%s\n",
		transcript)
}
