package telegram

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplitMessageShort(t *testing.T) {
	got := splitMessage("hello", telegramMaxMessageLen)
	if len(got) != 1 || got[0] != "hello" {
		t.Errorf("unexpected chunks: %q", got)
	}
}

func TestSplitMessageEmpty(t *testing.T) {
	if got := splitMessage("", telegramMaxMessageLen); got != nil {
		t.Errorf("expected nil for empty text, got %q", got)
	}
}

func TestSplitMessagePrefersNewlines(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 500; i++ {
		sb.WriteString("🔹 item line with some text\n")
	}
	text := sb.String()

	chunks := splitMessage(text, telegramMaxMessageLen)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk) > telegramMaxMessageLen {
			t.Errorf("chunk %d over limit: %d bytes", i, len(chunk))
		}
		// Splitting on newlines keeps every line intact.
		for _, line := range strings.Split(chunk, "\n") {
			if line != "" && !strings.HasPrefix(line, "🔹") {
				t.Errorf("chunk %d broke a line: %q", i, line)
			}
		}
	}

	rejoined := strings.Join(chunks, "\n")
	if strings.Count(rejoined, "🔹") != 500 {
		t.Errorf("lines lost in split: %d", strings.Count(rejoined, "🔹"))
	}
}

func TestSplitMessageNoNewlines(t *testing.T) {
	text := strings.Repeat("a", 9000)
	chunks := splitMessage(text, 4000)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	total := 0
	for _, c := range chunks {
		if len(c) > 4000 {
			t.Errorf("chunk over limit: %d", len(c))
		}
		total += len(c)
	}
	if total != 9000 {
		t.Errorf("bytes lost: %d", total)
	}
}

func TestSplitMessageRuneBoundaries(t *testing.T) {
	// A long single-line reply of multi-byte runes, offset by one byte so
	// the limit falls inside a rune.
	text := "x" + strings.Repeat("🔹", 1500)
	chunks := splitMessage(text, 4000)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk) > 4000 {
			t.Errorf("chunk %d over limit: %d bytes", i, len(chunk))
		}
		if !utf8.ValidString(chunk) {
			t.Errorf("chunk %d is invalid UTF-8 (tail %q)", i, chunk[len(chunk)-4:])
		}
	}
	if strings.Join(chunks, "") != text {
		t.Error("content lost or corrupted in split")
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		text    string
		command string
		args    string
		ok      bool
	}{
		{"/note buy milk", "note", "buy milk", true},
		{"/list", "list", "", true},
		{"/NOTE hi", "note", "hi", true},
		{"/note@jotbot buy milk", "note", "buy milk", true},
		{"/note@otherbot buy milk", "", "", false},
		{"/search   spaced   ", "search", "spaced", true},
		{"plain message", "", "", false},
		{"", "", "", false},
		{"/", "", "", false},
	}

	for _, tt := range tests {
		command, args, ok := parseCommand(tt.text, "jotbot")
		if ok != tt.ok || command != tt.command || args != tt.args {
			t.Errorf("parseCommand(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.text, command, args, ok, tt.command, tt.args, tt.ok)
		}
	}
}
