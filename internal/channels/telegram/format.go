package telegram

import (
	"strings"
	"unicode/utf8"
)

// splitMessage breaks text into chunks of at most limit bytes,
// preferring to split on a newline so formatting survives. Cuts never
// land mid-rune, so every chunk is valid UTF-8.
func splitMessage(text string, limit int) []string {
	if text == "" {
		return nil
	}
	if len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	for len(text) > limit {
		cut := limit
		if i := strings.LastIndexByte(text[:limit], '\n'); i > 0 {
			cut = i
		} else {
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
			if cut == 0 {
				// Limit smaller than one rune; take the bytes anyway.
				cut = limit
			}
		}
		chunks = append(chunks, strings.TrimRight(text[:cut], "\n"))
		text = strings.TrimLeft(text[cut:], "\n")
	}
	if text != "" {
		chunks = append(chunks, text)
	}
	return chunks
}
