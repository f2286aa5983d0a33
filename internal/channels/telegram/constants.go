package telegram

const (
	// telegramMaxMessageLen is the safe limit for Telegram messages.
	// Telegram's hard limit is 4096, but we use 4000 for safety.
	telegramMaxMessageLen = 4000

	// voiceMaxBytes caps how much voice audio we download for transcription.
	voiceMaxBytes = 20 << 20
)
