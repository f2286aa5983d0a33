package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/mymmrac/telego"
)

// downloadVoice fetches a voice note's audio bytes via the Telegram file API.
func (c *Channel) downloadVoice(ctx context.Context, voice *telego.Voice) ([]byte, error) {
	if voice.FileSize > voiceMaxBytes {
		return nil, fmt.Errorf("voice note too large: %d bytes", voice.FileSize)
	}

	f, err := c.bot.GetFile(ctx, &telego.GetFileParams{FileID: voice.FileID})
	if err != nil {
		return nil, fmt.Errorf("telegram getFile: %w", err)
	}

	url := c.bot.FileDownloadURL(f.FilePath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create download request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download voice file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download voice file: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, voiceMaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read voice file: %w", err)
	}
	if len(data) > voiceMaxBytes {
		return nil, fmt.Errorf("voice note too large")
	}
	return data, nil
}
