// Package transcribe converts voice audio to text via a locally hosted
// whisper-server inference endpoint.
package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

const whisperTimeout = 120 * time.Second

// Transcriber turns raw audio bytes into plain text.
type Transcriber interface {
	// Transcribe sends the audio (OGG/Opus voice note) and returns the text.
	Transcribe(ctx context.Context, filename string, audio []byte) (string, error)
}

// WhisperClient calls a whisper.cpp server's /inference endpoint.
type WhisperClient struct {
	url    string
	client *http.Client
}

// NewWhisperClient creates a client for the given whisper-server base URL
// (e.g. http://localhost:8080).
func NewWhisperClient(url string) *WhisperClient {
	return &WhisperClient{
		url:    strings.TrimSuffix(url, "/"),
		client: &http.Client{Timeout: whisperTimeout},
	}
}

type whisperResponse struct {
	Text string `json:"text"`
}

// Transcribe posts the audio as multipart form data and returns the
// transcript text.
func (c *WhisperClient) Transcribe(ctx context.Context, filename string, audio []byte) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("build whisper request: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", fmt.Errorf("build whisper request: %w", err)
	}
	if err := mw.WriteField("response_format", "json"); err != nil {
		return "", fmt.Errorf("build whisper request: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("build whisper request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/inference", &buf)
	if err != nil {
		return "", fmt.Errorf("create whisper request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call whisper: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("whisper status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var out whisperResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode whisper response: %w", err)
	}
	return strings.TrimSpace(out.Text), nil
}
