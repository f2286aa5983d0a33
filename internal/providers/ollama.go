package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	ollamaDefaultBase  = "http://localhost:11434"
	ollamaDefaultModel = "deepseek-r1:1.5b"

	// ollamaGenerateTimeout bounds one generate call.
	ollamaGenerateTimeout = 60 * time.Second

	// ollamaCheckTimeout bounds the availability probe.
	ollamaCheckTimeout = 10 * time.Second
)

// ollamaSystemPrompt forces the model to answer directly, without any
// visible chain-of-thought, formatted as emoji bullet points.
const ollamaSystemPrompt = "You are a direct response assistant. ONLY provide the final answer without any internal thinking, " +
	"reasoning, or monologue. Do not include any phrases like 'thinking', 'analysis', or 'I think'. " +
	"Format your final answer as bullet points with each item preceded by an emoji (e.g., 🔹). " +
	"Return only the final answer."

// OllamaProvider calls a local Ollama daemon's generate API.
type OllamaProvider struct {
	apiBase string
	model   string
	client  *http.Client
}

// OllamaConfig configures the Ollama provider.
type OllamaConfig struct {
	APIBase string
	Model   string
}

// NewOllamaProvider creates an Ollama provider.
func NewOllamaProvider(cfg OllamaConfig) *OllamaProvider {
	p := &OllamaProvider{
		apiBase: strings.TrimSuffix(cfg.APIBase, "/"),
		model:   cfg.Model,
		client:  &http.Client{Timeout: ollamaGenerateTimeout},
	}
	if p.apiBase == "" {
		p.apiBase = ollamaDefaultBase
	}
	if p.model == "" {
		p.model = ollamaDefaultModel
	}
	return p
}

func (p *OllamaProvider) Name() string { return "ollama" }

type ollamaGenerateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
}

// Generate calls POST {apiBase}/api/generate with the system prompt
// prepended and returns the trimmed response text.
func (p *OllamaProvider) Generate(ctx context.Context, prompt string) (string, error) {
	formatted := fmt.Sprintf("%s\n\nUser Request: %s\n\nDirect Response:", ollamaSystemPrompt, prompt)

	body := ollamaGenerateRequest{
		Model:  p.model,
		Prompt: formatted,
		Stream: false,
		Options: map[string]any{
			"temperature": 0.7,
			"top_p":       0.9,
			"num_predict": 256,
		},
	}

	bodyJSON, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal ollama request: %w", err)
	}

	url := p.apiBase + "/api/generate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyJSON))
	if err != nil {
		return "", fmt.Errorf("create ollama request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("ollama status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var out ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode ollama response: %w", err)
	}
	return strings.TrimSpace(out.Response), nil
}

// CheckConnection probes GET {apiBase}/api/tags.
func (p *OllamaProvider) CheckConnection(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, ollamaCheckTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.apiBase+"/api/tags", nil)
	if err != nil {
		return false
	}

	resp, err := p.client.Do(req)
	if err != nil {
		slog.Error("ollama connection check failed", "error", err)
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
