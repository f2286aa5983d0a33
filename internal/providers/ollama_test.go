package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOllamaGenerate(t *testing.T) {
	var gotReq ollamaGenerateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"response": "  🔹 Paris\n"})
	}))
	defer srv.Close()

	p := NewOllamaProvider(OllamaConfig{APIBase: srv.URL, Model: "test-model"})
	got, err := p.Generate(context.Background(), "What is the capital of France?")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "🔹 Paris" {
		t.Errorf("response = %q, want trimmed %q", got, "🔹 Paris")
	}

	if gotReq.Model != "test-model" {
		t.Errorf("model = %q", gotReq.Model)
	}
	if gotReq.Stream {
		t.Error("stream should be false")
	}
	if !strings.Contains(gotReq.Prompt, "User Request: What is the capital of France?") {
		t.Errorf("prompt missing user request: %q", gotReq.Prompt)
	}
	if !strings.Contains(gotReq.Prompt, "direct response assistant") {
		t.Error("system prompt not prepended")
	}
	if gotReq.Options["num_predict"] != float64(256) {
		t.Errorf("num_predict = %v", gotReq.Options["num_predict"])
	}
}

func TestOllamaGenerateErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewOllamaProvider(OllamaConfig{APIBase: srv.URL})
	_, err := p.Generate(context.Background(), "hi")
	if err == nil {
		t.Fatal("expected error on non-200 status")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("error should carry status: %v", err)
	}
}

func TestOllamaCheckConnection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := NewOllamaProvider(OllamaConfig{APIBase: srv.URL})
	if !p.CheckConnection(context.Background()) {
		t.Error("expected reachable endpoint")
	}

	srv.Close()
	if p.CheckConnection(context.Background()) {
		t.Error("expected unreachable endpoint after close")
	}
}

func TestOllamaDefaults(t *testing.T) {
	p := NewOllamaProvider(OllamaConfig{})
	if p.apiBase != ollamaDefaultBase {
		t.Errorf("apiBase = %q", p.apiBase)
	}
	if p.model != ollamaDefaultModel {
		t.Errorf("model = %q", p.model)
	}
}
