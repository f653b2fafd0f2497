package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewProviderValidation(t *testing.T) {
	if _, err := NewProvider(Config{}); err == nil {
		t.Error("expected error for empty provider")
	}

	if _, err := NewProvider(Config{Provider: "unknown"}); err == nil {
		t.Error("expected error for unknown provider")
	}

	if _, err := NewProvider(Config{Provider: "openai"}); err == nil {
		t.Error("expected error for openai without API key")
	}

	if _, err := NewProvider(Config{Provider: "anthropic"}); err == nil {
		t.Error("expected error for anthropic without API key")
	}

	p, err := NewProvider(Config{Provider: "ollama", Model: "mistral"})
	if err != nil {
		t.Fatalf("ollama provider creation failed: %v", err)
	}
	if p.Name() != "ollama" {
		t.Errorf("Name() = %s, want ollama", p.Name())
	}
}

func TestOllamaComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		var req ollamaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "mistral" {
			t.Errorf("model = %s, want mistral", req.Model)
		}
		if req.Stream {
			t.Error("expected stream=false")
		}

		resp := ollamaResponse{
			Model:    req.Model,
			Response: "  a grounded answer  ",
			Done:     true,
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	p, err := NewOllamaProvider(Config{
		Provider: "ollama",
		Model:    "mistral",
		BaseURL:  server.URL,
	})
	if err != nil {
		t.Fatalf("NewOllamaProvider failed: %v", err)
	}

	got, err := p.Complete(context.Background(), "what is a GNN?")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if got != "a grounded answer" {
		t.Errorf("Complete = %q, want trimmed answer", got)
	}
}

func TestOllamaCompleteAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(ollamaError{Error: "model not found"})
	}))
	defer server.Close()

	p, err := NewOllamaProvider(Config{Provider: "ollama", Model: "missing", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewOllamaProvider failed: %v", err)
	}

	_, err = p.Complete(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error from failing server")
	}
	if !strings.Contains(err.Error(), "model not found") {
		t.Errorf("error should carry the API message, got: %v", err)
	}
}

func TestOllamaCompleteRequiresModel(t *testing.T) {
	p, err := NewOllamaProvider(Config{Provider: "ollama"})
	if err != nil {
		t.Fatalf("NewOllamaProvider failed: %v", err)
	}
	if _, err := p.Complete(context.Background(), "hello"); err == nil {
		t.Error("expected error when no model is configured")
	}
}

func TestAnthropicComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Error("missing x-api-key header")
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Error("missing anthropic-version header")
		}

		resp := anthropicResponse{
			Model: "claude-3-5-sonnet-20241022",
			Content: []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			}{
				{Type: "text", Text: "an answer"},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	p, err := NewAnthropicProvider(Config{
		Provider: "anthropic",
		APIKey:   "test-key",
		BaseURL:  server.URL,
	})
	if err != nil {
		t.Fatalf("NewAnthropicProvider failed: %v", err)
	}

	got, err := p.Complete(context.Background(), "question")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if got != "an answer" {
		t.Errorf("Complete = %q, want %q", got, "an answer")
	}
}
