package openrouter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lyricat/goutils/structs"

	"github.com/Rmohid/svg-model-compare/gen"
)

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatalf("expected error without api key")
	}
}

func TestBuildParamsMapping(t *testing.T) {
	temp := 0.7
	opts := structs.NewJSONMap()
	opts.SetValue("seed", 7)
	opts.SetValue("top_p", 0.9)
	opts.SetValue("reasoning_effort", "high")

	params, err := buildParams(gen.Request{
		Model:       "anthropic/claude-opus-4.6",
		Prompt:      "draw a pelican",
		MaxTokens:   16000,
		Temperature: &temp,
		Options:     opts,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(params.Model) != "anthropic/claude-opus-4.6" {
		t.Fatalf("model mismatch: %q", params.Model)
	}
	if len(params.Messages) != 1 {
		t.Fatalf("expected a single user message, got %d", len(params.Messages))
	}
	if !params.Temperature.Valid() || params.Temperature.Value != temp {
		t.Fatalf("temperature not mapped")
	}
	if !params.MaxTokens.Valid() || params.MaxTokens.Value != 16000 {
		t.Fatalf("max_tokens not mapped")
	}
	if !params.Seed.Valid() || params.Seed.Value != 7 {
		t.Fatalf("seed passthrough lost")
	}
	if !params.TopP.Valid() || params.TopP.Value != 0.9 {
		t.Fatalf("top_p passthrough lost")
	}
	if string(params.ReasoningEffort) != "high" {
		t.Fatalf("reasoning_effort passthrough lost")
	}
}

func TestBuildParamsValidation(t *testing.T) {
	if _, err := buildParams(gen.Request{Prompt: "p"}); err == nil {
		t.Fatalf("expected error without model")
	}
	if _, err := buildParams(gen.Request{Model: "m"}); err == nil {
		t.Fatalf("expected error without prompt")
	}
}

func TestGenerateRoundTrip(t *testing.T) {
	var gotPath, gotAuth, gotReferer string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotReferer = r.Header.Get("HTTP-Referer")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "gen-1",
			"object": "chat.completion",
			"model": "openai/gpt-5.2",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "<svg></svg>"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 12, "completion_tokens": 34, "total_tokens": 46}
		}`))
	}))
	defer srv.Close()

	p, err := New(Config{APIKey: "test-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	text, err := p.Generate(context.Background(), gen.Request{
		Model:     "openai/gpt-5.2",
		Prompt:    "draw a pelican",
		MaxTokens: 16000,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if text != "<svg></svg>" {
		t.Fatalf("unexpected text: %q", text)
	}
	if !strings.HasSuffix(gotPath, "/chat/completions") {
		t.Fatalf("unexpected path: %q", gotPath)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("auth header: %q", gotAuth)
	}
	if gotReferer != defaultReferer {
		t.Fatalf("referer header: %q", gotReferer)
	}
	if gotBody["model"] != "openai/gpt-5.2" {
		t.Fatalf("request model: %v", gotBody["model"])
	}
	if gotBody["max_tokens"] != float64(16000) {
		t.Fatalf("request max_tokens: %v", gotBody["max_tokens"])
	}
}

func TestGenerateRejectsEmptyCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"gen-2","object":"chat.completion","model":"m","choices":[{"index":0,"message":{"role":"assistant","content":"  "},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	p, err := New(Config{APIKey: "k", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := p.Generate(context.Background(), gen.Request{Model: "m", Prompt: "p"}); err == nil {
		t.Fatalf("expected error for blank completion")
	}
}

func TestGenerateSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited","type":"rate_limit"}}`))
	}))
	defer srv.Close()

	p, err := New(Config{APIKey: "k", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := p.Generate(context.Background(), gen.Request{Model: "m", Prompt: "p"}); err == nil {
		t.Fatalf("expected error for 429 response")
	}
}
