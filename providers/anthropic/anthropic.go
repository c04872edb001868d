// Package anthropic generates completions through the Anthropic Messages
// API directly, for models not routed through the gateway.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/lyricat/goutils/structs"

	"github.com/Rmohid/svg-model-compare/gen"
	"github.com/Rmohid/svg-model-compare/internal/diag"
	"github.com/Rmohid/svg-model-compare/internal/httputil"
)

const (
	DefaultAPIBase = "https://api.anthropic.com"
	apiVersion     = "2023-06-01"

	defaultMaxTokens = 8192
)

type Config struct {
	APIKey  string
	BaseURL string
	Debug   bool
}

type Provider struct {
	cfg Config
}

func New(cfg Config) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic api key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultAPIBase
	}
	return &Provider{cfg: cfg}, nil
}

type messagesRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature *float64  `json:"temperature,omitempty"`
	TopK        *int      `json:"top_k,omitempty"`
	Metadata    *metadata `json:"metadata,omitempty"`
}

type message struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type metadata struct {
	UserID string `json:"user_id,omitempty"`
}

type messagesResponse struct {
	Content []contentPart `json:"content"`
	Model   string        `json:"model"`
}

func (p *Provider) Generate(ctx context.Context, req gen.Request) (string, error) {
	if req.Model == "" {
		return "", fmt.Errorf("model is required")
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return "", fmt.Errorf("prompt is required")
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	body := messagesRequest{
		Model: req.Model,
		Messages: []message{
			{Role: "user", Content: []contentPart{{Type: "text", Text: req.Prompt}}},
		},
		MaxTokens:   maxTokens,
		Temperature: req.Temperature,
	}
	applyOptions(&body, req.Options)

	data, err := json.Marshal(body)
	if err != nil {
		return "", err
	}
	diag.LogText(p.cfg.Debug, "anthropic.generate.request", string(data))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.BaseURL+"/v1/messages", bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", p.cfg.APIKey)
	httpReq.Header.Set("anthropic-version", apiVersion)

	resp, err := httputil.DefaultClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respData, err := httputil.ReadBody(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("anthropic api error: status %d: %s", resp.StatusCode, strings.TrimSpace(string(respData)))
	}
	diag.LogText(p.cfg.Debug, "anthropic.generate.response", string(respData))

	var out messagesResponse
	if err := json.Unmarshal(respData, &out); err != nil {
		return "", fmt.Errorf("decode anthropic response: %w", err)
	}

	var parts []string
	for _, c := range out.Content {
		if c.Type == "text" && c.Text != "" {
			parts = append(parts, c.Text)
		}
	}
	text := strings.Join(parts, "")
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("model %q returned an empty completion", req.Model)
	}
	return text, nil
}

func applyOptions(body *messagesRequest, opts structs.JSONMap) {
	if body == nil || len(opts) == 0 {
		return
	}
	opt := &opts
	if opt.HasKey("top_k") {
		if top := int(opt.GetInt64("top_k")); top > 0 {
			body.TopK = &top
		}
	}
	if opt.HasKey("user_id") {
		if userID := strings.TrimSpace(opt.GetString("user_id")); userID != "" {
			body.Metadata = &metadata{UserID: userID}
		}
	}
}
