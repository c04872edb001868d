// Package openrouter generates completions through an OpenAI-compatible
// gateway. OpenRouter is the default target, but any endpoint speaking the
// chat-completions dialect works via Config.BaseURL.
package openrouter

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"github.com/Rmohid/svg-model-compare/gen"
	"github.com/Rmohid/svg-model-compare/internal/diag"
	"github.com/lyricat/goutils/structs"
)

const (
	DefaultAPIBase = "https://openrouter.ai/api/v1"

	// OpenRouter uses the Referer header for app attribution.
	defaultReferer = "https://localhost"
)

type Config struct {
	APIKey  string
	BaseURL string
	Referer string
	Debug   bool
}

type Provider struct {
	client openai.Client
	debug  bool
}

func New(cfg Config) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter api key is required")
	}
	base := cfg.BaseURL
	if base == "" {
		base = DefaultAPIBase
	}
	referer := cfg.Referer
	if referer == "" {
		referer = defaultReferer
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(base),
		option.WithHeader("HTTP-Referer", referer),
	}
	return &Provider{
		client: openai.NewClient(opts...),
		debug:  cfg.Debug,
	}, nil
}

// Generate sends the prompt to one model and returns the raw completion
// text. An empty completion is an error: it carries nothing to render but
// still cost a call.
func (p *Provider) Generate(ctx context.Context, req gen.Request) (string, error) {
	params, err := buildParams(req)
	if err != nil {
		return "", err
	}
	diag.LogJSON(p.debug, "openrouter.generate.request", params)

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if raw := resp.RawJSON(); raw != "" {
		diag.LogText(p.debug, "openrouter.generate.response", raw)
	}

	text := ""
	for _, choice := range resp.Choices {
		text += choice.Message.Content
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("model %q returned an empty completion", req.Model)
	}
	return text, nil
}

func buildParams(req gen.Request) (openai.ChatCompletionNewParams, error) {
	if req.Model == "" {
		return openai.ChatCompletionNewParams{}, fmt.Errorf("model is required")
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return openai.ChatCompletionNewParams{}, fmt.Errorf("prompt is required")
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(req.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(req.Prompt),
		},
	}
	if req.Temperature != nil {
		params.Temperature = openai.Float(*req.Temperature)
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}
	applyOptions(&params, req.Options)

	return params, nil
}

// applyOptions maps the per-model option passthrough onto request params.
// Keys follow the wire names of the chat-completions dialect.
func applyOptions(params *openai.ChatCompletionNewParams, opts structs.JSONMap) {
	if params == nil || len(opts) == 0 {
		return
	}
	opt := &opts
	if opt.HasKey("seed") {
		params.Seed = openai.Int(opt.GetInt64("seed"))
	}
	if opt.HasKey("top_p") {
		if v := toFloat64((*opt)["top_p"]); v > 0 {
			params.TopP = openai.Float(v)
		}
	}
	if opt.HasKey("max_completion_tokens") {
		if v := opt.GetInt64("max_completion_tokens"); v > 0 {
			params.MaxCompletionTokens = openai.Int(v)
		}
	}
	if opt.HasKey("reasoning_effort") {
		if val := strings.TrimSpace(opt.GetString("reasoning_effort")); val != "" {
			params.ReasoningEffort = shared.ReasoningEffort(val)
		}
	}
	if opt.HasKey("service_tier") {
		if val := strings.TrimSpace(opt.GetString("service_tier")); val != "" {
			params.ServiceTier = openai.ChatCompletionNewParamsServiceTier(val)
		}
	}
}

func toFloat64(val any) float64 {
	switch v := val.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}
