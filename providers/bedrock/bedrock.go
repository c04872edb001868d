// Package bedrock generates completions through AWS Bedrock, for models
// reachable only inside AWS. The payload uses the anthropic dialect Bedrock
// expects for Claude-family models.
package bedrock

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/bedrockruntime"
	"github.com/aws/aws-sdk-go/service/bedrockruntime/bedrockruntimeiface"
	"github.com/lyricat/goutils/structs"

	"github.com/Rmohid/svg-model-compare/gen"
	"github.com/Rmohid/svg-model-compare/internal/diag"
)

const (
	anthropicVersion = "bedrock-2023-05-31"
	defaultRegion    = "us-east-1"
	defaultMaxTokens = 10000
)

type Config struct {
	AwsKey    string
	AwsSecret string
	AwsRegion string
	Debug     bool
}

type Provider struct {
	client bedrockruntimeiface.BedrockRuntimeAPI
	debug  bool
}

func New(cfg Config) *Provider {
	region := cfg.AwsRegion
	if region == "" {
		region = defaultRegion
	}
	sess := session.Must(session.NewSession(&aws.Config{
		Region:      aws.String(region),
		Credentials: credentials.NewStaticCredentials(cfg.AwsKey, cfg.AwsSecret, ""),
	}))
	return &Provider{
		client: bedrockruntime.New(sess),
		debug:  cfg.Debug,
	}
}

type responseContent struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type invokeResponse struct {
	Content []responseContent `json:"content"`
}

func (p *Provider) Generate(ctx context.Context, req gen.Request) (string, error) {
	if req.Model == "" {
		return "", fmt.Errorf("bedrock model id is required")
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return "", fmt.Errorf("prompt is required")
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	payload := map[string]any{
		"anthropic_version": anthropicVersion,
		"max_tokens":        maxTokens,
		"messages": []map[string]any{
			{
				"role":    "user",
				"content": []map[string]any{{"type": "text", "text": req.Prompt}},
			},
		},
	}
	if req.Temperature != nil {
		payload["temperature"] = *req.Temperature
	}
	applyOptions(payload, req.Options)

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	diag.LogText(p.debug, "bedrock.generate.request", string(body))

	resp, err := p.client.InvokeModelWithContext(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(req.Model),
		Body:        body,
		Accept:      aws.String("application/json"),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", err
	}
	diag.LogText(p.debug, "bedrock.generate.response", string(resp.Body))

	var out invokeResponse
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return "", fmt.Errorf("decode bedrock response: %w", err)
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

func applyOptions(payload map[string]any, opts structs.JSONMap) {
	if payload == nil || len(opts) == 0 {
		return
	}
	opt := &opts
	if opt.HasKey("top_k") {
		if top := int(opt.GetInt64("top_k")); top > 0 {
			payload["top_k"] = top
		}
	}
}
