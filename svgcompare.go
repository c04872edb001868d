// Package svgcompare turns one roster model into a cache entry: it
// dispatches the fixed prompt to the model's backend, measures latency, and
// extracts the SVG from whatever came back. Failures are classified into
// the entry, never returned as errors, so one bad model cannot stop a run.
package svgcompare

import (
	"context"
	"fmt"
	"time"

	"github.com/Rmohid/svg-model-compare/cache"
	"github.com/Rmohid/svg-model-compare/extract"
	"github.com/Rmohid/svg-model-compare/gen"
	"github.com/Rmohid/svg-model-compare/providers/anthropic"
	"github.com/Rmohid/svg-model-compare/providers/bedrock"
	"github.com/Rmohid/svg-model-compare/providers/openrouter"
	"github.com/Rmohid/svg-model-compare/roster"
)

const DefaultTimeout = 300 * time.Second

// Config holds resolved credentials and request defaults. Only the
// backends the roster actually uses need credentials.
type Config struct {
	OpenRouterAPIKey  string
	OpenRouterAPIBase string
	Referer           string

	AnthropicAPIKey  string
	AnthropicAPIBase string

	AwsKey    string
	AwsSecret string
	AwsRegion string

	MaxTokens   int
	Temperature *float64
	Timeout     time.Duration
	Debug       bool
}

// generator is one backend's raw text generation.
type generator interface {
	Generate(ctx context.Context, req gen.Request) (string, error)
}

type Client struct {
	cfg        Config
	timeout    time.Duration
	generators map[string]generator
}

// New builds a client for the given set of backends. Missing credentials
// for a needed backend fail here, before any model is fetched or paid for.
func New(cfg Config, backends map[string]bool) (*Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		cfg:        cfg,
		timeout:    timeout,
		generators: map[string]generator{},
	}

	for backend := range backends {
		switch backend {
		case roster.BackendOpenRouter:
			p, err := openrouter.New(openrouter.Config{
				APIKey:  cfg.OpenRouterAPIKey,
				BaseURL: cfg.OpenRouterAPIBase,
				Referer: cfg.Referer,
				Debug:   cfg.Debug,
			})
			if err != nil {
				return nil, err
			}
			c.generators[backend] = p

		case roster.BackendAnthropic:
			p, err := anthropic.New(anthropic.Config{
				APIKey:  cfg.AnthropicAPIKey,
				BaseURL: cfg.AnthropicAPIBase,
				Debug:   cfg.Debug,
			})
			if err != nil {
				return nil, err
			}
			c.generators[backend] = p

		case roster.BackendBedrock:
			if cfg.AwsKey == "" || cfg.AwsSecret == "" {
				return nil, fmt.Errorf("aws key and secret are required for bedrock models")
			}
			c.generators[backend] = bedrock.New(bedrock.Config{
				AwsKey:    cfg.AwsKey,
				AwsSecret: cfg.AwsSecret,
				AwsRegion: cfg.AwsRegion,
				Debug:     cfg.Debug,
			})

		default:
			return nil, fmt.Errorf("backend %q not supported", backend)
		}
	}

	return c, nil
}

// Generate performs one paid fetch and classifies the outcome. The returned
// entry is successful only when the response contained an SVG document.
func (c *Client) Generate(ctx context.Context, spec roster.ModelSpec, prompt string) cache.Entry {
	start := time.Now()
	text, err := c.generateText(ctx, spec, prompt)
	entry := cache.Entry{
		ElapsedMS: float64(time.Since(start)) / float64(time.Millisecond),
		FetchedAt: time.Now().UTC(),
	}

	if err != nil {
		entry.Err = err.Error()
		return entry
	}

	svg, ok := extract.SVG(text)
	if !ok {
		entry.Err = "no <svg> tag found in response"
		return entry
	}

	entry.SVG = svg
	entry.OK = true
	return entry
}

func (c *Client) generateText(ctx context.Context, spec roster.ModelSpec, prompt string) (string, error) {
	backend := spec.Backend
	if backend == "" {
		backend = roster.BackendOpenRouter
	}
	g, ok := c.generators[backend]
	if !ok {
		return "", fmt.Errorf("backend %q not configured for model %q", backend, spec.Name)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	return g.Generate(ctx, gen.Request{
		Model:       spec.ID,
		Prompt:      prompt,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
		Options:     spec.JSONOptions(),
	})
}
