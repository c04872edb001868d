package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	svgcompare "github.com/Rmohid/svg-model-compare"
	"github.com/Rmohid/svg-model-compare/roster"
)

// Default env var names used when the config file does not name its own.
const (
	defaultOpenRouterKeyRef = "OPENROUTER_API_KEY"
	defaultAnthropicKeyRef  = "ANTHROPIC_API_KEY"
	defaultAwsKeyRef        = "AWS_ACCESS_KEY_ID"
	defaultAwsSecretRef     = "AWS_SECRET_ACCESS_KEY"
)

// resolveCredentials turns the config's credential references into a client
// config. Only backends in use are resolved, and a missing env var for a
// needed backend fails here, before any network call.
func resolveCredentials(cfg *roster.Config, backends map[string]bool) (svgcompare.Config, error) {
	out := svgcompare.Config{
		OpenRouterAPIBase: cfg.OpenRouterAPIBase,
		AwsRegion:         cfg.AwsRegion,
		MaxTokens:         cfg.MaxTokens,
		Temperature:       cfg.Temperature,
		Timeout:           time.Duration(cfg.TimeoutSeconds) * time.Second,
	}

	if backends[roster.BackendOpenRouter] {
		key, err := envRef(cfg.OpenRouterAPIKeyRef, defaultOpenRouterKeyRef)
		if err != nil {
			return svgcompare.Config{}, err
		}
		out.OpenRouterAPIKey = key
	}

	if backends[roster.BackendAnthropic] {
		key, err := envRef(cfg.AnthropicAPIKeyRef, defaultAnthropicKeyRef)
		if err != nil {
			return svgcompare.Config{}, err
		}
		out.AnthropicAPIKey = key
	}

	if backends[roster.BackendBedrock] {
		key, err := envRef(cfg.AwsKeyRef, defaultAwsKeyRef)
		if err != nil {
			return svgcompare.Config{}, err
		}
		secret, err := envRef(cfg.AwsSecretRef, defaultAwsSecretRef)
		if err != nil {
			return svgcompare.Config{}, err
		}
		out.AwsKey = key
		out.AwsSecret = secret
	}

	return out, nil
}

func envRef(ref, fallback string) (string, error) {
	name := strings.TrimSpace(ref)
	if name == "" {
		name = fallback
	}
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return "", fmt.Errorf("env %s is empty", name)
	}
	return value, nil
}
