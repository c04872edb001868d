package roster

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "models.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const validConfig = `
prompt: draw a pelican
openrouter_api_key_ref: OPENROUTER_API_KEY
models:
  - name: Claude Opus 4.6
    id: anthropic/claude-opus-4.6
    released: Feb 2026
  - name: GPT-5.2
    id: openai/gpt-5.2
    released: Dec 2025
  - name: Claude Direct
    id: claude-opus-4-1
    backend: anthropic
    options:
      top_k: 40
categories:
  - title: Anthropic
    models: [Claude Opus 4.6, Claude Direct]
  - title: OpenAI
    models: [GPT-5.2]
`

func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Models) != 3 {
		t.Fatalf("expected 3 models, got %d", len(cfg.Models))
	}
	if cfg.Models[0].Backend != BackendOpenRouter {
		t.Fatalf("default backend not applied: %q", cfg.Models[0].Backend)
	}
	if cfg.MaxTokens != DefaultMaxTokens {
		t.Fatalf("default max_tokens not applied: %d", cfg.MaxTokens)
	}
	if cfg.Temperature == nil || *cfg.Temperature != DefaultTemperature {
		t.Fatalf("default temperature not applied")
	}
	if cfg.TimeoutSeconds != DefaultTimeoutSeconds {
		t.Fatalf("default timeout not applied: %d", cfg.TimeoutSeconds)
	}
}

func TestLoadPreservesOrder(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	names := []string{"Claude Opus 4.6", "GPT-5.2", "Claude Direct"}
	for i, want := range names {
		if cfg.Models[i].Name != want {
			t.Fatalf("model %d: got %q want %q", i, cfg.Models[i].Name, want)
		}
	}
}

func TestLoadRejections(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{
			name: "missing prompt",
			body: "models:\n  - name: A\n    id: a\n",
			want: "prompt is required",
		},
		{
			name: "no models",
			body: "prompt: p\n",
			want: "no models",
		},
		{
			name: "duplicate name",
			body: "prompt: p\nmodels:\n  - name: A\n    id: a\n  - name: A\n    id: b\n",
			want: "duplicate model name",
		},
		{
			name: "missing id",
			body: "prompt: p\nmodels:\n  - name: A\n",
			want: "id is required",
		},
		{
			name: "bad backend",
			body: "prompt: p\nmodels:\n  - name: A\n    id: a\n    backend: azure\n",
			want: "unsupported backend",
		},
		{
			name: "unknown category member",
			body: "prompt: p\nmodels:\n  - name: A\n    id: a\ncategories:\n  - title: T\n    models: [B]\n",
			want: "unknown model",
		},
		{
			name: "model in two categories",
			body: "prompt: p\nmodels:\n  - name: A\n    id: a\ncategories:\n  - title: T1\n    models: [A]\n  - title: T2\n    models: [A]\n",
			want: "appears in categories",
		},
		{
			name: "unknown field",
			body: "prompt: p\nmodel: oops\nmodels:\n  - name: A\n    id: a\n",
			want: "parse config",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestSelect(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	all, err := cfg.Select("")
	if err != nil || len(all) != 3 {
		t.Fatalf("select all: got %d models, err %v", len(all), err)
	}

	one, err := cfg.Select("GPT-5.2")
	if err != nil || len(one) != 1 || one[0].ID != "openai/gpt-5.2" {
		t.Fatalf("select one: got %+v, err %v", one, err)
	}

	if _, err := cfg.Select("nope"); err == nil {
		t.Fatalf("expected error for unknown model")
	}
}

func TestBackends(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	backends := cfg.Backends()
	if !backends[BackendOpenRouter] || !backends[BackendAnthropic] {
		t.Fatalf("unexpected backends: %v", backends)
	}
	if backends[BackendBedrock] {
		t.Fatalf("bedrock should not be reported for this roster")
	}
}

func TestJSONOptions(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	spec, ok := cfg.Lookup("Claude Direct")
	if !ok {
		t.Fatalf("lookup failed")
	}
	opts := spec.JSONOptions()
	if !opts.HasKey("top_k") || opts.GetInt64("top_k") != 40 {
		t.Fatalf("options passthrough lost top_k: %v", opts)
	}
}
