// Package roster loads the comparison configuration: the fixed prompt, the
// list of models to query, and the category layout of the rendered page.
// The loaded value is immutable input for the fetch loop; nothing mutates it.
package roster

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/lyricat/goutils/structs"
	"gopkg.in/yaml.v3"
)

const (
	BackendOpenRouter = "openrouter"
	BackendAnthropic  = "anthropic"
	BackendBedrock    = "bedrock"
)

const (
	DefaultMaxTokens      = 16000
	DefaultTemperature    = 0.7
	DefaultTimeoutSeconds = 300
)

// ModelSpec identifies one model to compare. Name is the display name and
// the cache key; ID is the identifier the backend understands.
type ModelSpec struct {
	Name     string         `yaml:"name"`
	ID       string         `yaml:"id"`
	Backend  string         `yaml:"backend"`
	Released string         `yaml:"released"`
	Options  map[string]any `yaml:"options"`
}

// JSONOptions returns the per-model option passthrough as a JSONMap for the
// provider layer.
func (m ModelSpec) JSONOptions() structs.JSONMap {
	opts := structs.NewJSONMap()
	for k, v := range m.Options {
		opts.SetValue(k, v)
	}
	return opts
}

// Category is one section of the rendered page; Models lists member display
// names in render order.
type Category struct {
	Title  string   `yaml:"title"`
	Models []string `yaml:"models"`
}

// Config is the full configuration file. Credential fields are references:
// they name environment variables, they never hold secrets themselves.
type Config struct {
	Prompt         string   `yaml:"prompt"`
	MaxTokens      int      `yaml:"max_tokens"`
	Temperature    *float64 `yaml:"temperature"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`

	OpenRouterAPIKeyRef string `yaml:"openrouter_api_key_ref"`
	OpenRouterAPIBase   string `yaml:"openrouter_api_base"`
	AnthropicAPIKeyRef  string `yaml:"anthropic_api_key_ref"`
	AwsKeyRef           string `yaml:"aws_key_ref"`
	AwsSecretRef        string `yaml:"aws_secret_ref"`
	AwsRegion           string `yaml:"aws_region"`

	Models     []ModelSpec `yaml:"models"`
	Categories []Category  `yaml:"categories"`
}

// Load reads and validates a configuration file. Unknown fields are
// rejected so typos fail loudly instead of silently dropping settings.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Prompt) == "" {
		return fmt.Errorf("prompt is required")
	}
	if len(c.Models) == 0 {
		return fmt.Errorf("config has no models")
	}

	seen := map[string]struct{}{}
	for i, m := range c.Models {
		if strings.TrimSpace(m.Name) == "" {
			return fmt.Errorf("models[%d].name is required", i)
		}
		if _, ok := seen[m.Name]; ok {
			return fmt.Errorf("duplicate model name %q", m.Name)
		}
		seen[m.Name] = struct{}{}
		if strings.TrimSpace(m.ID) == "" {
			return fmt.Errorf("models[%d] (%s): id is required", i, m.Name)
		}
		switch m.Backend {
		case "", BackendOpenRouter, BackendAnthropic, BackendBedrock:
		default:
			return fmt.Errorf("models[%d] (%s): unsupported backend %q (supported: %s, %s, %s)",
				i, m.Name, m.Backend, BackendOpenRouter, BackendAnthropic, BackendBedrock)
		}
	}

	assigned := map[string]string{}
	for i, cat := range c.Categories {
		if strings.TrimSpace(cat.Title) == "" {
			return fmt.Errorf("categories[%d].title is required", i)
		}
		for _, name := range cat.Models {
			if _, ok := seen[name]; !ok {
				return fmt.Errorf("category %q references unknown model %q", cat.Title, name)
			}
			if prev, ok := assigned[name]; ok {
				return fmt.Errorf("model %q appears in categories %q and %q", name, prev, cat.Title)
			}
			assigned[name] = cat.Title
		}
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.MaxTokens <= 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.Temperature == nil {
		temp := DefaultTemperature
		c.Temperature = &temp
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = DefaultTimeoutSeconds
	}
	for i := range c.Models {
		if c.Models[i].Backend == "" {
			c.Models[i].Backend = BackendOpenRouter
		}
	}
}

// Select returns the models to fetch: all of them, or just the named one.
func (c *Config) Select(name string) ([]ModelSpec, error) {
	if name == "" {
		return c.Models, nil
	}
	for _, m := range c.Models {
		if m.Name == name {
			return []ModelSpec{m}, nil
		}
	}
	return nil, fmt.Errorf("model %q not found in config", name)
}

// Lookup returns the spec for a display name.
func (c *Config) Lookup(name string) (ModelSpec, bool) {
	for _, m := range c.Models {
		if m.Name == name {
			return m, true
		}
	}
	return ModelSpec{}, false
}

// Backends returns the set of backends the roster actually uses, so callers
// can demand credentials only for those.
func (c *Config) Backends() map[string]bool {
	out := map[string]bool{}
	for _, m := range c.Models {
		backend := m.Backend
		if backend == "" {
			backend = BackendOpenRouter
		}
		out[backend] = true
	}
	return out
}
