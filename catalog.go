package svgcompare

import (
	"context"
	"fmt"
	"sort"

	gateway "github.com/sashabaranov/go-openai"

	"github.com/Rmohid/svg-model-compare/providers/openrouter"
	"github.com/Rmohid/svg-model-compare/roster"
)

// Catalog queries the gateway's model listing. Used by the check command to
// catch roster typos and retired identifiers before they cost a paid call.
type Catalog struct {
	client *gateway.Client
}

func NewCatalog(apiKey, apiBase string) (*Catalog, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openrouter api key is required")
	}
	if apiBase == "" {
		apiBase = openrouter.DefaultAPIBase
	}
	cfg := gateway.DefaultConfig(apiKey)
	cfg.BaseURL = apiBase
	return &Catalog{client: gateway.NewClientWithConfig(cfg)}, nil
}

// CheckReport lists the gateway-routed roster identifiers the gateway does
// not currently carry. Known counts how many identifiers the gateway
// advertises in total.
type CheckReport struct {
	Known   int
	Missing []roster.ModelSpec
}

// Check compares the roster against the gateway catalog. Models on other
// backends are ignored; the gateway cannot vouch for them.
func (c *Catalog) Check(ctx context.Context, models []roster.ModelSpec) (*CheckReport, error) {
	list, err := c.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("list gateway models: %w", err)
	}

	known := make(map[string]bool, len(list.Models))
	for _, m := range list.Models {
		known[m.ID] = true
	}

	report := &CheckReport{Known: len(list.Models)}
	for _, spec := range models {
		if spec.Backend != "" && spec.Backend != roster.BackendOpenRouter {
			continue
		}
		if !known[spec.ID] {
			report.Missing = append(report.Missing, spec)
		}
	}
	sort.Slice(report.Missing, func(i, j int) bool {
		return report.Missing[i].Name < report.Missing[j].Name
	})
	return report, nil
}
