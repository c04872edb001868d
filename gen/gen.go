// Package gen runs the cache-backed fetch loop: for every roster model it
// either reuses the stored result or issues exactly one generation call,
// then persists what it learned. Remote calls cost money, so a model with a
// successful stored entry is never called again.
package gen

import (
	"context"
	"fmt"

	"github.com/lyricat/goutils/structs"

	"github.com/Rmohid/svg-model-compare/cache"
	"github.com/Rmohid/svg-model-compare/roster"
)

// Request is one raw generation call as the provider layer sees it.
type Request struct {
	Model       string
	Prompt      string
	MaxTokens   int
	Temperature *float64
	Options     structs.JSONMap
}

// Client turns one roster model into a cache entry. Implementations measure
// latency and classify failures themselves; a failed call is a failed entry,
// not an error. Every invocation consumes API quota.
type Client interface {
	Generate(ctx context.Context, spec roster.ModelSpec, prompt string) cache.Entry
}

type EventType string

const (
	EventModelCached EventType = "model_cached"
	EventModelStart  EventType = "model_start"
	EventModelDone   EventType = "model_done"
)

type Event struct {
	Type  EventType
	Model roster.ModelSpec
	Entry cache.Entry
}

type Config struct {
	Prompt  string
	OnEvent func(Event)
}

// Result is the per-model outcome of one loop run.
type Result struct {
	Model  roster.ModelSpec
	Cached bool
	Entry  cache.Entry
}

type Report struct {
	Results []Result
	// Entries is the merged mapping after the run, hits carried forward
	// unchanged plus everything fetched this time.
	Entries  map[string]cache.Entry
	Hits     int
	Calls    int
	Failures int
}

// Run executes the loop over models in order. Hits are skipped without any
// client call; misses (absent or previously failed) get exactly one call
// each, and a failure never stops the remaining models. The store is
// flushed after every successful fetch so an interrupted long run does not
// re-pay for models it already completed, and once more at the end so
// failure records survive too. A run that issues no calls writes nothing.
func Run(ctx context.Context, models []roster.ModelSpec, store *cache.Store, client Client, cfg Config) (*Report, error) {
	if len(models) == 0 {
		return nil, fmt.Errorf("models are required")
	}
	if client == nil {
		return nil, fmt.Errorf("client is required")
	}

	entries, err := store.Load()
	if err != nil {
		return nil, err
	}

	report := &Report{
		Results: make([]Result, 0, len(models)),
		Entries: entries,
	}

	for _, spec := range models {
		if cache.IsHit(entries, spec.Name) {
			report.Hits++
			result := Result{Model: spec, Cached: true, Entry: entries[spec.Name]}
			report.Results = append(report.Results, result)
			emit(cfg.OnEvent, Event{Type: EventModelCached, Model: spec, Entry: result.Entry})
			continue
		}

		emit(cfg.OnEvent, Event{Type: EventModelStart, Model: spec})
		entry := client.Generate(ctx, spec, cfg.Prompt)
		report.Calls++

		entries[spec.Name] = entry
		report.Results = append(report.Results, Result{Model: spec, Entry: entry})
		emit(cfg.OnEvent, Event{Type: EventModelDone, Model: spec, Entry: entry})

		if entry.OK {
			if err := store.Save(entries); err != nil {
				return report, fmt.Errorf("flush cache after %q: %w", spec.Name, err)
			}
		} else {
			report.Failures++
		}
	}

	if report.Calls > 0 {
		if err := store.Save(entries); err != nil {
			return report, fmt.Errorf("save cache: %w", err)
		}
	}

	return report, nil
}

func emit(fn func(Event), event Event) {
	if fn != nil {
		fn(event)
	}
}
