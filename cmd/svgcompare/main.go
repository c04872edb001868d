package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	svgcompare "github.com/Rmohid/svg-model-compare"
	"github.com/Rmohid/svg-model-compare/cache"
	"github.com/Rmohid/svg-model-compare/gen"
	"github.com/Rmohid/svg-model-compare/render"
	"github.com/Rmohid/svg-model-compare/roster"
)

const (
	defaultConfigPath = "models.yaml"
	defaultCachePath  = "cache.json"
	defaultOutputPath = "index.html"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("svgcompare", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	configPath := fs.String("config", defaultConfigPath, "path to roster yaml")
	cachePath := fs.String("cache", defaultCachePath, "path to cache file")
	outputPath := fs.String("output", defaultOutputPath, "path to rendered html page")
	timeoutSeconds := fs.Int("timeout", 0, "per-model timeout in seconds (overrides config)")
	debug := fs.Bool("debug", false, "log raw request/response payloads")

	if err := fs.Parse(args); err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) == 0 {
		return usageError()
	}

	switch rest[0] {
	case "run":
		var selected string
		switch len(rest) {
		case 1:
			// fetch all misses
		case 2:
			selected = rest[1]
		default:
			return usageError()
		}
		return runGenerate(*configPath, *cachePath, *outputPath, selected, *timeoutSeconds, *debug)

	case "render":
		if len(rest) != 1 {
			return usageError()
		}
		return runRender(*configPath, *cachePath, *outputPath)

	case "check":
		if len(rest) != 1 {
			return usageError()
		}
		return runCheck(*configPath)

	case "clean":
		if len(rest) != 1 {
			return usageError()
		}
		return runClean(*cachePath)

	default:
		return usageError()
	}
}

func runGenerate(configPath, cachePath, outputPath, selected string, timeoutSeconds int, debug bool) error {
	cfg, err := roster.Load(configPath)
	if err != nil {
		return err
	}
	models, err := cfg.Select(selected)
	if err != nil {
		return err
	}

	backends := backendsOf(models)
	clientCfg, err := resolveCredentials(cfg, backends)
	if err != nil {
		return err
	}
	if timeoutSeconds > 0 {
		clientCfg.Timeout = time.Duration(timeoutSeconds) * time.Second
	}
	clientCfg.Debug = debug

	client, err := svgcompare.New(clientCfg, backends)
	if err != nil {
		return err
	}

	store := cache.NewStore(cachePath)
	report, err := gen.Run(context.Background(), models, store, client, gen.Config{
		Prompt:  cfg.Prompt,
		OnEvent: printEvent,
	})
	if err != nil {
		return err
	}

	if err := render.WriteFile(outputPath, cfg, report.Entries, time.Now()); err != nil {
		return err
	}
	printSummary(report, outputAbs(outputPath))
	return nil
}

func runRender(configPath, cachePath, outputPath string) error {
	cfg, err := roster.Load(configPath)
	if err != nil {
		return err
	}
	entries, err := cache.NewStore(cachePath).Load()
	if err != nil {
		return err
	}
	if err := render.WriteFile(outputPath, cfg, entries, time.Now()); err != nil {
		return err
	}
	fmt.Printf("Output: %s\n", outputAbs(outputPath))
	return nil
}

func runCheck(configPath string) error {
	cfg, err := roster.Load(configPath)
	if err != nil {
		return err
	}

	key, err := envRef(cfg.OpenRouterAPIKeyRef, defaultOpenRouterKeyRef)
	if err != nil {
		return err
	}
	catalog, err := svgcompare.NewCatalog(key, cfg.OpenRouterAPIBase)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	report, err := catalog.Check(ctx, cfg.Models)
	if err != nil {
		return err
	}
	printCheckReport(report)
	if len(report.Missing) > 0 {
		return fmt.Errorf("%d roster model(s) unknown to the gateway", len(report.Missing))
	}
	return nil
}

func runClean(cachePath string) error {
	store := cache.NewStore(cachePath)
	if err := store.Remove(); err != nil {
		return err
	}
	fmt.Printf("Removed %s; next run regenerates every model\n", cachePath)
	return nil
}

func backendsOf(models []roster.ModelSpec) map[string]bool {
	out := map[string]bool{}
	for _, m := range models {
		backend := m.Backend
		if backend == "" {
			backend = roster.BackendOpenRouter
		}
		out[backend] = true
	}
	return out
}

func outputAbs(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

func usageError() error {
	return fmt.Errorf("usage: svgcompare [--config models.yaml] [--cache cache.json] [--output index.html] [--timeout seconds] [--debug] run [model_name] | render | check | clean")
}
