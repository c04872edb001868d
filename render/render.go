// Package render emits the static comparison page: one card per model,
// grouped by roster category, with the inline SVG each model produced.
package render

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"time"

	"github.com/Rmohid/svg-model-compare/cache"
	"github.com/Rmohid/svg-model-compare/roster"
)

type card struct {
	Name      string
	Released  string
	ElapsedMS float64
	// SVG is injected unescaped: the rendered artifact is the raw model
	// output, that is the whole point of the page.
	SVG template.HTML
	Err string
}

func (c card) Seconds() string {
	return fmt.Sprintf("%.1fs", c.ElapsedMS/1000)
}

type section struct {
	Title string
	Cards []card
}

type page struct {
	Title       string
	Total       int
	Succeeded   int
	GeneratedAt string
	Sections    []section
}

// Page writes the comparison document. Models missing from every category
// are not shown; failed or absent entries become explicit error cards.
func Page(w io.Writer, cfg *roster.Config, entries map[string]cache.Entry, generatedAt time.Time) error {
	data := page{
		Title:       "Animated SVG: Pelican Riding a Bicycle",
		GeneratedAt: generatedAt.Format("2006-01-02 15:04"),
	}

	counted := map[string]bool{}
	for _, cat := range cfg.Categories {
		sec := section{Title: cat.Title}
		for _, name := range cat.Models {
			spec, ok := cfg.Lookup(name)
			if !ok {
				continue
			}
			c := card{Name: spec.Name, Released: spec.Released}
			entry, ok := entries[name]
			switch {
			case !ok:
				c.Err = "not fetched yet"
			case entry.OK:
				c.SVG = template.HTML(entry.SVG)
				c.ElapsedMS = entry.ElapsedMS
			default:
				c.Err = entry.Err
				c.ElapsedMS = entry.ElapsedMS
			}
			sec.Cards = append(sec.Cards, c)

			if !counted[name] {
				counted[name] = true
				data.Total++
				if ok && entry.OK {
					data.Succeeded++
				}
			}
		}
		if len(sec.Cards) > 0 {
			data.Sections = append(data.Sections, sec)
		}
	}

	return pageTmpl.Execute(w, data)
}

// WriteFile renders the page to path.
func WriteFile(path string, cfg *roster.Config, entries map[string]cache.Entry, generatedAt time.Time) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output %q: %w", path, err)
	}
	defer f.Close()

	if err := Page(f, cfg, entries, generatedAt); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}
