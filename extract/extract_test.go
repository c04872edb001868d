package extract

import (
	"strings"
	"testing"
)

func TestSVGPlain(t *testing.T) {
	svg, ok := SVG(`<svg viewBox="0 0 10 10"><circle r="4"/></svg>`)
	if !ok {
		t.Fatalf("expected svg to be found")
	}
	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("unexpected extraction: %q", svg)
	}
}

func TestSVGInsideFence(t *testing.T) {
	for _, input := range []string{
		"```svg\n<svg></svg>\n```",
		"```xml\n<svg></svg>\n```",
		"```html\n<svg></svg>\n```",
		"```\n<svg></svg>\n```",
	} {
		svg, ok := SVG(input)
		if !ok {
			t.Fatalf("no svg found in %q", input)
		}
		if svg != "<svg></svg>" {
			t.Fatalf("fence not stripped, got %q from %q", svg, input)
		}
	}
}

func TestSVGSurroundedByProse(t *testing.T) {
	input := "Sure! Here is the animated pelican:\n<svg><animate/></svg>\nLet me know if you want changes."
	svg, ok := SVG(input)
	if !ok || svg != "<svg><animate/></svg>" {
		t.Fatalf("got %q ok=%v", svg, ok)
	}
}

func TestSVGCaseInsensitive(t *testing.T) {
	svg, ok := SVG("<SVG><rect/></SVG>")
	if !ok || svg != "<SVG><rect/></SVG>" {
		t.Fatalf("got %q ok=%v", svg, ok)
	}
}

func TestSVGTakesFirstBlock(t *testing.T) {
	svg, ok := SVG("<svg>first</svg><svg>second</svg>")
	if !ok || svg != "<svg>first</svg>" {
		t.Fatalf("got %q ok=%v", svg, ok)
	}
}

func TestSVGAbsent(t *testing.T) {
	for _, input := range []string{"", "I cannot draw images.", "<div>not svg</div>", "<svg>never closed"} {
		if _, ok := SVG(input); ok {
			t.Fatalf("expected no svg in %q", input)
		}
	}
}

func TestStripFencesKeepsContent(t *testing.T) {
	got := StripFences("before ```svg\n<svg/>\n```\nafter")
	if got != "before <svg/>\nafter" {
		t.Fatalf("got %q", got)
	}
}
