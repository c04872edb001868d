// Package extract pulls an SVG document out of raw model output. Models
// frequently wrap the answer in markdown fences or surround it with prose
// even when told not to.
package extract

import (
	"regexp"
	"strings"
)

var (
	fenceOpen = regexp.MustCompile("```(?:svg|xml|html)?\\s*\n?")
	svgBlock  = regexp.MustCompile(`(?is)(<svg[\s\S]*?</svg>)`)
)

// StripFences removes markdown code fences, keeping their content.
func StripFences(text string) string {
	text = fenceOpen.ReplaceAllString(text, "")
	return strings.ReplaceAll(text, "```", "")
}

// SVG returns the first <svg>...</svg> block in text, after fence
// stripping. ok is false when no such block exists.
func SVG(text string) (svg string, ok bool) {
	m := svgBlock.FindStringSubmatch(StripFences(text))
	if m == nil {
		return "", false
	}
	return m[1], true
}
