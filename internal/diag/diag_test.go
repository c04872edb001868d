package diag

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func captureLog(t *testing.T, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(prev)
	fn()
	return buf.String()
}

func TestLogJSONDisabledWritesNothing(t *testing.T) {
	out := captureLog(t, func() {
		LogJSON(false, "openrouter.generate.request", map[string]string{"model": "m"})
	})
	if out != "" {
		t.Fatalf("expected no output, got %q", out)
	}
}

func TestLogJSONEnabled(t *testing.T) {
	out := captureLog(t, func() {
		LogJSON(true, "openrouter.generate.request", map[string]string{"model": "m"})
	})
	if !strings.Contains(out, `openrouter.generate.request: {"model":"m"}`) {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestLogJSONMarshalError(t *testing.T) {
	out := captureLog(t, func() {
		LogJSON(true, "label", func() {})
	})
	if !strings.Contains(out, "<marshal error") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestLogText(t *testing.T) {
	out := captureLog(t, func() {
		LogText(true, "anthropic.generate.response", `{"content":[]}`)
	})
	if !strings.Contains(out, `anthropic.generate.response: {"content":[]}`) {
		t.Fatalf("unexpected output: %q", out)
	}
}
