package services

import (
	"strings"
	"testing"
)

func TestSanitizeDescriptionKeepsFormatting(t *testing.T) {
	in := "<p>Hello <strong>world</strong></p><ul><li>item</li></ul>"
	out := SanitizeDescription(in)
	for _, tag := range []string{"<p>", "<strong>", "<ul>", "<li>"} {
		if !strings.Contains(out, tag) {
			t.Errorf("sanitized output lost %s: %q", tag, out)
		}
	}
}

func TestSanitizeDescriptionStripsScripts(t *testing.T) {
	in := `<p>ok</p><script>alert("xss")</script><img src=x onerror="steal()">`
	out := SanitizeDescription(in)
	if strings.Contains(out, "<script") || strings.Contains(out, "onerror") {
		t.Errorf("sanitized output still contains active content: %q", out)
	}
	if !strings.Contains(out, "<p>ok</p>") {
		t.Errorf("sanitized output lost safe content: %q", out)
	}
}
