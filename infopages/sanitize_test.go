package infopages

import (
	"strings"
	"testing"
)

func TestSanitizeStripsScripts(t *testing.T) {
	out := Sanitize(`<p>hola</p><script>alert(1)</script>`)
	if strings.Contains(out, "script") || strings.Contains(out, "alert") {
		t.Errorf("script survived sanitization: %q", out)
	}
	if !strings.Contains(out, "<p>hola</p>") {
		t.Errorf("allowed markup was stripped: %q", out)
	}
}

func TestSanitizeStripsEventHandlers(t *testing.T) {
	out := Sanitize(`<p onclick="steal()">texto</p>`)
	if strings.Contains(out, "onclick") {
		t.Errorf("event handler survived: %q", out)
	}
}

func TestSanitizeKeepsAllowedSchemes(t *testing.T) {
	out := Sanitize(`<a href="tel:+5491169624211">llamar</a>`)
	if !strings.Contains(out, `tel:+5491169624211`) {
		t.Errorf("tel link was stripped: %q", out)
	}

	out = Sanitize(`<a href="javascript:alert(1)">x</a>`)
	if strings.Contains(out, "javascript") {
		t.Errorf("javascript scheme survived: %q", out)
	}
}

func TestSanitizeKeepsHeadingsAndLists(t *testing.T) {
	in := `<h3>Rituales del tango</h3><ul><li>Cabeceo</li><li>Abrazo</li></ul>`
	out := Sanitize(in)
	for _, frag := range []string{"<h3>", "<ul>", "<li>Cabeceo</li>"} {
		if !strings.Contains(out, frag) {
			t.Errorf("expected %q in output, got %q", frag, out)
		}
	}
}

func TestSanitizeStripsIframes(t *testing.T) {
	out := Sanitize(`<iframe src="https://evil.example"></iframe><p>ok</p>`)
	if strings.Contains(out, "iframe") {
		t.Errorf("iframe survived: %q", out)
	}
}
