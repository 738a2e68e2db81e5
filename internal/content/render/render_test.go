package render

import (
	"strings"
	"testing"
)

func TestHTML_RendersMarkdown(t *testing.T) {
	out, err := HTML("# Titulo\n\nUn **parrafo** con [enlace](https://modtok.cl).")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "<h1") {
		t.Fatalf("expected a heading, got %q", out)
	}
	if !strings.Contains(out, "<strong>parrafo</strong>") {
		t.Fatalf("expected bold text, got %q", out)
	}
	if !strings.Contains(out, `href="https://modtok.cl"`) {
		t.Fatalf("expected the link to survive, got %q", out)
	}
}

func TestHTML_StripsScript(t *testing.T) {
	out, err := HTML("hola <script>alert('x')</script> mundo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, "<script") {
		t.Fatalf("script tag survived sanitization: %q", out)
	}
}

func TestHTML_GFMTable(t *testing.T) {
	out, err := HTML("| a | b |\n|---|---|\n| 1 | 2 |")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "<table") {
		t.Fatalf("expected GFM table rendering, got %q", out)
	}
}
