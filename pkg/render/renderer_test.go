package render_test

import (
	"strings"
	"testing"

	"github.com/quillhq/inkwell/pkg/render"
)

func TestToHTML_Basic(t *testing.T) {
	r := render.New()

	html, err := r.ToHTML([]byte("# Title\n\nSome **bold** text.\n"))
	if err != nil {
		t.Fatalf("ToHTML failed: %v", err)
	}
	out := string(html)
	if !strings.Contains(out, "<h1") {
		t.Errorf("expected h1, got %q", out)
	}
	if !strings.Contains(out, "<strong>bold</strong>") {
		t.Errorf("expected bold span, got %q", out)
	}
}

func TestToHTML_GFMTable(t *testing.T) {
	r := render.New()

	body := "| a | b |\n|---|---|\n| 1 | 2 |\n"
	html, err := r.ToHTML([]byte(body))
	if err != nil {
		t.Fatalf("ToHTML failed: %v", err)
	}
	if !strings.Contains(string(html), "<table>") {
		t.Errorf("GFM tables should render, got %q", html)
	}
}

func TestTOC_Outline(t *testing.T) {
	r := render.New()

	body := []byte("# First\n\ntext\n\n## Second Part\n\n### Deep\n")
	entries, err := r.TOC(body)
	if err != nil {
		t.Fatalf("TOC failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d: %+v", len(entries), entries)
	}
	if entries[0].Level != 1 || entries[0].Text != "First" {
		t.Errorf("first entry: %+v", entries[0])
	}
	if entries[1].Level != 2 || entries[1].Text != "Second Part" {
		t.Errorf("second entry: %+v", entries[1])
	}
	if entries[1].ID == "" {
		t.Error("auto heading IDs should populate entry IDs")
	}
}

func TestTOC_IgnoresFencedHeadings(t *testing.T) {
	r := render.New()

	body := []byte("# Real\n\n```\n# fake heading\n```\n")
	entries, err := r.TOC(body)
	if err != nil {
		t.Fatalf("TOC failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("headings inside fences must not appear: %+v", entries)
	}
}

func TestHighlight(t *testing.T) {
	out, err := render.Highlight(`fmt.Println("hi")`, "go")
	if err != nil {
		t.Fatalf("Highlight failed: %v", err)
	}
	if !strings.Contains(out, "<pre") {
		t.Errorf("expected pre block, got %q", out)
	}
	if !strings.Contains(out, "class=") {
		t.Error("expected class-based highlighting output")
	}

	// Unknown language falls back to plaintext instead of failing.
	out, err = render.Highlight("plain text", "klingon")
	if err != nil {
		t.Fatalf("fallback Highlight failed: %v", err)
	}
	if !strings.Contains(out, "plain text") {
		t.Errorf("source lost in fallback: %q", out)
	}
}

func TestKnownLanguage(t *testing.T) {
	for _, lang := range []string{"go", "python", "js"} {
		if !render.KnownLanguage(lang) {
			t.Errorf("expected %q to be known", lang)
		}
	}
	for _, lang := range []string{"", "  ", "klingon"} {
		if render.KnownLanguage(lang) {
			t.Errorf("expected %q to be unknown", lang)
		}
	}
}
