package markdown

import (
	"strings"
	"testing"
)

func TestToHTMLBasics(t *testing.T) {
	html, err := ToHTML("# Title\n\nSome **bold** text.")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, "<h1") {
		t.Errorf("expected heading, got %q", html)
	}
	if !strings.Contains(html, "<strong>bold</strong>") {
		t.Errorf("expected bold text, got %q", html)
	}
}

func TestToHTMLRawHTMLPassThrough(t *testing.T) {
	html, err := ToHTML(`<div class="legacy">old content</div>`)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, `<div class="legacy">`) {
		t.Errorf("expected raw HTML preserved, got %q", html)
	}
}
