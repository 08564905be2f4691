package normative

import (
	"strings"
	"testing"
)

func TestExtractBody_InnerMarkup(t *testing.T) {
	markup := `<html><head><title>t</title></head><body><h1>Ley</h1><p>Texto</p></body></html>`
	got, err := extractBody([]byte(markup))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "<h1>Ley</h1><p>Texto</p>" {
		t.Errorf("unexpected body content: %q", got)
	}
}

func TestExtractBody_ReplacesSoftHyphens(t *testing.T) {
	markup := `<body><p>resolu&shy;ción</p></body>`
	got, err := extractBody([]byte(markup))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(got, "­") || strings.Contains(got, "&shy;") {
		t.Errorf("soft hyphen not replaced: %q", got)
	}
	if !strings.Contains(got, "resolu-ción") {
		t.Errorf("expected plain hyphen, got %q", got)
	}
}

func TestExtractBody_FragmentGetsImplicitBody(t *testing.T) {
	// The parser synthesizes html/body for fragments, so bare markup
	// still extracts.
	got, err := extractBody([]byte(`<p>suelto</p>`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "<p>suelto</p>" {
		t.Errorf("unexpected content: %q", got)
	}
}

func TestExtractBody_EmptyInput(t *testing.T) {
	got, err := extractBody(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty content, got %q", got)
	}
}
