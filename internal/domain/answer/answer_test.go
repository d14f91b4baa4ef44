package answer

import "testing"

func TestFound(t *testing.T) {
	r := Found("  Dhaka is the capital.  ", " https://example.org ")
	if !r.IsFound() {
		t.Fatal("expected found")
	}
	if r.Summary() != "Dhaka is the capital." {
		t.Errorf("Summary() = %q", r.Summary())
	}
	if r.CitationURL() != "https://example.org" {
		t.Errorf("CitationURL() = %q", r.CitationURL())
	}
}

func TestFound_BlankSummaryIsNotFound(t *testing.T) {
	r := Found("   ", "https://example.org")
	if r.IsFound() {
		t.Fatal("blank summary must not be found")
	}
	if r.CitationURL() != "" {
		t.Errorf("NotFound must be empty, got url %q", r.CitationURL())
	}
}

func TestNewResolved(t *testing.T) {
	r := NewResolved(News, Found("headline: body", "https://news.example/1"))
	if !r.Found() {
		t.Fatal("expected resolved answer")
	}
	if r.Origin() != News {
		t.Errorf("Origin() = %q", r.Origin())
	}
	if r.Summary() != "headline: body" {
		t.Errorf("Summary() = %q", r.Summary())
	}
}

func TestNewResolved_NotFound(t *testing.T) {
	r := NewResolved(Encyclopedia, NotFound())
	if r.Found() {
		t.Fatal("expected NoAnswer")
	}
	if r.Origin() != "" {
		t.Errorf("NoAnswer origin = %q, want empty", r.Origin())
	}
}

func TestDetail(t *testing.T) {
	if DetailFor(true) != Detailed || DetailFor(false) != Brief {
		t.Fatal("DetailFor mapping broken")
	}
	if Detailed.String() != "detailed" || Brief.String() != "brief" {
		t.Errorf("String() = %q / %q", Detailed.String(), Brief.String())
	}
}
