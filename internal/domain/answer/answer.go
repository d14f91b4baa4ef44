// Package answer holds the value types exchanged between source adapters and
// the fact resolver.
package answer

import "strings"

// Origin identifies which kind of source produced an answer.
type Origin string

// Origin constants.
const (
	Encyclopedia Origin = "encyclopedia"
	News         Origin = "news"
)

// Detail controls how much a source is asked to return.
type Detail int

// Detail levels.
const (
	Brief Detail = iota
	Detailed
)

func (d Detail) String() string {
	if d == Detailed {
		return "detailed"
	}
	return "brief"
}

// DetailFor maps the classifier's detailed flag to a Detail.
func DetailFor(detailed bool) Detail {
	if detailed {
		return Detailed
	}
	return Brief
}

// SourceResult is the outcome of one adapter lookup: Found or NotFound.
// A Found result always carries a summary.
type SourceResult struct {
	found       bool
	summary     string
	citationURL string
}

// Found creates a found result. A blank summary yields NotFound.
func Found(summary, citationURL string) SourceResult {
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return NotFound()
	}
	return SourceResult{found: true, summary: summary, citationURL: strings.TrimSpace(citationURL)}
}

// NotFound creates an empty result.
func NotFound() SourceResult { return SourceResult{} }

// IsFound reports whether the adapter produced an answer.
func (r SourceResult) IsFound() bool { return r.found }

// Summary returns the answer text.
func (r SourceResult) Summary() string { return r.summary }

// CitationURL returns the reference link.
func (r SourceResult) CitationURL() string { return r.citationURL }

// Resolved is the reconciled output of the fact resolver: an answer tagged
// with its origin, or NoAnswer.
type Resolved struct {
	origin Origin
	result SourceResult
}

// NewResolved tags a found result with its origin. A NotFound result yields NoAnswer.
func NewResolved(origin Origin, r SourceResult) Resolved {
	if !r.IsFound() {
		return NoAnswer()
	}
	return Resolved{origin: origin, result: r}
}

// NoAnswer is the resolver result when every source came back empty.
func NoAnswer() Resolved { return Resolved{} }

// Found reports whether an answer was resolved.
func (r Resolved) Found() bool { return r.result.IsFound() }

// Origin returns the source kind that won.
func (r Resolved) Origin() Origin { return r.origin }

// Summary returns the answer text.
func (r Resolved) Summary() string { return r.result.Summary() }

// CitationURL returns the reference link.
func (r Resolved) CitationURL() string { return r.result.CitationURL() }
