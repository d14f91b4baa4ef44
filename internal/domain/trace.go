package domain

import "context"

type traceKey struct{}

// Trace collects pipeline decisions for a single request.
// The handler puts a mutable pointer into the context before calling the pipeline;
// the pipeline writes as it goes; the handler reads it for the canonical log line
// and response headers.
type Trace struct {
	Intent   string
	Keyword  string
	Origin   string
	Language Language
}

// NewContextWithTrace returns a context with an embedded trace collector.
func NewContextWithTrace(ctx context.Context) (context.Context, *Trace) {
	t := &Trace{}
	return context.WithValue(ctx, traceKey{}, t), t
}

// TraceFromContext extracts the trace collector from context. Returns nil if not set.
func TraceFromContext(ctx context.Context) *Trace {
	t, _ := ctx.Value(traceKey{}).(*Trace)
	return t
}

// SetIntent records the classified intent.
func (t *Trace) SetIntent(intent string) {
	if t != nil {
		t.Intent = intent
	}
}

// SetKeyword records the extracted keyword.
func (t *Trace) SetKeyword(keyword string) {
	if t != nil {
		t.Keyword = keyword
	}
}

// SetOrigin records which source produced the answer.
func (t *Trace) SetOrigin(origin string) {
	if t != nil {
		t.Origin = origin
	}
}

// SetLanguage records the language the response was formatted in.
func (t *Trace) SetLanguage(l Language) {
	if t != nil {
		t.Language = l
	}
}
