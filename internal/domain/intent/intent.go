package intent

import "github.com/kailas-cloud/onimo/internal/domain"

// Kind is the classified purpose of a query.
type Kind string

// Kind constants.
const (
	LanguageSwitch Kind = "language_switch"
	Greeting       Kind = "greeting"
	CreatorQuery   Kind = "creator_query"
	FactQuery      Kind = "fact_query"
)

// Intent is a tagged variant: Target is set only for LanguageSwitch,
// Detailed only for FactQuery.
type Intent struct {
	kind     Kind
	target   domain.Language
	detailed bool
}

// NewLanguageSwitch creates a LanguageSwitch intent.
func NewLanguageSwitch(target domain.Language) Intent {
	return Intent{kind: LanguageSwitch, target: target}
}

// NewGreeting creates a Greeting intent.
func NewGreeting() Intent { return Intent{kind: Greeting} }

// NewCreatorQuery creates a CreatorQuery intent.
func NewCreatorQuery() Intent { return Intent{kind: CreatorQuery} }

// NewFactQuery creates a FactQuery intent.
func NewFactQuery(detailed bool) Intent {
	return Intent{kind: FactQuery, detailed: detailed}
}

// Kind returns the intent kind.
func (i Intent) Kind() Kind { return i.kind }

// Target returns the requested language of a LanguageSwitch.
func (i Intent) Target() domain.Language { return i.target }

// Detailed reports whether a FactQuery asked for a detailed answer.
func (i Intent) Detailed() bool { return i.detailed }

func (i Intent) String() string {
	switch i.kind {
	case LanguageSwitch:
		return string(i.kind) + ":" + string(i.target)
	case FactQuery:
		if i.detailed {
			return string(i.kind) + ":detailed"
		}
	}
	return string(i.kind)
}
