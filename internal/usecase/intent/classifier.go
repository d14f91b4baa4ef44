package intent

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/kailas-cloud/onimo/internal/domain"
	domintent "github.com/kailas-cloud/onimo/internal/domain/intent"
	"github.com/kailas-cloud/onimo/internal/domain/session"
)

// Classifier decides what a query is asking for. Checks run in priority order
// and the first match wins.
type Classifier struct {
	toBangla  []string
	toEnglish []string
	greetings []string
	creator   []string
	detail    []string
}

// New creates a Classifier over the given cue sets.
func New(p Phrases) *Classifier {
	return &Classifier{
		toBangla:  normalizePhrases(p.SwitchToBangla),
		toEnglish: normalizePhrases(p.SwitchToEnglish),
		greetings: normalizePhrases(p.Greetings),
		creator:   normalizePhrases(p.Creator),
		detail:    lowerAll(p.Detail),
	}
}

// Classify inspects the original query and its normalized form.
// A language switch is applied to sess before Classify returns.
func (c *Classifier) Classify(sess *session.State, query, normalized string) domintent.Intent {
	canon := wordForm(normalized)
	orig := wordForm(query)

	switch {
	case containsAnyPhrase(canon, c.toBangla):
		return c.switchTo(sess, domain.LanguageBangla)
	case containsAnyPhrase(canon, c.toEnglish):
		return c.switchTo(sess, domain.LanguageEnglish)
	case containsAnyPhrase(canon, c.greetings):
		return domintent.NewGreeting()
	case containsAnyPhrase(canon, c.creator) || containsAnyPhrase(orig, c.creator):
		return domintent.NewCreatorQuery()
	default:
		return domintent.NewFactQuery(c.WantsDetail(query))
	}
}

// WantsDetail reports whether the untranslated query carries a detail cue.
func (c *Classifier) WantsDetail(query string) bool {
	q := fold(query)
	for _, cue := range c.detail {
		if strings.Contains(q, cue) {
			return true
		}
	}
	return false
}

func (c *Classifier) switchTo(sess *session.State, target domain.Language) domintent.Intent {
	if sess != nil {
		// target is always supported, Set cannot fail here.
		_, _ = sess.Set(target)
	}
	return domintent.NewLanguageSwitch(target)
}

// fold lower-cases s in NFC. Bengali য় arrives either as U+09DF or as
// য + nukta; NFC maps both to the same sequence.
func fold(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}

// wordForm folds s and collapses every run of non-word runes into one
// space, padded on both ends so phrases can be matched on word boundaries.
func wordForm(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte(' ')
	space := true
	for _, r := range fold(s) {
		if isWordRune(r) {
			b.WriteRune(r)
			space = false
			continue
		}
		if !space {
			b.WriteByte(' ')
			space = true
		}
	}
	if !space {
		b.WriteByte(' ')
	}
	return b.String()
}

// Bengali vowel signs and virama are combining marks, so marks count as word runes.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

func containsAnyPhrase(form string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(form, p) {
			return true
		}
	}
	return false
}

func normalizePhrases(phrases []string) []string {
	out := make([]string, 0, len(phrases))
	for _, p := range phrases {
		if f := wordForm(p); strings.TrimSpace(f) != "" {
			out = append(out, f)
		}
	}
	return out
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = fold(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
