package keyword

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/blevesearch/bleve/analysis"
	"github.com/blevesearch/bleve/analysis/lang/en"
	unicodetok "github.com/blevesearch/bleve/analysis/tokenizer/unicode"
)

// DefaultMaxWords caps the number of content words in a ranked phrase.
const DefaultMaxWords = 4

// queryStopWords are conversational fillers that never make a useful lookup key.
var queryStopWords = []string{
	"tell", "please", "explain", "describe", "know", "give", "show", "want",
	"detail", "details", "detailed", "information", "info", "full", "brief",
	"summary", "latest", "news", "about", "something", "anything", "thing",
	"bistarito",
}

// connectorWords may sit inside a phrase between two content words,
// as in "president of bangladesh".
var connectorWords = []string{"of"}

// Ranker picks the top keyphrase of a text. Candidate phrases are runs of
// content words between stop words and punctuation; each word scores
// degree/frequency and a phrase scores the sum of its words.
type Ranker struct {
	tokenizer  analysis.Tokenizer
	stop       analysis.TokenMap
	connectors map[string]bool
	maxWords   int
}

// NewRanker creates a Ranker over the English stop word list plus extra.
func NewRanker(extra ...string) (*Ranker, error) {
	stop, err := en.TokenMapConstructor(nil, nil)
	if err != nil {
		return nil, fmt.Errorf("load english stop words: %w", err)
	}
	for _, w := range queryStopWords {
		stop[w] = true
	}
	for _, w := range extra {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			stop[w] = true
		}
	}

	connectors := make(map[string]bool, len(connectorWords))
	for _, w := range connectorWords {
		connectors[w] = true
	}

	return &Ranker{
		tokenizer:  unicodetok.NewUnicodeTokenizer(),
		stop:       stop,
		connectors: connectors,
		maxWords:   DefaultMaxWords,
	}, nil
}

type candidate struct {
	words   []string // content words
	surface []string // content words plus interior connectors
	numeric bool
}

func (c candidate) phrase() string { return strings.Join(c.surface, " ") }

// Top returns the highest scoring phrase, or "" when the text has none.
// Ties go to the phrase that appears first.
func (r *Ranker) Top(text string) string {
	cands := r.candidates(text)
	if len(cands) == 0 {
		return ""
	}

	freq := make(map[string]int)
	degree := make(map[string]int)
	for _, c := range cands {
		for _, w := range c.words {
			freq[w]++
			degree[w] += len(c.words)
		}
	}

	var (
		best      string
		bestScore float64
		seen      = make(map[string]bool, len(cands))
	)
	for _, c := range cands {
		p := c.phrase()
		if seen[p] {
			continue
		}
		seen[p] = true

		var score float64
		for _, w := range c.words {
			score += float64(degree[w]) / float64(freq[w])
		}
		if score > bestScore {
			best, bestScore = p, score
		}
	}
	return best
}

func (r *Ranker) candidates(text string) []candidate {
	input := []byte(strings.ToLower(text))
	stream := r.tokenizer.Tokenize(input)

	var (
		out     []candidate
		cur     *candidate
		pending string
		prevEnd = -1
	)
	flush := func() {
		if cur != nil && len(cur.words) > 0 && len(cur.words) <= r.maxWords && !cur.numeric {
			out = append(out, *cur)
		}
		cur = nil
		pending = ""
	}

	for _, tok := range stream {
		if prevEnd >= 0 && hasBreak(input[prevEnd:tok.Start]) {
			flush()
		}
		prevEnd = tok.End

		term := string(tok.Term)
		if r.stop[term] {
			if cur != nil && pending == "" && r.connectors[term] {
				pending = term
				continue
			}
			flush()
			continue
		}

		numeric := tok.Type == analysis.Numeric
		if cur == nil {
			cur = &candidate{numeric: true}
		} else if pending != "" {
			cur.surface = append(cur.surface, pending)
			pending = ""
		}
		cur.words = append(cur.words, term)
		cur.surface = append(cur.surface, term)
		cur.numeric = cur.numeric && numeric
	}
	flush()
	return out
}

// hasBreak reports whether the gap between two tokens holds anything but whitespace.
func hasBreak(gap []byte) bool {
	for len(gap) > 0 {
		r, size := utf8.DecodeRune(gap)
		if !unicode.IsSpace(r) {
			return true
		}
		gap = gap[size:]
	}
	return false
}
