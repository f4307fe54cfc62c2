// Package tokenizer splits text into ordered, lower-cased word tokens. It is
// shared by the index builder and the query engine so that both sides agree
// on what a term is.
package tokenizer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/words"
	"github.com/kljensen/snowball"
	"golang.org/x/text/unicode/norm"

	apperrors "github.com/Adithya-Monish-Kumar-K/docsearch/pkg/errors"
)

// Tokenizer turns text into an ordered sequence of terms.
type Tokenizer interface {
	Tokenize(text string) ([]string, error)
}

// Analyzer is the default Tokenizer: NFKC normalisation, UAX#29 word
// segmentation, lower-casing and optional English stemming.
type Analyzer struct {
	stem bool
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithStemming enables snowball English stemming of every token.
func WithStemming(enabled bool) Option {
	return func(a *Analyzer) { a.stem = enabled }
}

func New(opts ...Option) *Analyzer {
	a := &Analyzer{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Tokenize returns the word tokens of text in order. Punctuation and
// whitespace segments are dropped.
func (a *Analyzer) Tokenize(text string) ([]string, error) {
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("%w: input is not valid UTF-8", apperrors.ErrTokenization)
	}
	segs := words.FromString(norm.NFKC.String(text))
	tokens := make([]string, 0, len(text)/6)
	for segs.Next() {
		seg := segs.Value()
		if !isWord(seg) {
			continue
		}
		tok := strings.ToLower(seg)
		if a.stem {
			stemmed, err := snowball.Stem(tok, "english", false)
			if err != nil {
				return nil, fmt.Errorf("%w: stemming %q: %v", apperrors.ErrTokenization, tok, err)
			}
			if stemmed != "" {
				tok = stemmed
			}
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

func isWord(seg string) bool {
	for _, r := range seg {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// Counts tokenizes text and returns how often each term occurs.
func Counts(t Tokenizer, text string) (map[string]int, error) {
	tokens, err := t.Tokenize(text)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		counts[tok]++
	}
	return counts, nil
}
