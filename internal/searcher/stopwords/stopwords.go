// Package stopwords holds the set of query terms that are too common to be
// worth matching.
package stopwords

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Set is a set of lower-case stopwords. The zero value is empty.
type Set map[string]struct{}

var english = []string{
	"a", "an", "and", "are", "as", "at",
	"be", "by", "for", "from", "has", "he",
	"in", "is", "it", "its", "of", "on",
	"or", "that", "the", "to", "was", "were",
	"will", "with", "this", "but", "they",
	"have", "had", "what", "when", "where",
	"who", "which", "their", "if", "each",
	"do", "not", "no", "so", "can",
}

// Default returns a common English stopword set.
func Default() Set {
	s := make(Set, len(english))
	for _, w := range english {
		s[w] = struct{}{}
	}
	return s
}

// Load reads a stopword file with one word per line. Blank lines and lines
// starting with # are ignored.
func Load(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening stopword file: %w", err)
	}
	defer f.Close()
	s, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading stopword file %s: %w", path, err)
	}
	return s, nil
}

func Read(r io.Reader) (Set, error) {
	s := make(Set)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.ToLower(strings.TrimSpace(sc.Text()))
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		s[w] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s Set) Contains(term string) bool {
	_, ok := s[term]
	return ok
}

// Filter returns the terms that are not stopwords, in order.
func (s Set) Filter(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if !s.Contains(t) {
			out = append(out, t)
		}
	}
	return out
}
