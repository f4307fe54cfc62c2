// Package snippet cuts a short description out of a document around the
// first matching query term and wraps every matched term in emphasis tags.
package snippet

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const (
	// Lead is how many characters of context precede the first match.
	Lead = 60
	// Width is the maximum length of a snippet before the ellipsis.
	Width    = 160
	Ellipsis = "..."

	OpenTag  = "<i>"
	CloseTag = "</i>"
)

// Generate returns the snippet of content for terms. Offsets are counted
// in runes.
func Generate(content string, terms []string) string {
	text := []rune(content)
	lower := make([]rune, len(text))
	for i, r := range text {
		lower[i] = fold(r)
	}
	needles := make([][]rune, 0, len(terms))
	for _, t := range terms {
		if t == "" {
			continue
		}
		n := []rune(t)
		for i, r := range n {
			n[i] = fold(r)
		}
		needles = append(needles, n)
	}

	pos := -1
	for _, n := range needles {
		if p := indexWord(lower, n, 0); p >= 0 {
			pos = p
			break
		}
	}

	if pos < 0 {
		if len(text) > Width {
			return string(text[:Width]) + Ellipsis
		}
		return content
	}

	start := max(0, pos-Lead)
	end := start + Width
	truncated := end < len(text)
	if !truncated {
		end = len(text)
	}

	out := highlight(text, lower, needles, start, end)
	if truncated {
		out += Ellipsis
	}
	return out
}

type span struct{ start, end int }

// highlight wraps every whole-word match that lies entirely inside
// text[start:end]. Spans are collected against the unmodified text and
// applied in one pass, so inserted tags are never matched again.
func highlight(text, lower []rune, needles [][]rune, start, end int) string {
	var spans []span
	for _, n := range needles {
		for p := indexWord(lower, n, start); p >= 0 && p+len(n) <= end; p = indexWord(lower, n, p+1) {
			spans = append(spans, span{p, p + len(n)})
		}
	}
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].end > spans[j].end
	})

	var b strings.Builder
	cur := start
	for _, s := range spans {
		if s.start < cur {
			continue
		}
		b.WriteString(string(text[cur:s.start]))
		b.WriteString(OpenTag)
		b.WriteString(string(text[s.start:s.end]))
		b.WriteString(CloseTag)
		cur = s.end
	}
	b.WriteString(string(text[cur:end]))
	return b.String()
}

// indexWord returns the first offset >= from where needle occurs in hay as
// a whole word, or -1.
func indexWord(hay, needle []rune, from int) int {
	if len(needle) == 0 {
		return -1
	}
	for i := from; i+len(needle) <= len(hay); i++ {
		if !hasPrefix(hay[i:], needle) {
			continue
		}
		if i > 0 && isWordRune(hay[i-1]) {
			continue
		}
		if j := i + len(needle); j < len(hay) && isWordRune(hay[j]) {
			continue
		}
		return i
	}
	return -1
}

func hasPrefix(s, prefix []rune) bool {
	for i, r := range prefix {
		if s[i] != r {
			return false
		}
	}
	return true
}

// fold maps r to the lower case of its NFKC form when that form is a
// single rune, so fullwidth and compatibility letters match the terms the
// tokenizer produced. Runes that expand, like ligatures, are only
// lower-cased; the folded text must stay aligned rune for rune with the
// original.
func fold(r rune) rune {
	if r < utf8.RuneSelf {
		return unicode.ToLower(r)
	}
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	if nf := norm.NFKC.Bytes(buf[:n]); utf8.RuneCount(nf) == 1 {
		r, _ = utf8.DecodeRune(nf)
	}
	return unicode.ToLower(r)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
