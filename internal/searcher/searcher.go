// Package searcher answers keyword queries against a loaded index: it
// tokenizes the query, merges the posting lists of its terms, ranks the
// matching documents by summed weight and attaches a snippet to each.
package searcher

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/indexer/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/searcher/merger"
	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/searcher/ranker"
	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/searcher/snippet"
	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/searcher/stopwords"
	apperrors "github.com/Adithya-Monish-Kumar-K/docsearch/pkg/errors"
)

// Result is one ranked document.
type Result struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Desc  string `json:"desc"`
}

// Response is the outcome of Execute. Total counts every matching document
// even when Results is cut to a limit.
type Response struct {
	Query   string   `json:"query"`
	Terms   []string `json:"terms"`
	Total   int      `json:"total"`
	Results []Result `json:"results"`
}

// Searcher is safe for concurrent use once the index is no longer being
// built.
type Searcher struct {
	idx    *index.Index
	tok    tokenizer.Tokenizer
	stop   stopwords.Set
	logger *slog.Logger
}

func New(idx *index.Index, tok tokenizer.Tokenizer, stop stopwords.Set) *Searcher {
	return &Searcher{
		idx:    idx,
		tok:    tok,
		stop:   stop,
		logger: slog.Default().With("component", "searcher"),
	}
}

// Search returns every matching document, best first.
func (s *Searcher) Search(query string) ([]Result, error) {
	resp, err := s.Execute(query, 0)
	if err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// Terms returns the query terms that take part in matching.
func (s *Searcher) Terms(query string) ([]string, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	tokens, err := s.tok.Tokenize(query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	return s.stop.Filter(tokens), nil
}

// Execute runs query and returns at most limit results; limit <= 0 returns
// all of them. A documentId missing from the forward index is returned as
// an error since it means the two structures disagree.
func (s *Searcher) Execute(query string, limit int) (*Response, error) {
	resp := &Response{Query: query, Terms: []string{}, Results: []Result{}}
	terms, err := s.Terms(query)
	if err != nil {
		return nil, err
	}
	if len(terms) == 0 {
		return resp, nil
	}
	resp.Terms = terms

	lists := make([]index.PostingList, 0, len(terms))
	for _, term := range terms {
		if postings := s.idx.Inverted.Postings(term); len(postings) > 0 {
			lists = append(lists, postings)
		}
	}
	merged := merger.Merge(lists)
	ranker.ByWeight(merged)
	resp.Total = len(merged)

	top := ranker.Top(merged, limit)
	resp.Results = make([]Result, 0, len(top))
	for _, p := range top {
		rec, err := s.idx.Forward.Get(p.DocumentID)
		if err != nil {
			return nil, fmt.Errorf("resolving posting for document %d: %w", p.DocumentID, err)
		}
		resp.Results = append(resp.Results, Result{
			Title: rec.Title,
			URL:   rec.URL,
			Desc:  snippet.Generate(rec.Content, terms),
		})
	}
	s.logger.Debug("query executed",
		"query", query,
		"terms", terms,
		"matched", resp.Total,
		"returned", len(resp.Results),
	)
	return resp, nil
}

// Documents reports how many documents the index holds.
func (s *Searcher) Documents() int {
	return s.idx.Forward.Len()
}
