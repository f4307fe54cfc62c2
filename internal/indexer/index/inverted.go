package index

import (
	"sort"
	"sync"
)

// InvertedIndex maps a term to the postings of every document containing
// it. Lists keep insertion order; callers that need documentId order sort
// the copy returned by Postings.
type InvertedIndex struct {
	mu    sync.RWMutex
	terms map[string]PostingList
}

func NewInvertedIndex() *InvertedIndex {
	return &InvertedIndex{
		terms: make(map[string]PostingList),
	}
}

// Add appends one posting per term for docID. The weights of a document are
// computed before the call, so a term never gets two postings for the same
// document.
func (ix *InvertedIndex) Add(docID int, weights map[string]int) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	for term, weight := range weights {
		ix.terms[term] = append(ix.terms[term], Posting{
			DocumentID: docID,
			Weight:     weight,
		})
	}
}

// Postings returns a copy of the list for term, or nil when it is absent.
func (ix *InvertedIndex) Postings(term string) PostingList {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	list, ok := ix.terms[term]
	if !ok {
		return nil
	}
	out := make(PostingList, len(list))
	copy(out, list)
	return out
}

// Terms returns every indexed term in lexical order.
func (ix *InvertedIndex) Terms() []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	terms := make([]string, 0, len(ix.terms))
	for term := range ix.terms {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

func (ix *InvertedIndex) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.terms)
}

// Snapshot returns a deep copy of the term map for persistence.
func (ix *InvertedIndex) Snapshot() map[string]PostingList {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	out := make(map[string]PostingList, len(ix.terms))
	for term, list := range ix.terms {
		cp := make(PostingList, len(list))
		copy(cp, list)
		out[term] = cp
	}
	return out
}
