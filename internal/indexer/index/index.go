package index

import (
	"fmt"

	apperrors "github.com/Adithya-Monish-Kumar-K/docsearch/pkg/errors"
)

// Index bundles the forward and inverted index of one build. Each
// structure has its own lock; there is no lock spanning both, so during a
// build a record may be visible before its postings are.
type Index struct {
	Forward  *ForwardIndex
	Inverted *InvertedIndex
}

func New() *Index {
	return &Index{
		Forward:  NewForwardIndex(),
		Inverted: NewInvertedIndex(),
	}
}

// Restore rebuilds an Index from persisted data. records must be dense and
// in id order, and every posting must reference an existing record.
func Restore(records []DocumentRecord, terms map[string]PostingList) (*Index, error) {
	for i, rec := range records {
		if rec.DocumentID != i {
			return nil, fmt.Errorf("%w: record at position %d has documentId %d",
				apperrors.ErrMalformedArtifact, i, rec.DocumentID)
		}
	}
	for term, list := range terms {
		for _, p := range list {
			if p.DocumentID < 0 || p.DocumentID >= len(records) {
				return nil, fmt.Errorf("%w: term %q references unknown documentId %d",
					apperrors.ErrMalformedArtifact, term, p.DocumentID)
			}
		}
	}

	idx := New()
	idx.Forward.records = make([]DocumentRecord, len(records))
	copy(idx.Forward.records, records)
	for term, list := range terms {
		cp := make(PostingList, len(list))
		copy(cp, list)
		idx.Inverted.terms[term] = cp
	}
	return idx, nil
}
