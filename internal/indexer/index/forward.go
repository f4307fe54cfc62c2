package index

import (
	"fmt"
	"sync"

	apperrors "github.com/Adithya-Monish-Kumar-K/docsearch/pkg/errors"
)

// ForwardIndex is an append-only sequence of DocumentRecords addressed by
// their sequential id.
type ForwardIndex struct {
	mu      sync.RWMutex
	records []DocumentRecord
}

func NewForwardIndex() *ForwardIndex {
	return &ForwardIndex{}
}

// Append assigns the next id and stores the record in one critical
// section, so an id is never visible before its record is.
func (f *ForwardIndex) Append(title, url, content string) DocumentRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec := DocumentRecord{
		DocumentID: len(f.records),
		Title:      title,
		URL:        url,
		Content:    content,
	}
	f.records = append(f.records, rec)
	return rec
}

func (f *ForwardIndex) Get(id int) (DocumentRecord, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if id < 0 || id >= len(f.records) {
		return DocumentRecord{}, fmt.Errorf("%w: id %d (forward index holds %d)",
			apperrors.ErrDocumentNotFound, id, len(f.records))
	}
	return f.records[id], nil
}

func (f *ForwardIndex) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.records)
}

// Records returns a copy of all records in id order.
func (f *ForwardIndex) Records() []DocumentRecord {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]DocumentRecord, len(f.records))
	copy(out, f.records)
	return out
}
