package index

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	apperrors "github.com/Adithya-Monish-Kumar-K/docsearch/pkg/errors"
)

func TestForwardIndexSequentialIDs(t *testing.T) {
	f := NewForwardIndex()
	for i := 0; i < 5; i++ {
		rec := f.Append(fmt.Sprintf("t%d", i), fmt.Sprintf("u%d", i), "c")
		if rec.DocumentID != i {
			t.Fatalf("append %d got id %d", i, rec.DocumentID)
		}
	}
	got, err := f.Get(3)
	if err != nil {
		t.Fatalf("Get(3): %v", err)
	}
	want := DocumentRecord{DocumentID: 3, Title: "t3", URL: "u3", Content: "c"}
	if got != want {
		t.Errorf("Get(3) = %+v, want %+v", got, want)
	}
}

func TestForwardIndexGetOutOfRange(t *testing.T) {
	f := NewForwardIndex()
	f.Append("a", "b", "c")
	for _, id := range []int{-1, 1, 100} {
		if _, err := f.Get(id); !errors.Is(err, apperrors.ErrDocumentNotFound) {
			t.Errorf("Get(%d) err = %v, want ErrDocumentNotFound", id, err)
		}
	}
}

func TestForwardIndexConcurrentAppend(t *testing.T) {
	f := NewForwardIndex()
	const n = 200
	var wg sync.WaitGroup
	ids := make(chan int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- f.Append("t", "u", "c").DocumentID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int]bool)
	for id := range ids {
		if seen[id] {
			t.Fatalf("id %d assigned twice", id)
		}
		seen[id] = true
	}
	if len(seen) != n || f.Len() != n {
		t.Fatalf("got %d ids, len %d, want %d", len(seen), f.Len(), n)
	}
	for i, rec := range f.Records() {
		if rec.DocumentID != i {
			t.Fatalf("record at %d has id %d", i, rec.DocumentID)
		}
	}
}

func TestInvertedIndexAddAndPostings(t *testing.T) {
	ix := NewInvertedIndex()
	ix.Add(2, map[string]int{"widget": 12, "gadget": 1})
	ix.Add(0, map[string]int{"widget": 3})

	got := ix.Postings("widget")
	want := PostingList{{DocumentID: 2, Weight: 12}, {DocumentID: 0, Weight: 3}}
	if len(got) != len(want) {
		t.Fatalf("postings = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("postings[%d] = %v, want %v (insertion order)", i, got[i], want[i])
		}
	}
	if ix.Postings("missing") != nil {
		t.Error("missing term should return nil")
	}
	if terms := ix.Terms(); len(terms) != 2 || terms[0] != "gadget" {
		t.Errorf("Terms() = %v", terms)
	}
}

func TestInvertedIndexPostingsIsCopy(t *testing.T) {
	ix := NewInvertedIndex()
	ix.Add(0, map[string]int{"a": 1})
	ix.Add(1, map[string]int{"a": 2})

	list := ix.Postings("a")
	list[0].Weight = 99
	list[0], list[1] = list[1], list[0]

	again := ix.Postings("a")
	if again[0].DocumentID != 0 || again[0].Weight != 1 {
		t.Errorf("stored list mutated through copy: %v", again)
	}
}

func TestRestoreValidatesPositions(t *testing.T) {
	records := []DocumentRecord{{DocumentID: 0, Title: "a"}, {DocumentID: 2, Title: "b"}}
	if _, err := Restore(records, nil); !errors.Is(err, apperrors.ErrMalformedArtifact) {
		t.Fatalf("err = %v, want ErrMalformedArtifact", err)
	}

	records[1].DocumentID = 1
	terms := map[string]PostingList{"x": {{DocumentID: 5, Weight: 1}}}
	if _, err := Restore(records, terms); !errors.Is(err, apperrors.ErrMalformedArtifact) {
		t.Fatalf("dangling posting err = %v, want ErrMalformedArtifact", err)
	}

	terms["x"][0].DocumentID = 1
	idx, err := Restore(records, terms)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if idx.Forward.Len() != 2 || len(idx.Inverted.Postings("x")) != 1 {
		t.Errorf("restored index has %d docs, postings %v", idx.Forward.Len(), idx.Inverted.Postings("x"))
	}
}
