// Package merger combines the posting lists of several query terms into one
// posting per matching document.
package merger

import (
	"container/heap"
	"sort"

	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/indexer/index"
)

// Merge sorts each list by documentId and performs a k-way merge over them
// with a min-heap of list cursors. Postings for the same document coming
// from different lists are summed into one. The output is ordered by
// documentId. The input lists are sorted in place.
func Merge(lists []index.PostingList) index.PostingList {
	h := make(cursorHeap, 0, len(lists))
	total := 0
	for i, list := range lists {
		if len(list) == 0 {
			continue
		}
		sort.SliceStable(list, func(a, b int) bool {
			return list[a].DocumentID < list[b].DocumentID
		})
		h = append(h, cursor{list: list, listIdx: i})
		total += len(list)
	}
	heap.Init(&h)

	out := make(index.PostingList, 0, total)
	for h.Len() > 0 {
		c := &h[0]
		p := c.list[c.pos]
		if n := len(out); n > 0 && out[n-1].DocumentID == p.DocumentID {
			out[n-1].Weight += p.Weight
		} else {
			out = append(out, p)
		}
		c.pos++
		if c.pos == len(c.list) {
			heap.Pop(&h)
		} else {
			heap.Fix(&h, 0)
		}
	}
	return out
}

type cursor struct {
	list    index.PostingList
	pos     int
	listIdx int
}

func (c cursor) head() int { return c.list[c.pos].DocumentID }

type cursorHeap []cursor

func (h cursorHeap) Len() int { return len(h) }

func (h cursorHeap) Less(i, j int) bool {
	if h[i].head() != h[j].head() {
		return h[i].head() < h[j].head()
	}
	return h[i].listIdx < h[j].listIdx
}

func (h cursorHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *cursorHeap) Push(x any) {
	*h = append(*h, x.(cursor))
}

func (h *cursorHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
