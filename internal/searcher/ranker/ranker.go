// Package ranker orders merged postings for presentation.
package ranker

import (
	"sort"

	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/indexer/index"
)

// ByWeight sorts postings by descending weight. Ties keep their merge
// order, which is ascending documentId.
func ByWeight(postings index.PostingList) {
	sort.SliceStable(postings, func(i, j int) bool {
		return postings[i].Weight > postings[j].Weight
	})
}

// Top returns at most limit postings. limit <= 0 means no limit.
func Top(postings index.PostingList, limit int) index.PostingList {
	if limit > 0 && len(postings) > limit {
		return postings[:limit]
	}
	return postings
}
