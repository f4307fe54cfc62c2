// Package index holds the two in-memory structures the search engine is
// built on: the forward index (documentId -> DocumentRecord) and the
// inverted index (term -> postings).
package index

// Posting is the weight of one term in one document.
type Posting struct {
	DocumentID int `json:"documentId"`
	Weight     int `json:"weight"`
}

type PostingList []Posting

// DocumentRecord is the stored metadata of one indexed document.
// DocumentID equals the record's position in the forward index.
type DocumentRecord struct {
	DocumentID int    `json:"documentId"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	Content    string `json:"content"`
}
