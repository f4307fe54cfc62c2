// Package source enumerates the documents a build indexes. A Source emits
// one Job per document; the job's Extract runs on a builder worker so that
// parsing happens in parallel.
package source

import "context"

// Job is one document waiting to be extracted and indexed.
type Job struct {
	// Name identifies the document in logs (a file path, an offset, a row id).
	Name    string
	Extract func() (title, url, content string, err error)
}

// Source feeds jobs to emit until it runs out or ctx is done. An error from
// emit stops the scan and is returned.
type Source interface {
	Scan(ctx context.Context, emit func(Job) error) error
}

// Document is an already-extracted (title, url, content) triple.
type Document struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// Job wraps an extracted document.
func (d Document) Job(name string) Job {
	return Job{
		Name: name,
		Extract: func() (string, string, string, error) {
			return d.Title, d.URL, d.Content, nil
		},
	}
}

// Slice is an in-memory Source.
type Slice []Document

func (s Slice) Scan(ctx context.Context, emit func(Job) error) error {
	for _, doc := range s {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := emit(doc.Job(doc.URL)); err != nil {
			return err
		}
	}
	return nil
}
