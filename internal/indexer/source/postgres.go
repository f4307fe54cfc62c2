package source

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
)

const documentsQuery = `
	SELECT id, COALESCE(title, ''), COALESCE(url, ''), COALESCE(content, '')
	FROM documents
	ORDER BY id`

// Querier is the subset of *sql.DB a PostgresSource needs.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// PostgresSource reads documents from the documents table.
type PostgresSource struct {
	DB Querier
}

func (p PostgresSource) Scan(ctx context.Context, emit func(Job) error) error {
	rows, err := p.DB.QueryContext(ctx, documentsQuery)
	if err != nil {
		return fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id  int64
			doc Document
		)
		if err := rows.Scan(&id, &doc.Title, &doc.URL, &doc.Content); err != nil {
			return fmt.Errorf("scanning document row: %w", err)
		}
		if err := emit(doc.Job("documents/" + strconv.FormatInt(id, 10))); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating document rows: %w", err)
	}
	return nil
}
