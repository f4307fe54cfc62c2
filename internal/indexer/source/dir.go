package source

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/indexer/extract"
	"github.com/Adithya-Monish-Kumar-K/docsearch/pkg/logger"
)

// DirSource walks a directory tree for HTML files. A document's title is
// its file name without extension and its URL is URLPrefix followed by the
// slash-separated path relative to Root.
type DirSource struct {
	Root      string
	URLPrefix string
}

func (d DirSource) Scan(ctx context.Context, emit func(Job) error) error {
	log := logger.WithComponent("dir-source")
	count := 0
	err := filepath.WalkDir(d.Root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if entry.IsDir() || !isHTML(path) {
			return nil
		}
		rel, err := filepath.Rel(d.Root, path)
		if err != nil {
			return fmt.Errorf("resolving %s against %s: %w", path, d.Root, err)
		}
		count++
		return emit(Job{
			Name:    path,
			Extract: d.extractor(path, rel),
		})
	})
	if err != nil {
		return fmt.Errorf("walking %s: %w", d.Root, err)
	}
	log.Info("directory enumerated", "root", d.Root, "files", count)
	return nil
}

func (d DirSource) extractor(path, rel string) func() (string, string, string, error) {
	return func() (string, string, string, error) {
		f, err := os.Open(path)
		if err != nil {
			return "", "", "", fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()
		doc, err := extract.Parse(f)
		if err != nil {
			return "", "", "", fmt.Errorf("extracting %s: %w", path, err)
		}
		title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if title == "" {
			title = doc.Title
		}
		return title, d.URLPrefix + filepath.ToSlash(rel), doc.Text, nil
	}
}

func isHTML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	return false
}
