// Package store persists an index as two JSON artifacts, one for the
// forward index and one for the inverted index.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/indexer/index"
	apperrors "github.com/Adithya-Monish-Kumar-K/docsearch/pkg/errors"
)

const (
	ForwardFormat  = "docsearch-forward"
	InvertedFormat = "docsearch-inverted"
	FormatVersion  = 1
)

// Paths names the two artifact files inside Dir.
type Paths struct {
	Dir          string
	ForwardFile  string
	InvertedFile string
}

func (p Paths) forward() string  { return filepath.Join(p.Dir, p.ForwardFile) }
func (p Paths) inverted() string { return filepath.Join(p.Dir, p.InvertedFile) }

type forwardArtifact struct {
	Format    string                 `json:"format"`
	Version   int                    `json:"version"`
	Documents []index.DocumentRecord `json:"documents"`
}

type invertedArtifact struct {
	Format  string                       `json:"format"`
	Version int                          `json:"version"`
	Terms   map[string]index.PostingList `json:"terms"`
}

// Save writes both artifacts. Each file is written to a temporary name,
// synced and renamed into place; the pair is not written atomically.
func Save(p Paths, idx *index.Index) error {
	if err := os.MkdirAll(p.Dir, 0755); err != nil {
		return fmt.Errorf("creating index directory: %w", err)
	}
	fwd := forwardArtifact{
		Format:    ForwardFormat,
		Version:   FormatVersion,
		Documents: idx.Forward.Records(),
	}
	if err := writeJSON(p.forward(), fwd); err != nil {
		return err
	}
	inv := invertedArtifact{
		Format:  InvertedFormat,
		Version: FormatVersion,
		Terms:   idx.Inverted.Snapshot(),
	}
	if err := writeJSON(p.inverted(), inv); err != nil {
		return err
	}
	slog.Debug("index artifacts written",
		"forward", p.forward(),
		"inverted", p.inverted(),
		"documents", len(fwd.Documents),
		"terms", len(inv.Terms),
	)
	return nil
}

func writeJSON(path string, v any) error {
	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("creating temp artifact %s: %w", tmpPath, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	if err := enc.Encode(v); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("encoding artifact %s: %w", path, err)
	}
	if err := f.Sync(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("syncing artifact %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing artifact %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming artifact %s: %w", path, err)
	}
	return nil
}

// Load reads both artifacts into a new Index. Any missing, unparsable or
// inconsistent artifact fails the whole load with ErrMalformedArtifact.
func Load(p Paths) (*index.Index, error) {
	var fwd forwardArtifact
	if err := readJSON(p.forward(), &fwd); err != nil {
		return nil, err
	}
	if err := checkHeader(p.forward(), fwd.Format, ForwardFormat, fwd.Version); err != nil {
		return nil, err
	}
	var inv invertedArtifact
	if err := readJSON(p.inverted(), &inv); err != nil {
		return nil, err
	}
	if err := checkHeader(p.inverted(), inv.Format, InvertedFormat, inv.Version); err != nil {
		return nil, err
	}
	idx, err := index.Restore(fwd.Documents, inv.Terms)
	if err != nil {
		return nil, fmt.Errorf("restoring index from %s: %w", p.Dir, err)
	}
	return idx, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s does not exist", apperrors.ErrMalformedArtifact, path)
		}
		return fmt.Errorf("%w: reading %s: %v", apperrors.ErrMalformedArtifact, path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: parsing %s: %v", apperrors.ErrMalformedArtifact, path, err)
	}
	return nil
}

func checkHeader(path, format, wantFormat string, version int) error {
	if format != wantFormat {
		return fmt.Errorf("%w: %s has format %q, want %q",
			apperrors.ErrMalformedArtifact, path, format, wantFormat)
	}
	if version != FormatVersion {
		return fmt.Errorf("%w: %s has version %d, want %d",
			apperrors.ErrMalformedArtifact, path, version, FormatVersion)
	}
	return nil
}
