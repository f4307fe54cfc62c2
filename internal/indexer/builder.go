// Package indexer builds the forward and inverted index from a document
// source and persists them for the search service.
package indexer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/indexer/source"
	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/indexer/store"
	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/indexer/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/indexer/validator"
	"github.com/Adithya-Monish-Kumar-K/docsearch/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/docsearch/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/docsearch/pkg/metrics"
)

// Stats summarises one Build.
type Stats struct {
	Indexed  int64
	Skipped  int64
	Duration time.Duration
}

// Builder populates an index from (title, url, content) triples.
type Builder struct {
	cfg     config.BuilderConfig
	paths   store.Paths
	tok     tokenizer.Tokenizer
	idx     *index.Index
	metrics *metrics.Metrics
	logger  *slog.Logger

	indexed atomic.Int64
	skipped atomic.Int64
}

// NewBuilder creates a Builder over an empty index. m may be nil.
func NewBuilder(cfg config.BuilderConfig, idxCfg config.IndexConfig, tok tokenizer.Tokenizer, m *metrics.Metrics) *Builder {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.TitleWeight <= 0 {
		cfg.TitleWeight = 10
	}
	return &Builder{
		cfg: cfg,
		paths: store.Paths{
			Dir:          idxCfg.DataDir,
			ForwardFile:  idxCfg.ForwardFile,
			InvertedFile: idxCfg.InvertedFile,
		},
		tok:     tok,
		idx:     index.New(),
		metrics: m,
		logger:  slog.Default().With("component", "builder"),
	}
}

func (b *Builder) Index() *index.Index {
	return b.idx
}

// AddDocument indexes one document and returns its id. Title and content
// are tokenized separately and each term is weighted
// titleCount*TitleWeight + contentCount. Nothing shared is touched until
// both passes succeed.
func (b *Builder) AddDocument(title, url, content string) (int, error) {
	if err := validator.ValidateDocument(title, url); err != nil {
		return -1, err
	}
	titleCounts, err := tokenizer.Counts(b.tok, title)
	if err != nil {
		return -1, fmt.Errorf("tokenizing title: %w", err)
	}
	contentCounts, err := tokenizer.Counts(b.tok, content)
	if err != nil {
		return -1, fmt.Errorf("tokenizing content: %w", err)
	}
	weights := Weights(titleCounts, contentCounts, b.cfg.TitleWeight)

	rec := b.idx.Forward.Append(title, url, content)
	b.idx.Inverted.Add(rec.DocumentID, weights)
	return rec.DocumentID, nil
}

// Weights combines per-pass term counts into one weight per distinct term.
func Weights(titleCounts, contentCounts map[string]int, titleWeight int) map[string]int {
	weights := make(map[string]int, len(titleCounts)+len(contentCounts))
	for term, n := range titleCounts {
		weights[term] += n * titleWeight
	}
	for term, n := range contentCounts {
		weights[term] += n
	}
	return weights
}

// Build runs every job of src on a fixed pool of Workers goroutines and
// returns once all of them have finished. A document that fails is logged
// and skipped; only a failing scan fails the build.
func (b *Builder) Build(ctx context.Context, src source.Source) (Stats, error) {
	start := time.Now()
	b.logger.Info("build started", "workers", b.cfg.Workers, "source", fmt.Sprintf("%T", src))

	var g errgroup.Group
	g.SetLimit(b.cfg.Workers)
	scanErr := src.Scan(ctx, func(job source.Job) error {
		g.Go(func() error {
			b.process(job)
			return nil
		})
		return nil
	})
	enumerated := time.Since(start)
	g.Wait()

	stats := Stats{
		Indexed:  b.indexed.Load(),
		Skipped:  b.skipped.Load(),
		Duration: time.Since(start),
	}
	if b.metrics != nil {
		b.metrics.BuildDuration.Observe(stats.Duration.Seconds())
		b.metrics.IndexDocuments.Set(float64(b.idx.Forward.Len()))
		b.metrics.IndexTerms.Set(float64(b.idx.Inverted.Len()))
	}
	b.logger.Info("build finished",
		"indexed", stats.Indexed,
		"skipped", stats.Skipped,
		"terms", b.idx.Inverted.Len(),
		"enumerate_ms", enumerated.Milliseconds(),
		"total_ms", stats.Duration.Milliseconds(),
	)
	if scanErr != nil {
		return stats, fmt.Errorf("scanning source: %w", scanErr)
	}
	return stats, nil
}

func (b *Builder) process(job source.Job) {
	defer func() {
		if r := recover(); r != nil {
			b.skip(job.Name, "panic", fmt.Errorf("%w: panic: %v", apperrors.ErrInternal, r))
		}
	}()
	title, url, content, err := job.Extract()
	if err != nil {
		b.skip(job.Name, "extraction", err)
		return
	}
	id, err := b.AddDocument(title, url, content)
	if err != nil {
		b.skip(job.Name, skipReason(err), err)
		return
	}
	b.indexed.Add(1)
	if b.metrics != nil {
		b.metrics.DocsIndexedTotal.Inc()
	}
	b.logger.Debug("document indexed", "document", job.Name, "document_id", id)
}

func (b *Builder) skip(name, reason string, err error) {
	b.skipped.Add(1)
	if b.metrics != nil {
		b.metrics.DocsSkippedTotal.WithLabelValues(reason).Inc()
	}
	b.logger.Warn("document skipped", "document", name, "reason", reason, "error", err)
}

func skipReason(err error) string {
	var verr *validator.ValidationError
	switch {
	case errors.As(err, &verr):
		return "validation"
	case errors.Is(err, apperrors.ErrTokenization):
		return "tokenization"
	default:
		return "extraction"
	}
}

// Save persists the index. Call it only after Build has returned.
func (b *Builder) Save() error {
	start := time.Now()
	if err := store.Save(b.paths, b.idx); err != nil {
		return fmt.Errorf("saving index: %w", err)
	}
	elapsed := time.Since(start)
	if b.metrics != nil {
		b.metrics.IndexSaveDuration.Observe(elapsed.Seconds())
	}
	b.logger.Info("index saved",
		"dir", b.paths.Dir,
		"documents", b.idx.Forward.Len(),
		"terms", b.idx.Inverted.Len(),
		"save_ms", elapsed.Milliseconds(),
	)
	return nil
}
