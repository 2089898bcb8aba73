// ABOUTME: Ingestion orchestrator: fetch -> chunk -> embed -> upsert
// ABOUTME: Strictly sequential; one failing source does not abort the batch
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ne246/nevienudugamaresume/internal/llm"
	"github.com/ne246/nevienudugamaresume/internal/models"
)

// ContentFetcher retrieves the plain text of one source URL.
type ContentFetcher interface {
	Fetch(ctx context.Context, sourceURL string) (string, error)
}

// Embedder maps text to a fixed-dimension vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// VectorWriter persists one chunk with its vector.
type VectorWriter interface {
	Upsert(ctx context.Context, chunk models.DocumentChunk) error
}

// Stats summarises one ingestion run.
type Stats struct {
	Sources       int
	FailedSources int
	Chunks        int
}

// Orchestrator populates the vector index from the configured sources.
// Deliberately single-threaded and non-resumable: the corpus is small and
// rarely changes, and upserts are content-addressed, so a rerun converges.
type Orchestrator struct {
	fetcher      ContentFetcher
	embedder     Embedder
	index        VectorWriter
	sources      []string
	chunkSize    int
	chunkOverlap int
	logger       *slog.Logger
}

// NewOrchestrator wires the ingestion pipeline.
func NewOrchestrator(fetcher ContentFetcher, embedder Embedder, index VectorWriter,
	sources []string, chunkSize, chunkOverlap int, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		fetcher:      fetcher,
		embedder:     embedder,
		index:        index,
		sources:      sources,
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		logger:       logger,
	}
}

// Run processes every source sequentially and every chunk within a source
// sequentially. A failure on one source is logged and counted, and the
// remaining sources still run. An embedding dimension mismatch aborts the
// whole run: it is a configuration error no source can recover from.
func (o *Orchestrator) Run(ctx context.Context) (Stats, error) {
	if len(o.sources) == 0 {
		return Stats{}, errors.New("no source URLs configured")
	}

	stats := Stats{Sources: len(o.sources)}

	for _, src := range o.sources {
		n, err := o.ingestSource(ctx, src)
		stats.Chunks += n
		if err != nil {
			if errors.Is(err, llm.ErrDimensionMismatch) || ctx.Err() != nil {
				return stats, err
			}
			stats.FailedSources++
			o.logger.Error("source ingestion failed", "source", src, "error", err)
			continue
		}
		o.logger.Info("source ingested", "source", src, "chunks", n)
	}

	return stats, nil
}

func (o *Orchestrator) ingestSource(ctx context.Context, src string) (int, error) {
	text, err := o.fetcher.Fetch(ctx, src)
	if err != nil {
		return 0, err
	}

	chunks := Chunk(text, o.chunkSize, o.chunkOverlap)
	for i, chunkText := range chunks {
		vector, err := o.embedder.Embed(ctx, chunkText)
		if err != nil {
			return i, fmt.Errorf("embed chunk %d: %w", i, err)
		}

		chunk := models.DocumentChunk{
			Text:      chunkText,
			SourceURL: src,
			Vector:    vector,
		}
		if err := o.index.Upsert(ctx, chunk); err != nil {
			return i, fmt.Errorf("upsert chunk %d: %w", i, err)
		}
	}

	return len(chunks), nil
}
