// ABOUTME: Query-time retriever: embed the latest user message, fetch top-k chunks
// ABOUTME: Index failures degrade to empty context, embedding failures propagate
package chat

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ne246/nevienudugamaresume/internal/models"
)

// Embedder maps text to a query vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// VectorSearcher returns the stored chunks nearest to a query vector.
type VectorSearcher interface {
	Query(ctx context.Context, vector []float32, k int) ([]models.SearchResult, error)
}

// Retriever grounds a user message in the resume corpus.
type Retriever struct {
	embedder Embedder
	index    VectorSearcher
	topK     int
	logger   *slog.Logger
}

// NewRetriever wires the retriever with its injected clients.
func NewRetriever(embedder Embedder, index VectorSearcher, topK int, logger *slog.Logger) *Retriever {
	return &Retriever{
		embedder: embedder,
		index:    index,
		topK:     topK,
		logger:   logger,
	}
}

// Search returns the ranked chunks nearest to query. Without a query vector
// no retrieval is possible, so embedding errors propagate to the caller.
func (r *Retriever) Search(ctx context.Context, query string, k int) ([]models.SearchResult, error) {
	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}
	return r.index.Query(ctx, vector, k)
}

// Retrieve embeds the latest user message and joins the texts of the top-k
// nearest chunks with a blank line. If the index query fails the request
// proceeds ungrounded: the context degrades to "" and no error is returned.
func (r *Retriever) Retrieve(ctx context.Context, latestUserMessage string) (string, error) {
	vector, err := r.embedder.Embed(ctx, latestUserMessage)
	if err != nil {
		return "", err
	}

	results, err := r.index.Query(ctx, vector, r.topK)
	if err != nil {
		r.logger.Warn("vector index query failed, proceeding ungrounded", "error", err)
		return "", nil
	}

	texts := make([]string, 0, len(results))
	for _, res := range results {
		texts = append(texts, res.Text)
	}
	return strings.Join(texts, "\n\n"), nil
}
