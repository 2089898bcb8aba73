// ABOUTME: Document chunk and search result types for the vector index
// ABOUTME: Chunks are created at ingestion time and never mutated
package models

// DocumentChunk is the unit of storage and retrieval: a bounded slice of a
// source document together with its embedding vector.
type DocumentChunk struct {
	Text      string    `json:"text"`
	SourceURL string    `json:"source_url"`
	Vector    []float32 `json:"vector,omitempty"`
}

// SearchResult is one ranked hit from a vector index query.
type SearchResult struct {
	Text      string  `json:"text"`
	SourceURL string  `json:"source_url"`
	Score     float32 `json:"score"`
}
