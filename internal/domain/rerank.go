package domain

import "context"

// Reranker scores (query, document) pairs jointly via a cross-encoder.
type Reranker interface {
	// Rerank returns the top N items ordered by relevance. Index refers
	// to the position in the submitted document list.
	Rerank(ctx context.Context, query string, documents []string, topN int) ([]RankedItem, error)
}

// RankedItem is one reranker hit.
type RankedItem struct {
	Index          int
	RelevanceScore float64
}
