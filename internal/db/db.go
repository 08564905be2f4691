package db

import (
	"context"
	"time"
)

// Store is the database facade combining all sub-interfaces. Consumers
// depend on the narrow sub-interfaces, not on Store itself.
type Store interface {
	Pinger
	KVStore
	HashStore
	Searcher
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore provides simple key-value operations.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// HashStore provides hash-based document operations.
type HashStore interface {
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Exists(ctx context.Context, key string) (bool, error)
}

// Searcher provides search operations over FT indexes.
type Searcher interface {
	SearchKNN(ctx context.Context, q *KNNQuery) (*SearchResult, error)
	SearchText(ctx context.Context, q *TextQuery) (*SearchResult, error)
}

// NumericRange bounds a numeric field; nil ends are open.
type NumericRange struct {
	Field string
	Min   *float64
	Max   *float64
}

// KNNQuery describes a vector similarity search with an optional
// numeric pre-filter and an oversized candidate pool.
type KNNQuery struct {
	IndexName    string
	Vector       []float32
	K            int
	Candidates   int
	Range        *NumericRange
	ReturnFields []string
}

// TextQuery describes a keyword search with an optional hard numeric filter.
type TextQuery struct {
	IndexName    string
	Query        string
	Range        *NumericRange
	TopK         int
	ReturnFields []string
}

// SearchEntry is a single FT.SEARCH hit.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}

// SearchResult is the parsed FT.SEARCH reply.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}
