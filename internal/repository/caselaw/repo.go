package caselaw

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Norte-Development/lexsearch/internal/db"
	"github.com/Norte-Development/lexsearch/internal/domain"
	"github.com/Norte-Development/lexsearch/internal/domain/candidate"
	"github.com/Norte-Development/lexsearch/internal/domain/query"
)

// Hash fields projected out of the rulings index.
var returnFields = []string{"title", "text", "full_date", "jurisdiction", "pdf_url", "id_saij"}

// store is the consumer interface for case-law search operations.
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
}

// Repo reads the case-law corpus ("fallos") through the search store.
type Repo struct {
	store     store
	keyPrefix string
}

// New creates a case-law repository. keyPrefix namespaces the rulings
// index and document keys, e.g. "lex:".
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix}
}

func (r *Repo) indexName() string {
	return r.keyPrefix + "fallos:idx"
}

func (r *Repo) docPrefix() string {
	return r.keyPrefix + "fallos:"
}

// SearchVector runs the ANN channel: candidates in similarity rank order,
// restricted by the date range when present. pool is the oversized
// candidate set explored before the limit is applied.
func (r *Repo) SearchVector(
	ctx context.Context, vector []float32, dateRange *query.DateRange, pool, limit int,
) ([]candidate.Candidate, error) {
	q := &db.KNNQuery{
		IndexName:    r.indexName(),
		Vector:       vector,
		K:            limit,
		Candidates:   pool,
		Range:        dateRangeToNumeric(dateRange),
		ReturnFields: returnFields,
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: search vector: %s", domain.ErrUpstreamService, err)
	}
	return r.parseResults(sr), nil
}

// SearchText runs the keyword channel with the date range as a hard filter.
func (r *Repo) SearchText(
	ctx context.Context, text string, dateRange *query.DateRange, limit int,
) ([]candidate.Candidate, error) {
	q := &db.TextQuery{
		IndexName:    r.indexName(),
		Query:        text,
		Range:        dateRangeToNumeric(dateRange),
		TopK:         limit,
		ReturnFields: returnFields,
	}

	sr, err := r.store.SearchText(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: search full-text: %s", domain.ErrUpstreamService, err)
	}
	return r.parseResults(sr), nil
}

// parseResults maps FT.SEARCH entries into ruling candidates, preserving
// rank order. Entries without a parseable key are skipped.
func (r *Repo) parseResults(sr *db.SearchResult) []candidate.Candidate {
	if sr == nil || sr.Total == 0 {
		return nil
	}

	out := make([]candidate.Candidate, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		id := strings.TrimPrefix(entry.Key, r.docPrefix())
		if id == "" {
			continue
		}

		var date time.Time
		if s, ok := entry.Fields["full_date"]; ok {
			if ts, err := strconv.ParseInt(s, 10, 64); err == nil {
				date = time.Unix(ts, 0).UTC()
			}
		}

		// Fall back to the internal SAIJ id when present.
		if saij := entry.Fields["id_saij"]; saij != "" {
			id = saij
		}

		out = append(out, candidate.NewRuling(
			id,
			entry.Fields["title"],
			entry.Fields["text"],
			date,
			entry.Fields["jurisdiction"],
			entry.Fields["pdf_url"],
		))
	}
	return out
}

// dateRangeToNumeric converts an inclusive date window into a numeric
// filter on the indexed full_date timestamp.
func dateRangeToNumeric(dr *query.DateRange) *db.NumericRange {
	if dr == nil || (dr.Start == nil && dr.End == nil) {
		return nil
	}
	r := &db.NumericRange{Field: "full_date"}
	if dr.Start != nil {
		v := float64(dr.Start.Unix())
		r.Min = &v
	}
	if dr.End != nil {
		v := float64(dr.End.Unix())
		r.Max = &v
	}
	return r
}
