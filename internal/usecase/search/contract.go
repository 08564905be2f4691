package search

import (
	"context"

	"github.com/Norte-Development/lexsearch/internal/domain/candidate"
	"github.com/Norte-Development/lexsearch/internal/domain/query"
)

// CaseRepository provides the two case-law retrieval channels. Both
// return candidates in rank order; channel scores are assigned during
// fusion from that order.
type CaseRepository interface {
	SearchVector(
		ctx context.Context, vector []float32, dateRange *query.DateRange, pool, limit int,
	) ([]candidate.Candidate, error)

	SearchText(
		ctx context.Context, text string, dateRange *query.DateRange, limit int,
	) ([]candidate.Candidate, error)
}

// StatuteSearcher queries the externally ranked statute corpus.
type StatuteSearcher interface {
	Search(
		ctx context.Context,
		text string,
		categories []query.Category,
		jurisdiccion string,
		dateRange *query.DateRange,
	) ([]candidate.Candidate, error)
}

// Entitlements answers plan-level feature checks for the calling account.
type Entitlements interface {
	AllowsProvincialStatutes(ctx context.Context) bool
}

// StaticEntitlements is a configuration-backed Entitlements implementation.
type StaticEntitlements struct {
	Provincial bool
}

// AllowsProvincialStatutes reports the configured provincial search entitlement.
func (s StaticEntitlements) AllowsProvincialStatutes(context.Context) bool {
	return s.Provincial
}
